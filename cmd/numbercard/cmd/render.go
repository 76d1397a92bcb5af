package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	numbercard "github.com/Xevion/go-ha-number-card"
	"github.com/Xevion/go-ha-number-card/types"
)

type renderOptions struct {
	cardPath     string
	statesPath   string
	language     string
	numberFormat string
	value        float64
	pretty       bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a card offline against saved states",
		Long: `Render reads a card config (YAML) and a saved /api/states response
(JSON) and prints the card's render tree. --value plays a live value from the
embedded control before rendering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *float64
			if cmd.Flags().Changed("value") {
				override = &opts.value
			}
			return runRender(cmd, opts, override)
		},
	}

	cmd.Flags().StringVarP(&opts.cardPath, "card", "c", "", "card config file (YAML)")
	cmd.Flags().StringVarP(&opts.statesPath, "states", "s", "", "saved /api/states response (JSON)")
	cmd.Flags().StringVar(&opts.language, "language", "en", "frontend language")
	cmd.Flags().StringVar(&opts.numberFormat, "number-format", string(types.NumberFormatLanguage), "number format preference")
	cmd.Flags().Float64Var(&opts.value, "value", 0, "live value from the embedded control")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "frame the output for terminals")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions, override *float64) error {
	raw, err := os.ReadFile(opts.cardPath)
	if err != nil {
		return err
	}
	cfg, err := numbercard.ParseConfig(raw)
	if err != nil {
		return err
	}

	hass, err := loadHass(opts.statesPath, types.Locale{
		Language:     opts.language,
		NumberFormat: types.NumberFormat(opts.numberFormat),
	})
	if err != nil {
		return fmt.Errorf("failed to load states: %w", err)
	}

	card := numbercard.NewCard(numbercard.WithID(cfg.Entity))
	card.SetConfig(cfg)
	card.SetHass(hass)
	if override != nil {
		card.OnCurrentChange(numbercard.CurrentChangeEvent{Value: override})
	}

	return writeTree(cmd.OutOrStdout(), "", card.Update(), opts.pretty)
}
