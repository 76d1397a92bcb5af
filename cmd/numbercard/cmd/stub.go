package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	numbercard "github.com/Xevion/go-ha-number-card"
	"github.com/Xevion/go-ha-number-card/types"
)

func newStubCmd() *cobra.Command {
	var statesPath string
	var list bool

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Print a starting card config",
		Long: `Stub prints the config the card picker would start from, bound to the
first number or input_number entity in the saved states. --list prints the
registered card types instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := numbercard.NewRegistry()
			if err := numbercard.RegisterCards(registry); err != nil {
				return err
			}
			defer numbercard.UnregisterCards(registry)

			out := cmd.OutOrStdout()
			if list {
				for _, info := range registry.Cards() {
					fmt.Fprintf(out, "%s%s\t%s\t%s\n", numbercard.CustomPrefix, info.Type, info.Name, info.Description)
				}
				return nil
			}

			hass, err := loadHass(statesPath, types.Locale{Language: "en"})
			if err != nil {
				return fmt.Errorf("failed to load states: %w", err)
			}
			def, _ := registry.Get(numbercard.CardType)
			raw, err := numbercard.MarshalConfig(def.StubConfig(hass))
			if err != nil {
				return err
			}
			_, err = out.Write(raw)
			return err
		},
	}

	cmd.Flags().StringVarP(&statesPath, "states", "s", "", "saved /api/states response (JSON)")
	cmd.Flags().BoolVar(&list, "list", false, "list registered card types")
	return cmd
}
