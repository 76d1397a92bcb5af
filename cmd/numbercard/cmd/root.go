// Package cmd implements the numbercard CLI: offline rendering of a card
// against saved states, stub configs, and watching cards render live against
// a Home Assistant instance.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Xevion/go-ha-number-card/internal"
)

const versionTemplate = `{{printf "numbercard version %s\n" .Version}}`

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "numbercard",
		Short: "Render Home Assistant number cards",
		Long: `numbercard renders the number card for number and input_number
entities, either offline from a saved /api/states dump or live against a
Home Assistant instance described by a dashboard file.`,
		// Errors are reported by us; usage is only printed for flag mistakes
		SilenceUsage: true,
		Version:      internal.Version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			setupLogging(cmd, level)
			return nil
		},
	}
	rootCmd.SetVersionTemplate(versionTemplate)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newStubCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func setupLogging(cmd *cobra.Command, level slog.Level) {
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}
