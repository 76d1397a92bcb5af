package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Xevion/go-ha-number-card/internal"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of numbercard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "numbercard version %s\n", internal.Version())
		},
	}
}
