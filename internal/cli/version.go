package cli

import (
	"fmt"

	settings "github.com/0xalexb/hjarta-settings"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hjarta-settings %s (compiled %s)\n", settings.Version, settings.CompiledAt)

			return err
		},
	}
}
