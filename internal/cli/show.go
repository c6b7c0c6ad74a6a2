package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(global *globalOptions) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "show FILE[#section]",
		Short: "Print the settings merged from a local settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.load(global, args[0])
			if err != nil {
				return err
			}

			data, err := opts.encode(result.Settings())
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	opts.register(cmd.Flags())

	return cmd
}
