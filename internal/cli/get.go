package cli

import (
	"fmt"

	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/spf13/cobra"
)

func newGetCmd(global *globalOptions) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "get FILE[#section] PATH",
		Short: "Print one merged setting addressed by a path expression",
		Example: `  hjarta-settings get local.cfg DATABASES.default.HOST
  hjarta-settings get local.cfg#prod 'LOGGING.loggers.(app.models).level'`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.load(global, args[0])
			if err != nil {
				return err
			}

			value, err := result.Lookup(args[1])
			if err != nil {
				return err
			}

			if deferred, ok := value.(*tree.Deferred); ok {
				value = deferred.Value()
			}

			if scalar, ok := value.(tree.Scalar); ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), scalar.Text())

				return err
			}

			data, err := opts.encode(value)
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
