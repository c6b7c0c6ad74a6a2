package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xalexb/hjarta-settings/loader"

	"github.com/spf13/cobra"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "watch FILE[#section]",
		Short: "Print the merged settings every time the settings files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := opts.base(global.fs)
			if err != nil {
				return err
			}

			resolver, err := opts.resolver(global.fs)
			if err != nil {
				return err
			}

			logger := global.log()

			loaderOpts := []loader.Option{
				loader.WithFs(global.fs),
				loader.WithLogger(logger),
				loader.WithResolver(resolver),
			}
			if opts.section != "" {
				loaderOpts = append(loaderOpts, loader.WithSection(opts.section))
			}

			l, err := loader.New(args[0], loaderOpts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()

			return l.Watch(ctx, base, func(result *loader.Result, err error) {
				if err != nil {
					logger.Error("loading settings", slog.String("file", l.Path()), slog.Any("error", err))

					return
				}

				if result == nil {
					return
				}

				data, err := opts.encode(result.Settings())
				if err != nil {
					logger.Error("encoding settings", slog.Any("error", err))

					return
				}

				_, _ = fmt.Fprintf(out, "---\n%s", data)
			})
		},
	}

	opts.register(cmd.Flags())

	return cmd
}
