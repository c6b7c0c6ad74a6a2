package cli

import (
	"log/slog"

	"github.com/0xalexb/hjarta-settings/logging"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	logLevel  string
	logFormat string
	fs        afero.Fs
	logger    *slog.Logger
}

func (g *globalOptions) log() *slog.Logger {
	if g.logger == nil {
		return logging.Discard()
	}

	return g.logger
}

// Execute runs the root command against the OS filesystem.
func Execute() error {
	return newRootCmd(afero.NewOsFs()).Execute()
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	global := &globalOptions{fs: fsys}

	cmd := &cobra.Command{
		Use:          "hjarta-settings",
		Short:        "Merge local settings files into base settings",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			global.logger = logging.NewLogger(logging.LoggerConfig{
				Level:  global.logLevel,
				Format: global.logFormat,
			}, cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&global.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&global.logFormat, "log-format", logging.FormatText, "log format: text or json")

	cmd.AddCommand(
		newShowCmd(global),
		newGetCmd(global),
		newWatchCmd(global),
		newVersionCmd(),
	)

	return cmd
}
