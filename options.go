package settings

import (
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-settings/loader"
	"github.com/0xalexb/hjarta-settings/logging"
	"github.com/0xalexb/hjarta-settings/resolve"
	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/spf13/afero"
	"go.uber.org/fx"
)

// DefaultFile is the settings file used when neither WithFile nor FileEnv names one.
const DefaultFile = "local.cfg"

// FileEnv is the environment variable consulted for the settings file spec.
const FileEnv = "LOCAL_SETTINGS_FILE"

// Options holds configuration for loading settings.
type Options struct {
	// File is the settings file spec, "path[#section]".
	File string
	// Section is used when File carries no section.
	Section  string
	Base     *tree.OrderedMap
	Resolver resolve.Resolver
	Fs       afero.Fs
	LogLevel string
	// LogFormat is "json" (default) or "text".
	LogFormat string
	// Logger replaces the logger built from LogLevel and LogFormat.
	Logger  *slog.Logger
	Modules []fx.Option
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithFile sets the settings file spec, "path[#section]".
func WithFile(spec string) Option {
	return func(opts *Options) {
		opts.File = spec
	}
}

// WithSection sets the section read when the file spec has none.
func WithSection(section string) Option {
	return func(opts *Options) {
		opts.Section = section
	}
}

// WithBase sets the base settings tree the file is merged into.
func WithBase(base *tree.OrderedMap) Option {
	return func(opts *Options) {
		opts.Base = base
	}
}

// WithResolver sets the resolver for IMPORT_FROM_STRING.
func WithResolver(resolver resolve.Resolver) Option {
	return func(opts *Options) {
		opts.Resolver = resolver
	}
}

// WithFs sets the filesystem the settings files are read from.
func WithFs(fsys afero.Fs) Option {
	return func(opts *Options) {
		opts.Fs = fsys
	}
}

// WithLogLevel sets the log level.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log output format, "json" or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogger sets the logger, overriding WithLogLevel and WithLogFormat.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithModules adds Fx modules to an App.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

func newOptions(opts []Option) Options {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	if options.File == "" {
		options.File = os.Getenv(FileEnv)
	}

	if options.File == "" {
		options.File = DefaultFile
	}

	if options.Logger == nil {
		options.Logger = logging.NewLogger(options.loggerConfig(), os.Stderr)
	}

	return options
}

func (o *Options) loggerConfig() logging.LoggerConfig {
	return logging.LoggerConfig{Level: o.LogLevel, Format: o.LogFormat}
}

func (o *Options) loaderOptions() []loader.Option {
	opts := []loader.Option{loader.WithLogger(o.Logger)}

	if o.Fs != nil {
		opts = append(opts, loader.WithFs(o.Fs))
	}

	if o.Resolver != nil {
		opts = append(opts, loader.WithResolver(o.Resolver))
	}

	if o.Section != "" {
		opts = append(opts, loader.WithSection(o.Section))
	}

	return opts
}
