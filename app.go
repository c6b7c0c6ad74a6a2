package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-settings/config"
	"github.com/0xalexb/hjarta-settings/config/parser/yaml"
	"github.com/0xalexb/hjarta-settings/loader"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// ErrNoSettings is returned when the settings file disappeared before it could be loaded.
var ErrNoSettings = errors.New("no settings loaded")

var errAppNotInitialized = errors.New("app not initialized")

// Load reads the settings file and merges it into the base settings.
func Load(opts ...Option) (*loader.Result, error) {
	options := newOptions(opts)

	return load(&options)
}

func load(options *Options) (*loader.Result, error) {
	l, err := loader.New(options.File, options.loaderOptions()...)
	if err != nil {
		return nil, err
	}

	result, err := l.Load(options.Base)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSettings, l.Path())
	}

	return result, nil
}

// NewModule returns an Fx module providing the merged settings as
// *loader.Result and config.Source, a config.Binder for config.Provider,
// the logger, and its logging.LoggerConfig.
func NewModule(opts ...Option) fx.Option {
	options := newOptions(opts)

	return module(&options)
}

func module(options *Options) fx.Option {
	return fx.Module("settings",
		fx.Supply(options.loggerConfig()),
		fx.Supply(options.Logger),
		fx.Provide(func() (*loader.Result, error) {
			return load(options)
		}),
		fx.Provide(func(result *loader.Result) config.Source {
			return result
		}),
		fx.Provide(
			fx.Annotate(
				yaml.NewCodec,
				fx.As(new(config.Binder)),
			),
		),
	)
}

// App is an Fx application with the settings module installed.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	options := newOptions(opts)

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := options.Logger

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		module(options),
		fx.Options(options.Modules...),
	)
}

// Err returns the error Fx recorded while building the graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
