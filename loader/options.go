package loader

import (
	"log/slog"
	"time"

	"github.com/0xalexb/hjarta-settings/config"
	"github.com/0xalexb/hjarta-settings/config/parser/ini"
	"github.com/0xalexb/hjarta-settings/config/parser/yaml"
	"github.com/0xalexb/hjarta-settings/resolve"

	"github.com/spf13/afero"
)

// DefaultDebounce is the quiet period Watch waits for before reloading.
const DefaultDebounce = 100 * time.Millisecond

type options struct {
	fs       afero.Fs
	logger   *slog.Logger
	resolver resolve.Resolver
	section  string
	parser   config.SectionParser
	decoder  config.ValueDecoder
	debounce time.Duration
}

// Option configures a Loader.
type Option func(*options)

// WithFs sets the filesystem settings files are read from. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResolver sets the resolver used for IMPORT_FROM_STRING.
// Defaults to an empty resolve.Registry, which fails for every name.
func WithResolver(resolver resolve.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithSection sets the section read when the file spec has no "#section" suffix.
func WithSection(section string) Option {
	return func(o *options) {
		o.section = section
	}
}

// WithSectionParser replaces the INI section parser.
func WithSectionParser(parser config.SectionParser) Option {
	return func(o *options) {
		o.parser = parser
	}
}

// WithValueDecoder replaces the raw value decoder.
func WithValueDecoder(decoder config.ValueDecoder) Option {
	return func(o *options) {
		o.decoder = decoder
	}
}

// WithDebounce sets how long Watch waits for file events to settle before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		fs:       nil,
		logger:   nil,
		resolver: nil,
		section:  DefaultSection,
		parser:   nil,
		decoder:  nil,
		debounce: DefaultDebounce,
	}

	for _, apply := range opts {
		apply(&o)
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.resolver == nil {
		o.resolver = resolve.NewRegistry()
	}

	if o.parser == nil {
		o.parser = ini.NewParser().WithLogger(o.logger)
	}

	if o.decoder == nil {
		o.decoder = yaml.NewCodec()
	}

	if o.debounce <= 0 {
		o.debounce = DefaultDebounce
	}

	return o
}
