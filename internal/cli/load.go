package cli

import (
	"errors"
	"fmt"

	settings "github.com/0xalexb/hjarta-settings"
	"github.com/0xalexb/hjarta-settings/config/parser/yaml"
	"github.com/0xalexb/hjarta-settings/loader"
	"github.com/0xalexb/hjarta-settings/resolve"
	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

var errBaseNotMap = errors.New("base settings must be a mapping")

// loadOptions are the flags shared by commands that load a settings file.
type loadOptions struct {
	basePath  string
	section   string
	envFiles  []string
	envPrefix string
	format    string
}

func (o *loadOptions) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.basePath, "base", "", "YAML or JSON file with the base settings")
	flags.StringVar(&o.section, "section", "", "section to read when FILE has no #section suffix")
	flags.StringArrayVar(&o.envFiles, "env-file", nil, "dotenv file whose variables IMPORT_FROM_STRING can resolve (repeatable)")
	flags.StringVar(&o.envPrefix, "env-prefix", "env.", "name prefix for dotenv variables")
	flags.StringVarP(&o.format, "format", "o", string(yaml.FormatYAML), "output format: yaml or json")
}

func (o *loadOptions) base(fsys afero.Fs) (*tree.OrderedMap, error) {
	if o.basePath == "" {
		return tree.NewOrderedMap(), nil
	}

	data, err := afero.ReadFile(fsys, o.basePath)
	if err != nil {
		return nil, fmt.Errorf("reading base settings: %w", err)
	}

	node, err := yaml.NewCodec().Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("decoding base settings %q: %w", o.basePath, err)
	}

	switch base := node.(type) {
	case *tree.OrderedMap:
		return base, nil
	case tree.Scalar:
		if base.IsNull() {
			return tree.NewOrderedMap(), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", errBaseNotMap, o.basePath)
}

func (o *loadOptions) resolver(fsys afero.Fs) (resolve.Resolver, error) {
	if len(o.envFiles) == 0 {
		return resolve.NewRegistry(), nil
	}

	return resolve.FromDotenv(fsys, o.envPrefix, o.envFiles...)
}

func (o *loadOptions) settingsOptions(global *globalOptions, spec string) ([]settings.Option, error) {
	base, err := o.base(global.fs)
	if err != nil {
		return nil, err
	}

	resolver, err := o.resolver(global.fs)
	if err != nil {
		return nil, err
	}

	return []settings.Option{
		settings.WithFile(spec),
		settings.WithSection(o.section),
		settings.WithBase(base),
		settings.WithResolver(resolver),
		settings.WithFs(global.fs),
		settings.WithLogger(global.log()),
	}, nil
}

func (o *loadOptions) load(global *globalOptions, spec string) (*loader.Result, error) {
	opts, err := o.settingsOptions(global, spec)
	if err != nil {
		return nil, err
	}

	return settings.Load(opts...)
}

func (o *loadOptions) encode(n tree.Node) ([]byte, error) {
	return yaml.NewCodec().Encode(n, yaml.Format(o.format))
}
