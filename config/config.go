package config

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-settings/traverse"
	"github.com/0xalexb/hjarta-settings/tree"
)

// DataFetcher defines an interface for reading raw settings file data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// SectionParser reads the raw entries of one section of a settings file.
// Entries are returned in file order as string scalars keyed by path expression.
// See config/parser/ini.
type SectionParser interface {
	ParseSection(data []byte, section string) (*tree.OrderedMap, error)
}

// ValueDecoder turns the raw text of a settings entry into a tree node.
// See config/parser/yaml.
type ValueDecoder interface {
	Decode(raw string) (tree.Node, error)
}

// Binder copies a settings subtree into a Go value.
type Binder interface {
	Bind(node tree.Node, target any) error
}

// Source provides merged settings.
type Source interface {
	Settings() *tree.OrderedMap
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that looks up path in the merged settings, binds it into
// target, sets defaults, and validates the result.
//
// The path is a settings path expression such as "DATABASES.default" or
// "LOGGING.loggers.(pkg.module)". An empty path binds the whole tree.
func Provider[T any](target *T, path string) func(Binder, Source) (*T, error) {
	return func(binder Binder, source Source) (*T, error) {
		var node tree.Node = source.Settings()

		if path != "" {
			found, err := traverse.Traverse(node, path)
			if err != nil {
				return nil, fmt.Errorf("lookup error: %w", err)
			}

			node = found
		}

		err := binder.Bind(node, target)
		if err != nil {
			return nil, fmt.Errorf("binding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
