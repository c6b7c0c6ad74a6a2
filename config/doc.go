// Package config provides the extension points of the settings pipeline and
// typed access to merged settings.
//
// The package uses an interface-based design:
//   - DataFetcher: retrieves raw settings file data (config/fetcher/file)
//   - SectionParser: reads the raw entries of one file section (config/parser/ini)
//   - ValueDecoder: decodes a raw entry value into a tree node (config/parser/yaml)
//   - Binder: copies a merged subtree into a Go struct (config/parser/yaml)
//   - Source: provides merged settings (loader.Result)
//   - Validator: validates config after binding
//   - Defaulter: applies default values before validation
//
// # Path Navigation
//
// The Provider function accepts a settings path expression selecting the
// subtree to bind. Segments are separated by dots, digits address list
// elements and parentheses group keys that contain dots:
//
//	"DATABASES.default"            -> settings["DATABASES"]["default"]
//	"TEMPLATES.0.OPTIONS"          -> settings["TEMPLATES"][0]["OPTIONS"]
//	"LOGGING.loggers.(pkg.module)" -> settings["LOGGING"]["loggers"]["pkg.module"]
//	""                             -> entire tree
//
// # Example
//
// A typical usage pattern:
//
//	type DatabaseConfig struct {
//	    Host string `yaml:"HOST"`
//	    Port int    `yaml:"PORT"`
//	}
//
//	provider := config.Provider(&DatabaseConfig{}, "DATABASES.default")
//	cfg, err := provider(yamlparser.NewCodec(), result)
package config
