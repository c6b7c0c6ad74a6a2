package ini

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-settings/tree"

	"gopkg.in/ini.v1"
)

// Parser implements config.SectionParser for INI data.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new INI parser instance that logs through slog.Default.
func NewParser() *Parser {
	return &Parser{logger: slog.Default()}
}

// WithLogger returns a copy of the parser that logs through logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseSection returns the raw entries of section as string scalars in file order.
func (p *Parser) ParseSection(data []byte, section string) (*tree.OrderedMap, error) {
	file, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("ini load error: %w", err)
	}

	entries := tree.NewOrderedMap()

	sec, err := file.GetSection(section)
	if err != nil {
		p.logger.Debug("section not found, using defaults only", slog.String("section", section))
	} else {
		for _, key := range sec.Keys() {
			entries.Set(key.Name(), tree.String(key.Value()))
		}
	}

	if section == ini.DefaultSection {
		return entries, nil
	}

	defaults, err := file.GetSection(ini.DefaultSection)
	if err != nil {
		return entries, nil //nolint:nilerr // a file without DEFAULT keys is fine
	}

	for _, key := range defaults.Keys() {
		if !entries.Has(key.Name()) {
			entries.Set(key.Name(), tree.String(key.Value()))
		}
	}

	return entries, nil
}

// loadOptions keeps values raw: quotes survive, '#' and ';' inside values are
// not comments, and indented continuation lines extend the previous value.
func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{ //nolint:exhaustruct // only relevant fields needed
		IgnoreContinuation:         true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
		PreserveSurroundedQuote:    true,
		KeyValueDelimiters:         "=",
	}
}
