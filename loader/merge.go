package loader

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/0xalexb/hjarta-settings/directive"
	"github.com/0xalexb/hjarta-settings/interpolate"
	"github.com/0xalexb/hjarta-settings/pathexpr"
	"github.com/0xalexb/hjarta-settings/traverse"
	"github.com/0xalexb/hjarta-settings/tree"
)

// Registration records a deferred placeholder that received a value.
type Registration struct {
	Setting *tree.Deferred
	// Segment is the segment the placeholder occupied in its container.
	Segment pathexpr.Segment
	// Path is the full path of the entry that assigned it.
	Path pathexpr.Path
}

// Result is the outcome of a successful Load.
type Result struct {
	settings *tree.OrderedMap
	// Registry lists the deferred placeholders that received a value, in assignment order.
	Registry []Registration
	// Files lists the settings files that were read, extended files first.
	Files []string
}

// Settings returns the merged settings tree. It implements config.Source.
func (r *Result) Settings() *tree.OrderedMap {
	return r.settings
}

// Lookup returns the value at the path expression expr.
func (r *Result) Lookup(expr string) (tree.Node, error) {
	return traverse.Traverse(r.settings, expr)
}

// Registered returns the registration of setting, if it received a value.
func (r *Result) Registered(setting *tree.Deferred) (Registration, bool) {
	for _, reg := range r.Registry {
		if reg.Setting == setting {
			return reg, true
		}
	}

	return Registration{}, false
}

// Load merges the settings file into a copy of the uppercase keys of base
// and runs the post-merge passes. base is not modified; deferred
// placeholders in it are resolved in place.
//
// When the settings file disappeared after New, Load logs a warning and
// returns a nil Result and a nil error.
func (l *Loader) Load(base *tree.OrderedMap) (*Result, error) {
	if !l.fetcher.Exists() {
		l.opts.logger.Warn("settings file not found", slog.String("file", l.path))

		return nil, nil //nolint:nilnil
	}

	entries, err := l.ReadFile()
	if err != nil {
		return nil, err
	}

	settings := seed(base)

	var registry []Registration

	for _, name := range entries.Keys() {
		raw, _ := entries.Get(name)

		regs, err := l.apply(settings, name, raw)
		if err != nil {
			return nil, fmt.Errorf("%s#%s: %w", l.path, l.section, err)
		}

		registry = append(registry, regs...)
	}

	settings.Delete(ExtendsKey)
	tree.ClearPlaceholders(settings)

	err = interpolate.Tree(settings)
	if err != nil {
		return nil, fmt.Errorf("%s#%s: %w", l.path, l.section, err)
	}

	err = directive.ImportFromString(settings, l.opts.resolver)
	if err != nil {
		return nil, err
	}

	err = directive.AppendExtras(settings)
	if err != nil {
		return nil, fmt.Errorf("%s#%s: %w", l.path, l.section, err)
	}

	l.opts.logger.Debug("settings loaded",
		slog.String("file", l.path),
		slog.String("section", l.section),
		slog.Int("entries", entries.Len()),
		slog.Int("registered", len(registry)),
	)

	return &Result{
		settings: settings,
		Registry: registry,
		Files:    l.Files(),
	}, nil
}

// apply decodes one entry and writes it into settings.
func (l *Loader) apply(settings *tree.OrderedMap, name string, raw tree.Node) ([]Registration, error) {
	text, ok := tree.StringValue(raw)
	if !ok {
		return nil, fmt.Errorf("%w: entry %q is %s", ErrInvalidValue, name, raw.Kind())
	}

	value, err := l.opts.decoder.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s = %s: %w", ErrInvalidValue, name, text, err)
	}

	path, err := pathexpr.Parse(name)
	if err != nil {
		return nil, err
	}

	var registry []Registration

	visit := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
		step.Container.MoveSegmentToEnd(step.Segment)

		if !step.Last {
			return traverse.Continue(), nil
		}

		err := step.Container.SetSegment(step.Segment, value)
		if err != nil {
			return traverse.Result{}, err
		}

		if setting, ok := step.Value.(*tree.Deferred); ok {
			setting.Resolve(value)

			registry = append(registry, Registration{
				Setting: setting,
				Segment: step.Segment,
				Path:    path,
			})
		}

		return traverse.Replace(value), nil
	})

	_, err = traverse.Walk(settings, path,
		traverse.WithVisitor(visit),
		traverse.CreateMissing(),
		traverse.WithDefault(tree.Null()),
	)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", name, err)
	}

	return registry, nil
}

// seed copies the uppercase top-level entries of base. Deferred placeholders
// are shared, everything else is copied.
func seed(base *tree.OrderedMap) *tree.OrderedMap {
	settings := tree.NewOrderedMap()
	if base == nil {
		return settings
	}

	base.Each(func(key string, n tree.Node) bool {
		if isUpper(key) {
			settings.Set(key, tree.Clone(n))
		}

		return true
	})

	return settings
}

// isUpper reports whether s has at least one cased letter and no lowercase ones.
func isUpper(s string) bool {
	cased := false

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}

		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}

	return cased
}
