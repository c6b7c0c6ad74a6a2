package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-settings/config/fetcher/file"
	"github.com/0xalexb/hjarta-settings/tree"
)

// DefaultSection is the section read when none is given.
const DefaultSection = "dev"

// ExtendsKey is the reserved entry naming the files a settings file extends.
const ExtendsKey = "extends"

// ErrSettingsFileNotFound is returned by New when the settings file does not exist.
var ErrSettingsFileNotFound = errors.New("settings file not found")

// ErrCyclicExtends is returned when a file extends itself, directly or through other files.
var ErrCyclicExtends = errors.New("cyclic extends")

// ErrInvalidExtends is returned when extends is not a file name or a list of file names.
var ErrInvalidExtends = errors.New("invalid extends")

// ErrInvalidValue is returned when the raw value of an entry cannot be decoded.
var ErrInvalidValue = errors.New("invalid value")

// Loader reads one section of a settings file and merges it into base settings.
type Loader struct {
	opts    options
	fetcher *file.Fetcher
	path    string
	section string
	files   []string
}

// SplitSpec splits a "path#section" file spec. The section is empty when the
// spec carries none.
func SplitSpec(spec string) (string, string) {
	idx := strings.LastIndex(spec, "#")
	if idx < 0 {
		return spec, ""
	}

	return spec[:idx], spec[idx+1:]
}

// New returns a Loader for spec. It fails with ErrSettingsFileNotFound when
// the file does not exist.
func New(spec string, opts ...Option) (*Loader, error) {
	return newLoader(spec, newOptions(opts))
}

func newLoader(spec string, opts options) (*Loader, error) {
	path, section := SplitSpec(spec)
	if section == "" {
		section = opts.section
	}

	fetcher, err := file.NewFetcher(opts.fs, path)()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsFileNotFound, filepath.Clean(path))
		}

		return nil, err
	}

	return &Loader{
		opts:    opts,
		fetcher: fetcher,
		path:    fetcher.Path(),
		section: section,
		files:   nil,
	}, nil
}

// Path returns the cleaned path of the settings file.
func (l *Loader) Path() string {
	return l.path
}

// Section returns the section the loader reads.
func (l *Loader) Section() string {
	return l.section
}

// Files returns the files read by the last ReadFile or Load call, extended
// files first.
func (l *Loader) Files() []string {
	return slices.Clone(l.files)
}

// ReadFile returns the raw entries of the settings file merged over the
// entries of the files it extends, in precedence order.
func (l *Loader) ReadFile() (*tree.OrderedMap, error) {
	entries, files, err := l.read(nil)
	if err != nil {
		return nil, err
	}

	l.files = files

	return entries, nil
}

type chainLink struct {
	path    string
	section string
}

func (c chainLink) String() string {
	return c.path + "#" + c.section
}

func (l *Loader) read(chain []chainLink) (*tree.OrderedMap, []string, error) {
	link := chainLink{path: absPath(l.path), section: l.section}

	if slices.Contains(chain, link) {
		names := make([]string, 0, len(chain)+1)
		for _, c := range chain {
			names = append(names, c.String())
		}

		names = append(names, link.String())

		return nil, nil, fmt.Errorf("%w: %s", ErrCyclicExtends, strings.Join(names, " -> "))
	}

	chain = append(slices.Clone(chain), link)

	data, err := l.fetcher.Fetch()
	if err != nil {
		return nil, nil, err
	}

	own, err := l.opts.parser.ParseSection(data, l.section)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", link, err)
	}

	raw, ok := own.Get(ExtendsKey)
	if !ok {
		return own, []string{l.path}, nil
	}

	names, err := l.extendsNames(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", link, err)
	}

	merged := tree.NewOrderedMap()

	var files []string

	for _, name := range names {
		child, err := l.child(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%s extends %q: %w", link, name, err)
		}

		l.opts.logger.Debug("reading extended settings",
			slog.String("file", l.path),
			slog.String("extends", child.path),
			slog.String("section", child.section),
		)

		entries, childFiles, err := child.read(chain)
		if err != nil {
			return nil, nil, err
		}

		overlay(merged, entries)

		files = append(files, childFiles...)
	}

	overlay(merged, own)

	return merged, append(files, l.path), nil
}

// extendsNames decodes the extends entry into file specs.
func (l *Loader) extendsNames(raw tree.Node) ([]string, error) {
	text, ok := tree.StringValue(raw)
	if !ok {
		return nil, fmt.Errorf("%w: not a string entry", ErrInvalidExtends)
	}

	value, err := l.opts.decoder.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExtends, err)
	}

	switch v := value.(type) {
	case tree.Scalar:
		if v.IsNull() {
			return nil, nil
		}

		name, ok := v.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a file name", ErrInvalidExtends, v.Text())
		}

		return []string{name}, nil
	case *tree.List:
		names := make([]string, 0, v.Len())

		for _, item := range v.Items() {
			name, ok := tree.StringValue(item)
			if !ok {
				return nil, fmt.Errorf("%w: list element is %s, not a file name", ErrInvalidExtends, item.Kind())
			}

			names = append(names, name)
		}

		return names, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a file name or list", ErrInvalidExtends, value.Kind())
	}
}

// child returns a loader for an extended file spec, relative to this file
// and inheriting its section.
func (l *Loader) child(spec string) (*Loader, error) {
	path, section := SplitSpec(spec)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(l.path), path)
	}

	if section == "" {
		section = l.section
	}

	return newLoader(path+"#"+section, l.opts)
}

// overlay writes src entries into dst. Existing keys are removed first so the
// overriding entry lands at the end.
func overlay(dst, src *tree.OrderedMap) {
	src.Each(func(key string, n tree.Node) bool {
		dst.Delete(key)
		dst.Set(key, n)

		return true
	})
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}
