package pathexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPath is returned when a path expression cannot be parsed.
var ErrMalformedPath = errors.New("malformed path")

// Segment is one step of a parsed path: a mapping key or a list index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a mapping key segment.
func Key(name string) Segment {
	return Segment{key: name, index: 0, isIndex: false}
}

// Index returns a list index segment.
func Index(i int) Segment {
	return Segment{key: "", index: i, isIndex: true}
}

// IsIndex reports whether the segment addresses a list element.
func (s Segment) IsIndex() bool {
	return s.isIndex
}

// Key returns the mapping key. It is empty for index segments.
func (s Segment) Key() string {
	return s.key
}

// Index returns the list index. It is zero for key segments.
func (s Segment) Index() int {
	return s.index
}

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}

	if strings.Contains(s.key, ".") {
		return "(" + s.key + ")"
	}

	return s.key
}

// Path is an ordered list of segments.
type Path []Segment

// String renders the path back into an expression that parses to the same segments.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}

	return strings.Join(parts, ".")
}

// Last returns the final segment of a non-empty path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Parse splits expr into segments.
func Parse(expr string) (Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformedPath)
	}

	var path Path

	pos := 0
	for pos <= len(expr) {
		var raw string

		if pos < len(expr) && expr[pos] == '(' {
			end := strings.IndexByte(expr[pos+1:], ')')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated %q in %q at offset %d", ErrMalformedPath, "(", expr, pos)
			}

			raw = expr[pos+1 : pos+1+end]
			pos += end + 2

			if pos < len(expr) && expr[pos] != '.' {
				return nil, fmt.Errorf("%w: expected %q after %q in %q at offset %d", ErrMalformedPath, ".", ")", expr, pos)
			}
		} else {
			end := strings.IndexByte(expr[pos:], '.')
			if end < 0 {
				end = len(expr) - pos
			}

			raw = expr[pos : pos+end]
			pos += end
		}

		if raw == "" {
			return nil, fmt.Errorf("%w: empty segment in %q at offset %d", ErrMalformedPath, expr, pos)
		}

		path = append(path, convert(raw))

		if pos >= len(expr) {
			break
		}

		// skip the separator
		pos++

		if pos == len(expr) {
			return nil, fmt.Errorf("%w: trailing %q in %q", ErrMalformedPath, ".", expr)
		}
	}

	return path, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return path
}

// convert turns digit-only names into index segments, except for
// zero-prefixed names such as "007".
func convert(name string) Segment {
	for _, r := range name {
		if r < '0' || r > '9' {
			return Key(name)
		}
	}

	if len(name) > 1 && name[0] == '0' {
		return Key(name)
	}

	index, err := strconv.Atoi(name)
	if err != nil {
		// too large to be an index
		return Key(name)
	}

	return Index(index)
}
