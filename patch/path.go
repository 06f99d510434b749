package patch

import (
	"strconv"
	"strings"
)

// Seg is one path segment: either an object key or an array index.
type Seg struct {
	key     string
	index   int
	indexed bool
}

func Key(k string) Seg {
	return Seg{key: k}
}

func Index(i int) Seg {
	return Seg{index: i, indexed: true}
}

func (s Seg) IsIndex() bool { return s.indexed }
func (s Seg) Index() int    { return s.index }

func (s Seg) Key() string {
	if s.indexed {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path locates a node in a view tree. The empty path is the root.
type Path []Seg

func (p Path) Child(s Seg) Path {
	// copy so sibling branches never share backing arrays
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, s)
}

// String renders the path in JSON Pointer form: segments joined by '/'
// with '~' and '/' escaped as ~0 and ~1. The root renders as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(escapeSeg(s.Key()))
	}
	return b.String()
}

func escapeSeg(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// ParsePath parses a JSON Pointer rendering back into a Path. Numeric
// segments parse as indices.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	if s[0] != '/' {
		return nil, &PathError{Pointer: s, Message: "must start with '/'"}
	}
	parts := strings.Split(s[1:], "/")
	res := make(Path, 0, len(parts))
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if i, err := strconv.Atoi(part); err == nil {
			res = append(res, Index(i))
			continue
		}
		res = append(res, Key(part))
	}
	return res, nil
}

type PathError struct {
	Pointer string
	Message string
}

func (e *PathError) Error() string {
	return "path " + strconv.Quote(e.Pointer) + ": " + e.Message
}
