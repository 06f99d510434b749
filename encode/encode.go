// Package encode renders op lists and views for output boundaries: a
// machine JSON Patch document, or a line-per-op human form with
// optional color.
package encode

import (
	"io"

	"github.com/statepatch/statepatch/patch"
)

type EncState struct {
	human  bool
	colors *Colors
}

type EncodeOption func(*EncState)

func Human(v bool) EncodeOption {
	return func(es *EncState) { es.human = v }
}

func WithColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// Encode writes ops to w. The default form is a JSON Patch document;
// Human(true) switches to one op per line, colored when colors are set.
func Encode(ops []patch.Op, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if !es.human {
		d, err := patch.MarshalOps(ops)
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	}
	for i := range ops {
		line := ops[i].String()
		if es.colors != nil {
			line = es.colors.Op(ops[i].Kind, line)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
