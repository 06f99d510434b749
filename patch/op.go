package patch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/statepatch/statepatch/view"
)

type OpKind int

const (
	AddOp OpKind = iota
	ReplaceOp
	RemoveOp
)

func (k OpKind) String() string {
	switch k {
	case AddOp:
		return "add"
	case ReplaceOp:
		return "replace"
	case RemoveOp:
		return "remove"
	default:
		return "<unknown op>"
	}
}

func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OpKind) UnmarshalText(d []byte) error {
	kk, ok := map[string]OpKind{
		"add":     AddOp,
		"replace": ReplaceOp,
		"remove":  RemoveOp,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized op %q", d)
	}
	*k = kk
	return nil
}

// Op is one patch operation. Value is nil for removes and is always an
// independent copy, never aliased into a live tree.
type Op struct {
	Kind  OpKind
	Path  Path
	Value *view.Node
}

func (o *Op) String() string {
	if o.Kind == RemoveOp {
		return o.Kind.String() + " " + o.Path.String()
	}
	d, err := o.Value.MarshalJSON()
	if err != nil {
		return o.Kind.String() + " " + o.Path.String()
	}
	return o.Kind.String() + " " + o.Path.String() + " " + string(d)
}

// MarshalJSON renders the op as a standard JSON Patch operation object.
func (o *Op) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(`{"op":`)
	opName, _ := json.Marshal(o.Kind.String())
	buf.Write(opName)
	buf.WriteString(`,"path":`)
	pathName, _ := json.Marshal(o.Path.String())
	buf.Write(pathName)
	if o.Kind != RemoveOp {
		buf.WriteString(`,"value":`)
		vd, err := o.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalOps renders an op list as a JSON Patch document.
func MarshalOps(ops []Op) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('[')
	for i := range ops {
		if i > 0 {
			buf.WriteByte(',')
		}
		d, err := ops[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(d)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
