package view

import (
	"bytes"
	"encoding/json"
)

// ToAny converts a node to the plain Go shape json.Marshal understands.
// Object key order is lost here; MarshalJSON does its own object
// encoding to keep it.
func (n *Node) ToAny() any {
	switch n.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return n.Bool
	case StringKind:
		return n.String
	case NumberKind:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return 0
	case ArrayKind:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = v.ToAny()
		}
		return res
	case ObjectKind:
		res := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			res[k] = n.Values[i].ToAny()
		}
		return res
	default:
		return nil
	}
}

// MarshalJSON encodes the node preserving object key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := n.encodeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encodeJSON(buf *bytes.Buffer) error {
	switch n.Kind {
	case ObjectKind:
		buf.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kd, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kd)
			buf.WriteByte(':')
			if err := n.Values[i].encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case ArrayKind:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		d, err := json.Marshal(n.ToAny())
		if err != nil {
			return err
		}
		buf.Write(d)
		return nil
	}
}
