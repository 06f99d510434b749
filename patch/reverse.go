package patch

import (
	"fmt"

	"github.com/statepatch/statepatch/view"
)

// Reverse returns the operation list that undoes ops against the state
// they were diffed from. prev must be the pre-state: removes and
// replaces need it to recover the overwritten values. The result is
// ops inverted in reverse order, so applying it after ops restores
// prev.
func Reverse(prev *view.Node, ops []Op) ([]Op, error) {
	res := make([]Op, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		op := &ops[i]
		switch op.Kind {
		case AddOp:
			res = append(res, Op{Kind: RemoveOp, Path: op.Path})
		case RemoveOp:
			old := Lookup(prev, op.Path)
			if old == nil {
				return nil, fmt.Errorf("reverse: no value at %q in pre-state", op.Path.String())
			}
			res = append(res, Op{Kind: AddOp, Path: op.Path, Value: old.Clone()})
		case ReplaceOp:
			old := Lookup(prev, op.Path)
			if old == nil {
				return nil, fmt.Errorf("reverse: no value at %q in pre-state", op.Path.String())
			}
			res = append(res, Op{Kind: ReplaceOp, Path: op.Path, Value: old.Clone()})
		default:
			return nil, fmt.Errorf("reverse: unknown op kind %d", op.Kind)
		}
	}
	return res, nil
}

// Lookup resolves a path in a view tree, nil when absent.
func Lookup(root *view.Node, path Path) *view.Node {
	n := root
	for _, seg := range path {
		if n == nil {
			return nil
		}
		switch n.Kind {
		case view.ObjectKind:
			n = n.Get(seg.Key())
		case view.ArrayKind:
			if !seg.IsIndex() {
				return nil
			}
			n = n.Index(seg.Index())
		default:
			return nil
		}
	}
	return n
}
