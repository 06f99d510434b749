// Package patch computes ordered add/replace/remove operation lists
// between two view trees.
package patch

import (
	"github.com/statepatch/statepatch/debug"
	"github.com/statepatch/statepatch/view"
)

// Diff returns the operations that transform prev into cur. The result
// is deterministic: object keys follow prev's enumeration order with
// keys new to cur appended afterward, array elements compare
// positionally over the shared length with trailing adds in ascending
// and trailing removes in descending index order. Subtrees that are
// structurally identical emit nothing.
func Diff(prev, cur *view.Node) []Op {
	ops := diffAt(nil, Path{}, prev, cur)
	if debug.Diff() {
		for i := range ops {
			debug.Logf("diff op %s\n", ops[i].String())
		}
	}
	return ops
}

func diffAt(ops []Op, path Path, prev, cur *view.Node) []Op {
	if prev.Kind != cur.Kind {
		return append(ops, Op{Kind: ReplaceOp, Path: path, Value: cur.Clone()})
	}
	switch cur.Kind {
	case view.ObjectKind:
		return diffObject(ops, path, prev, cur)
	case view.ArrayKind:
		return diffArray(ops, path, prev, cur)
	default:
		if view.Equal(prev, cur) {
			return ops
		}
		return append(ops, Op{Kind: ReplaceOp, Path: path, Value: cur.Clone()})
	}
}

// diffObject walks the union of keys: prev's key order first, with
// removes emitted in place, then keys new to cur in cur's order.
func diffObject(ops []Op, path Path, prev, cur *view.Node) []Op {
	curIdx := make(map[string]int, len(cur.Keys))
	for i, key := range cur.Keys {
		curIdx[key] = i
	}
	prevKeys := make(map[string]struct{}, len(prev.Keys))
	for i, key := range prev.Keys {
		prevKeys[key] = struct{}{}
		ci, present := curIdx[key]
		if !present {
			ops = append(ops, Op{Kind: RemoveOp, Path: path.Child(Key(key))})
			continue
		}
		prevVal, curVal := prev.Values[i], cur.Values[ci]
		if view.Equal(prevVal, curVal) {
			continue
		}
		ops = diffAt(ops, path.Child(Key(key)), prevVal, curVal)
	}
	for i, key := range cur.Keys {
		if _, present := prevKeys[key]; present {
			continue
		}
		ops = append(ops, Op{
			Kind:  AddOp,
			Path:  path.Child(Key(key)),
			Value: cur.Values[i].Clone(),
		})
	}
	return ops
}

// diffArray compares index by index over the shared length. A longer
// cur appends adds in ascending index order; a shorter cur appends
// removes from the last index downward so the sequence stays applicable
// by a standard patch processor.
func diffArray(ops []Op, path Path, prev, cur *view.Node) []Op {
	n := min(len(prev.Values), len(cur.Values))
	for i := 0; i < n; i++ {
		if view.Equal(prev.Values[i], cur.Values[i]) {
			continue
		}
		ops = diffAt(ops, path.Child(Index(i)), prev.Values[i], cur.Values[i])
	}
	for i := n; i < len(cur.Values); i++ {
		ops = append(ops, Op{
			Kind:  AddOp,
			Path:  path.Child(Index(i)),
			Value: cur.Values[i].Clone(),
		})
	}
	for i := len(prev.Values) - 1; i >= n; i-- {
		ops = append(ops, Op{Kind: RemoveOp, Path: path.Child(Index(i))})
	}
	return ops
}
