// Package track observes live mutable values and emits the patch
// operations that describe their changes between calls.
//
// A Tracker pairs a live root with the view captured on the previous
// call. Patches re-projects the root, diffs against the stored view,
// replaces it, and returns the operations. Calls are synchronous and
// run to completion on the calling goroutine; the caller serializes
// Patches against mutation of the same root. Independent trackers share
// no state.
package track

import (
	"github.com/statepatch/statepatch/debug"
	"github.com/statepatch/statepatch/patch"
	"github.com/statepatch/statepatch/project"
	"github.com/statepatch/statepatch/view"
)

// Store holds the last captured view for one tracked root.
type Store struct {
	prev *view.Node
}

// Previous returns the last captured view, or an empty object for a
// never-captured root.
func (s *Store) Previous() *view.Node {
	if s.prev == nil {
		return view.Object()
	}
	return s.prev
}

// Capture stores an independent deep copy of v; later mutation of the
// live root never reaches the stored view.
func (s *Store) Capture(v *view.Node) {
	s.prev = v.Clone()
}

// Tracker is the patch emitter for one live root.
type Tracker struct {
	root  any
	store Store
}

// New starts observing root. The initial view is captured immediately,
// so a first Patches call with no intervening mutation returns nothing.
func New(root any) *Tracker {
	t := &Tracker{root: root}
	t.store.prev = project.Project(root)
	return t
}

// Patches projects the current state of the root, diffs it against the
// stored view, captures the new view (always, even when nothing
// changed) and returns the operations. The live root is only read.
func (t *Tracker) Patches() []patch.Op {
	cur := project.Project(t.root)
	ops := patch.Diff(t.store.Previous(), cur)
	// projection output is fresh, ownership moves to the store without
	// the defensive copy Capture makes for callers
	t.store.prev = cur
	if debug.Patches() {
		debug.Logf("tracker emitted %d ops\n", len(ops))
	}
	return ops
}

// Snapshot returns a copy of the stored view.
func (t *Tracker) Snapshot() *view.Node {
	return t.store.Previous().Clone()
}

// Rebind swaps the live reference without touching the stored view: if
// the new root projects to the same shape, the next Patches call stays
// empty rather than reporting a spurious full diff.
func (t *Tracker) Rebind(root any) {
	t.root = root
}
