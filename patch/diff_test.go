package patch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/statepatch/statepatch/project"
)

type diffTest struct {
	name string
	a    any
	b    any
	ops  []string
}

var diffTests = []diffTest{
	{
		name: "identical",
		a:    map[string]any{"a": 1, "b": []any{1, 2}},
		b:    map[string]any{"a": 1, "b": []any{1, 2}},
		ops:  nil,
	},
	{
		name: "scalar replace",
		a:    map[string]any{"a": 1},
		b:    map[string]any{"a": 2},
		ops:  []string{`replace /a 2`},
	},
	{
		name: "kind change replaces whole subtree",
		a:    map[string]any{"a": map[string]any{"x": 1}},
		b:    map[string]any{"a": []any{1}},
		ops:  []string{`replace /a [1]`},
	},
	{
		name: "add and remove keys",
		a:    map[string]any{"f1": "a", "f3": "a"},
		b:    map[string]any{"f0": "b", "f1": "a"},
		ops: []string{
			`remove /f3`,
			`add /f0 "b"`,
		},
	},
	{
		name: "removes in place then adds appended",
		a:    map[string]any{"a": 1, "b": 2, "c": 3},
		b:    map[string]any{"b": 20, "d": 4},
		ops: []string{
			`remove /a`,
			`replace /b 20`,
			`remove /c`,
			`add /d 4`,
		},
	},
	{
		name: "nested recursion",
		a:    map[string]any{"f5": map[string]any{"f5a": 1, "f5b": 2}},
		b:    map[string]any{"f5": map[string]any{"f5a": 1}},
		ops:  []string{`remove /f5/f5b`},
	},
	{
		name: "array element replace and trailing add",
		a:    map[string]any{"objs": []any{map[string]any{"hp": 100, "x": 0, "y": 0}}},
		b: map[string]any{"objs": []any{
			map[string]any{"hp": 100, "x": 100, "y": 0},
			map[string]any{"hp": 80, "x": 100, "y": 200},
		}},
		ops: []string{
			`replace /objs/0/x 100`,
			`add /objs/1 {"hp":80,"x":100,"y":200}`,
		},
	},
	{
		name: "array shrink removes trailing indices descending",
		a:    []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		b:    []any{0, 1, 2, 3, 4, 5, 6, 7, 8},
		ops: []string{
			`remove /10`,
			`remove /9`,
		},
	},
	{
		name: "array grow adds ascending",
		a:    []any{1},
		b:    []any{1, 2, 3},
		ops: []string{
			`add /1 2`,
			`add /2 3`,
		},
	},
	{
		name: "middle insertion is positional",
		a:    []any{1, 2, 3},
		b:    []any{1, 9, 2, 3},
		ops: []string{
			`replace /1 9`,
			`replace /2 2`,
			`add /3 3`,
		},
	},
	{
		name: "root kind change",
		a:    map[string]any{"a": 1},
		b:    []any{1},
		ops:  []string{`replace  [1]`},
	},
	{
		name: "keys needing escapes",
		a:    map[string]any{"a/b": 1, "c~d": 2},
		b:    map[string]any{"a/b": 9, "c~d": 2},
		ops:  []string{`replace /a~1b 9`},
	},
}

func TestDiff(t *testing.T) {
	for _, tc := range diffTests {
		t.Run(tc.name, func(t *testing.T) {
			ops := Diff(project.Project(tc.a), project.Project(tc.b))
			var got []string
			for i := range ops {
				got = append(got, ops[i].String())
			}
			if d := cmp.Diff(tc.ops, got); d != "" {
				t.Errorf("op mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDiffDeterministic(t *testing.T) {
	a := map[string]any{"x": []any{1, 2, 3}, "y": map[string]any{"k": "v"}}
	b := map[string]any{"x": []any{1, 5}, "y": map[string]any{"k": "w", "l": 1}}
	first := Diff(project.Project(a), project.Project(b))
	for i := 0; i < 5; i++ {
		again := Diff(project.Project(a), project.Project(b))
		if len(again) != len(first) {
			t.Fatalf("run %d: %d ops, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].String() != first[j].String() {
				t.Fatalf("run %d: op %d = %s, want %s", i, j, again[j].String(), first[j].String())
			}
		}
	}
}

func TestDiffValueIndependence(t *testing.T) {
	cur := project.Project(map[string]any{"a": map[string]any{"b": 1}})
	ops := Diff(project.Project(map[string]any{}), cur)
	if len(ops) != 1 {
		t.Fatalf("ops = %v", ops)
	}
	// mutating the diffed-from tree must not reach the emitted value
	cur.Get("a").Set("b", project.Project(99))
	if got := ops[0].Value.Get("b"); *got.Int64 != 1 {
		t.Errorf("op value aliased the current tree: %v", got)
	}
}
