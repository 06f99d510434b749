package project

import (
	"math"
	"testing"

	"github.com/statepatch/statepatch/view"
)

func TestScalars(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want *view.Node
	}{
		{nil, view.Null()},
		{"hi", view.FromString("hi")},
		{int(7), view.FromInt(7)},
		{uint8(7), view.FromInt(7)},
		{1.25, view.FromFloat(1.25)},
		{true, view.FromBool(true)},
	} {
		got := Project(tc.in)
		if !view.Equal(got, tc.want) {
			t.Errorf("Project(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStructDeclarationOrder(t *testing.T) {
	type inner struct {
		HP, X, Y int
	}
	type state struct {
		Name    string
		Objs    []inner
		Enabled bool
	}
	n := Project(state{Name: "s", Objs: []inner{{HP: 100}}, Enabled: true})
	if n.Kind != view.ObjectKind {
		t.Fatalf("kind = %s", n.Kind)
	}
	wantKeys := []string{"Name", "Objs", "Enabled"}
	if len(n.Keys) != len(wantKeys) {
		t.Fatalf("keys = %v", n.Keys)
	}
	for i, k := range wantKeys {
		if n.Keys[i] != k {
			t.Errorf("key[%d] = %q, want %q", i, n.Keys[i], k)
		}
	}
	obj := n.Get("Objs").Index(0)
	if *obj.Get("HP").Int64 != 100 {
		t.Errorf("HP = %v", obj.Get("HP"))
	}
}

func TestEmbeddedStructFlattened(t *testing.T) {
	type Base struct {
		ID int
	}
	type thing struct {
		Base
		Name string
	}
	n := Project(thing{Base: Base{ID: 3}, Name: "x"})
	if got := n.Get("ID"); got == nil || *got.Int64 != 3 {
		t.Errorf("ID = %v", got)
	}
	if n.Get("Base") != nil {
		t.Error("embedded struct not flattened")
	}
}

func TestMapKeyOrder(t *testing.T) {
	n := Project(map[string]int{"b": 2, "a": 1, "c": 3})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if n.Keys[i] != k {
			t.Fatalf("keys = %v, want %v", n.Keys, want)
		}
	}
	n = Project(map[int]string{10: "j", 2: "b", 30: "x"})
	wantInt := []string{"2", "10", "30"}
	for i, k := range wantInt {
		if n.Keys[i] != k {
			t.Fatalf("int keys = %v, want %v", n.Keys, wantInt)
		}
	}
}

type world struct {
	Tick int
}

type player struct {
	HP    int
	Owner *world
}

func (p *player) View() any {
	return map[string]any{"hp": p.HP}
}

func TestHookPrecedence(t *testing.T) {
	w := &world{Tick: 9}
	n := Project(&player{HP: 50, Owner: w})
	if n.Kind != view.ObjectKind {
		t.Fatalf("kind = %s", n.Kind)
	}
	if got := n.Get("hp"); got == nil || *got.Int64 != 50 {
		t.Errorf("hp = %v", got)
	}
	if n.Get("Owner") != nil || n.Get("HP") != nil {
		t.Errorf("raw fields leaked past the hook: keys = %v", n.Keys)
	}
}

type selfReturning struct {
	N int
}

func (s selfReturning) View() any { return s }

type selfWrapping struct {
	N int
}

func (s selfWrapping) View() any {
	return map[string]any{"n": s.N, "self": s}
}

type selfPtr struct {
	N int
}

func (s *selfPtr) View() any { return s }

// a hook whose result leads back to its own receiver must terminate
// with a placeholder, whether the receiver has a stable address or not
func TestHookReturningReceiver(t *testing.T) {
	if n := Project(selfReturning{N: 1}); n.Kind != view.NullKind {
		t.Errorf("value-receiver self hook should project as null, got %v", n)
	}
	p := &selfPtr{N: 1}
	if n := Project(p); n.Kind != view.NullKind {
		t.Errorf("pointer-receiver self hook should project as null, got %v", n)
	}
	// addressable field: identity guard applies via the field's address
	h := &struct{ S selfReturning }{S: selfReturning{N: 3}}
	if n := Project(h); n.Get("S") == nil || n.Get("S").Kind != view.NullKind {
		t.Errorf("addressable self hook should project as null, got %v", n.Get("S"))
	}
	// indirect: the receiver reappears inside the hook result; the
	// expansion must bottom out rather than expand forever
	n := Project(selfWrapping{N: 2})
	if got := n.Get("n"); got == nil || *got.Int64 != 2 {
		t.Errorf("n = %v", got)
	}
}

func TestUintOverflow(t *testing.T) {
	big := uint64(math.MaxUint64)
	n := Project(big)
	if n.Kind != view.NumberKind || n.Float64 == nil {
		t.Fatalf("oversized uint should project as float, got %v", n)
	}
	if *n.Float64 != float64(big) {
		t.Errorf("got %v, want %v", *n.Float64, float64(big))
	}
	if in := Project(uint64(math.MaxInt64)); in.Int64 == nil || *in.Int64 != math.MaxInt64 {
		t.Errorf("max int64 should stay integral, got %v", in)
	}
}

func TestHookOnSliceElements(t *testing.T) {
	ps := []*player{{HP: 1}, {HP: 2}}
	n := Project(ps)
	if n.Len() != 2 {
		t.Fatalf("len = %d", n.Len())
	}
	if *n.Index(1).Get("hp").Int64 != 2 {
		t.Errorf("element hook not applied: %v", n.Index(1))
	}
}

func TestCycleDirect(t *testing.T) {
	type person struct {
		Name string
		Boss *person
	}
	p := &person{Name: "alice"}
	p.Boss = p
	n := Project(p)
	if n.Get("Name").String != "alice" {
		t.Errorf("Name = %v", n.Get("Name"))
	}
	if got := n.Get("Boss"); got == nil || got.Kind != view.NullKind {
		t.Errorf("back-reference should project as null placeholder, got %v", got)
	}
}

func TestCycleViaSlice(t *testing.T) {
	type person struct {
		Name    string
		Reports []*person
	}
	p := &person{Name: "alice"}
	p.Reports = []*person{p}
	n := Project(p)
	rep := n.Get("Reports").Index(0)
	if rep.Kind != view.NullKind {
		t.Errorf("cyclic slice element should be null, got %v", rep)
	}
}

func TestCycleViaMap(t *testing.T) {
	type person struct {
		Name  string
		Peers map[string]*person
	}
	p := &person{Name: "alice", Peers: map[string]*person{}}
	p.Peers["self"] = p
	n := Project(p)
	if got := n.Get("Peers").Get("self"); got.Kind != view.NullKind {
		t.Errorf("cyclic map value should be null, got %v", got)
	}
}

func TestSharedNonCycleNotSuppressed(t *testing.T) {
	type person struct {
		Name string
		Boss *person
	}
	boss := &person{Name: "carol"}
	n := Project([]*person{{Name: "a", Boss: boss}, {Name: "b", Boss: boss}})
	for i := 0; i < 2; i++ {
		if got := n.Index(i).Get("Boss").Get("Name").String; got != "carol" {
			t.Errorf("shared (non-cyclic) reference dropped at %d: %q", i, got)
		}
	}
}

func TestUnprojectable(t *testing.T) {
	type state struct {
		Name string
		Fn   func()
		Ch   chan int
	}
	n := Project(state{Name: "x", Fn: func() {}, Ch: make(chan int)})
	if len(n.Keys) != 1 || n.Keys[0] != "Name" {
		t.Errorf("unprojectable fields should be omitted, keys = %v", n.Keys)
	}

	arr := Project([]any{1, func() {}, "s"})
	if arr.Index(1).Kind != view.NullKind {
		t.Errorf("unprojectable array element should be null, got %v", arr.Index(1))
	}

	root := Project(func() {})
	if root.Kind != view.NullKind {
		t.Errorf("unprojectable root should be null, got %v", root)
	}
}

func TestLiveRootNotMutated(t *testing.T) {
	m := map[string]any{"a": []any{1, 2}}
	n := Project(m)
	n.Get("a").Values[0] = view.FromInt(99)
	if m["a"].([]any)[0] != 1 {
		t.Error("projection aliased the live root")
	}
}
