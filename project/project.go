// Package project converts arbitrary live Go values into view nodes.
//
// Projection is total: it never fails, never mutates its input and
// always terminates, including on cyclic object graphs. A value may
// customize its projection by implementing Viewer; the hook's result is
// projected in place of the value's raw fields, which is how a node
// keeps back-references and non-serializable handles out of the
// observed tree.
package project

import (
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/statepatch/statepatch/debug"
	"github.com/statepatch/statepatch/view"
)

// Viewer is the canonical-serialization hook. Implementing it is a
// capability test, not inheritance: any value (or its address) that has
// View is projected from the hook's result instead of its raw shape.
type Viewer interface {
	View() any
}

var viewerType = reflect.TypeOf((*Viewer)(nil)).Elem()

// Project converts v to its canonical view. Unsupported values (funcs,
// channels, unsafe pointers) are dropped from objects and rendered as
// null elsewhere; a reference that reappears in its own ancestry is
// rendered as a null placeholder rather than recursed into.
func Project(v any) *view.Node {
	if v == nil {
		return view.Null()
	}
	p := projector{onStack: map[uintptr]struct{}{}}
	n := p.value(reflect.ValueOf(v))
	if n == nil {
		n = view.Null()
	}
	if debug.Project() {
		debug.Logf("projected %s %v\n", n.Kind.String(), n)
	}
	return n
}

type projector struct {
	// live pointer identities on the active projection stack
	onStack   map[uintptr]struct{}
	hookDepth int
}

// value returns nil for unprojectable values; callers decide whether
// that means "omit" (object fields) or "null" (array elements, root).
func (p *projector) value(val reflect.Value) *view.Node {
	if !val.IsValid() {
		return view.Null()
	}

	if hook, ok := asViewer(val); ok {
		return p.hooked(val, hook)
	}

	switch val.Kind() {
	case reflect.String:
		return view.FromString(val.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return view.FromInt(val.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return view.FromFloat(float64(u))
		}
		return view.FromInt(int64(u))

	case reflect.Float32, reflect.Float64:
		return view.FromFloat(val.Float())

	case reflect.Bool:
		return view.FromBool(val.Bool())

	case reflect.Ptr:
		if val.IsNil() {
			return view.Null()
		}
		addr := val.Pointer()
		if _, seen := p.onStack[addr]; seen {
			return view.Null()
		}
		p.onStack[addr] = struct{}{}
		defer delete(p.onStack, addr)
		return p.value(val.Elem())

	case reflect.Interface:
		if val.IsNil() {
			return view.Null()
		}
		return p.value(val.Elem())

	case reflect.Slice:
		if val.IsNil() {
			return view.Null()
		}
		addr := val.Pointer()
		if _, seen := p.onStack[addr]; seen {
			return view.Null()
		}
		p.onStack[addr] = struct{}{}
		defer delete(p.onStack, addr)
		return p.array(val)

	case reflect.Array:
		return p.array(val)

	case reflect.Map:
		if val.IsNil() {
			return view.Null()
		}
		addr := val.Pointer()
		if _, seen := p.onStack[addr]; seen {
			return view.Null()
		}
		p.onStack[addr] = struct{}{}
		defer delete(p.onStack, addr)
		return p.mapping(val)

	case reflect.Struct:
		return view.FromKeyVals(p.structFields(val))

	default:
		// func, chan, unsafe pointer, complex: unprojectable
		return nil
	}
}

// maxHookDepth bounds nested hook dispatch for values with no stable
// identity (non-addressable value receivers); far above any legitimate
// tree depth, far below stack exhaustion.
const maxHookDepth = 1000

func (p *projector) hooked(val reflect.Value, hook Viewer) *view.Node {
	// guard on the hooked value's identity so a hook returning its
	// receiver (or an ancestor) still terminates
	var addr uintptr
	switch {
	case val.Kind() == reflect.Ptr && !val.IsNil():
		addr = val.Pointer()
	case val.CanAddr():
		addr = val.Addr().Pointer()
	}
	if addr != 0 {
		if _, seen := p.onStack[addr]; seen {
			return view.Null()
		}
		p.onStack[addr] = struct{}{}
		defer delete(p.onStack, addr)
	}
	if p.hookDepth >= maxHookDepth {
		return view.Null()
	}
	p.hookDepth++
	defer func() { p.hookDepth-- }()
	plain := hook.View()
	if plain == nil {
		return view.Null()
	}
	n := p.value(reflect.ValueOf(plain))
	if n == nil {
		return view.Null()
	}
	return n
}

func (p *projector) array(val reflect.Value) *view.Node {
	n := val.Len()
	elts := make([]*view.Node, n)
	for i := 0; i < n; i++ {
		elt := p.value(val.Index(i))
		if elt == nil {
			elt = view.Null()
		}
		elts[i] = elt
	}
	return view.FromSlice(elts)
}

// mapping projects a map into an object node. String keys enumerate in
// sorted order, integer keys in numeric order with decimal string
// renderings; maps with other key types are unprojectable.
func (p *projector) mapping(val reflect.Value) *view.Node {
	switch val.Type().Key().Kind() {
	case reflect.String:
		keys := make([]string, 0, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		kvs := make([]view.KeyVal, 0, len(keys))
		for _, k := range keys {
			elt := p.value(val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key())))
			if elt == nil {
				continue
			}
			kvs = append(kvs, view.KeyVal{Key: k, Val: elt})
		}
		return view.FromKeyVals(kvs)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		type intKey struct {
			n   int64
			key reflect.Value
		}
		keys := make([]intKey, 0, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			k := iter.Key()
			var n int64
			switch k.Kind() {
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				n = int64(k.Uint())
			default:
				n = k.Int()
			}
			keys = append(keys, intKey{n: n, key: k})
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].n < keys[j].n })
		kvs := make([]view.KeyVal, 0, len(keys))
		for _, k := range keys {
			elt := p.value(val.MapIndex(k.key))
			if elt == nil {
				continue
			}
			kvs = append(kvs, view.KeyVal{Key: strconv.FormatInt(k.n, 10), Val: elt})
		}
		return view.FromKeyVals(kvs)

	default:
		return nil
	}
}

// structFields projects exported fields in declaration order; embedded
// structs are flattened into the parent object.
func (p *projector) structFields(val reflect.Value) []view.KeyVal {
	typ := val.Type()
	kvs := make([]view.KeyVal, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)
		if field.Anonymous && fieldVal.Kind() == reflect.Struct {
			if _, ok := asViewer(fieldVal); !ok {
				kvs = append(kvs, p.structFields(fieldVal)...)
				continue
			}
		}
		elt := p.value(fieldVal)
		if elt == nil {
			continue
		}
		kvs = append(kvs, view.KeyVal{Key: field.Name, Val: elt})
	}
	return kvs
}

// asViewer checks the value and, when addressable, its address for the
// hook. Dispatch is per node during projection.
func asViewer(val reflect.Value) (Viewer, bool) {
	if !val.IsValid() {
		return nil, false
	}
	typ := val.Type()
	if typ.Implements(viewerType) {
		if (val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface) && val.IsNil() {
			return nil, false
		}
		return val.Interface().(Viewer), true
	}
	if val.CanAddr() && reflect.PointerTo(typ).Implements(viewerType) {
		return val.Addr().Interface().(Viewer), true
	}
	return nil, false
}
