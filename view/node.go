package view

// Node is the canonical, cycle-free projection of a live value. After
// projection only six shapes exist: null, bool, number, string, array
// and object. Objects keep Keys and Values in parallel, preserving the
// enumeration order of the source; arrays use Values only.
type Node struct {
	Kind Kind

	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Kind = n.Kind
	dst.String = n.String
	dst.Bool = n.Bool
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Keys != nil {
		dst.Keys = make([]string, len(n.Keys))
		copy(dst.Keys, n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dstV := &Node{}
			v.CloneTo(dstV)
			dst.Values[i] = dstV
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: NumberKind, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Kind: NumberKind, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func Null() *Node {
	return &Node{Kind: NullKind}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Kind: ArrayKind, Values: vs}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node preserving the given key order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Kind:   ObjectKind,
		Keys:   make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		res.Keys[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Kind: ObjectKind}
}

func (n *Node) Get(key string) *Node {
	for i := range n.Keys {
		if n.Keys[i] == key {
			return n.Values[i]
		}
	}
	return nil
}

func (n *Node) Index(i int) *Node {
	if i < 0 || i >= len(n.Values) {
		return nil
	}
	return n.Values[i]
}

func (n *Node) Len() int {
	return len(n.Values)
}

// Set replaces the value at key, appending the key when absent.
func (n *Node) Set(key string, v *Node) {
	for i := range n.Keys {
		if n.Keys[i] == key {
			n.Values[i] = v
			return
		}
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}
