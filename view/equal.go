package view

// Equal reports deep structural equality of two nodes. Object keys must
// appear in the same order with equal values; number nodes compare by
// numeric value regardless of integer or float representation.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NullKind:
		return true
	case BoolKind:
		return a.Bool == b.Bool
	case StringKind:
		return a.String == b.String
	case NumberKind:
		return numEqual(a, b)
	case ArrayKind:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i := range a.Keys {
			if a.Keys[i] != b.Keys[i] {
				return false
			}
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numEqual(a, b *Node) bool {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return *a.Int64 == *b.Int64
	case a.Float64 != nil && b.Float64 != nil:
		return *a.Float64 == *b.Float64
	case a.Int64 != nil && b.Float64 != nil:
		return float64(*a.Int64) == *b.Float64
	case a.Float64 != nil && b.Int64 != nil:
		return *a.Float64 == float64(*b.Int64)
	default:
		return false
	}
}
