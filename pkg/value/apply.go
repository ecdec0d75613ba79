package value

import (
	"fmt"
	"math"
)

type MutationKind string

const (
	Add     MutationKind = "add"
	Replace MutationKind = "replace"
)

func (k MutationKind) String() string {
	return string(k)
}

func ParseMutationKind(s string) (MutationKind, error) {
	switch k := MutationKind(s); k {
	case Add, Replace:
		return k, nil
	default:
		return "", fmt.Errorf("unknown mutation kind %q", s)
	}
}

// Apply combines the value pointed to by existing with an operand.
//
// Replace always succeeds and stores the operand. Add sums numbers of the
// same kind, concatenates strings, appends the elements of a list operand to
// a list, appends any other operand to a list as a single element, and
// upserts a KeyValue operand into a Map or OrderedMap. Any other
// combination, and integer sums which would overflow, leave the existing
// value unchanged and return false.
func Apply(existing *Value, operand Value, op MutationKind) bool {
	if operand == nil {
		operand = Nil{}
	}

	switch op {
	case Replace:
		*existing = operand
		return true

	case Add:
		v, ok := add(*existing, operand)
		if !ok {
			return false
		}

		*existing = v
		return true

	default:
		return false
	}
}

func add(x, y Value) (Value, bool) {
	switch xv := x.(type) {
	case Integer:
		yv, ok := y.(Integer)
		if !ok {
			return nil, false
		}

		if (yv > 0 && xv > math.MaxInt64-yv) || (yv < 0 && xv < math.MinInt64-yv) {
			return nil, false
		}

		return xv + yv, true

	case UInteger:
		yv, ok := y.(UInteger)
		if !ok || xv > math.MaxUint64-yv {
			return nil, false
		}

		return xv + yv, true

	case Float:
		yv, ok := y.(Float)
		if !ok {
			return nil, false
		}

		return xv + yv, true

	case String:
		yv, ok := y.(String)
		if !ok {
			return nil, false
		}

		return xv + yv, true

	case List:
		// The full slice expression forces a new backing array so that
		// lists sharing storage with xv are never modified.
		base := xv[:len(xv):len(xv)]

		if yv, ok := y.(List); ok {
			return append(base, yv...), true
		}

		return append(base, y), true

	case Map:
		kv, ok := y.(KeyValue)
		if !ok {
			return nil, false
		}

		if xv == nil {
			xv = make(Map)
		}

		xv[kv.Key] = kv.Value
		return xv, true

	case OrderedMap:
		kv, ok := y.(KeyValue)
		if !ok {
			return nil, false
		}

		if xv == nil {
			xv = make(OrderedMap)
		}

		xv[kv.Key] = kv.Value
		return xv, true
	}

	return nil, false
}
