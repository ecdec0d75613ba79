// Package value implements the closed family of values which can be stored
// in a store, conversions from and to native Go types, and the mutation
// operator used to update values in place.
package value

import (
	"sort"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNil Kind = iota
	KindChar
	KindInteger
	KindUInteger
	KindString
	KindFloat
	KindBoolean
	KindList
	KindMap
	KindOrderedMap
	KindKeyValue
)

var kindNames = map[Kind]string{
	KindNil:        "nil",
	KindChar:       "char",
	KindInteger:    "integer",
	KindUInteger:   "uinteger",
	KindString:     "string",
	KindFloat:      "float",
	KindBoolean:    "boolean",
	KindList:       "list",
	KindMap:        "map",
	KindOrderedMap: "orderedMap",
	KindKeyValue:   "keyValue",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}

	return 0, false
}

// Value is a stored value. Only the types of this package implement it:
//
//   - Nil
//   - Char
//   - Integer
//   - UInteger
//   - String
//   - Float
//   - Boolean
//   - List
//   - Map
//   - OrderedMap
//   - KeyValue
type Value interface {
	Kind() Kind
	String() string

	value() // sealed
}

type Nil struct{}

type Char rune

type Integer int64

type UInteger uint64

type String string

type Float float64

type Boolean bool

type List []Value

type Map map[string]Value

// OrderedMap is always enumerated in ascending key order.
type OrderedMap map[string]Value

type KeyValue struct {
	Key   string
	Value Value
}

func (Nil) value()        {}
func (Char) value()       {}
func (Integer) value()    {}
func (UInteger) value()   {}
func (String) value()     {}
func (Float) value()      {}
func (Boolean) value()    {}
func (List) value()       {}
func (Map) value()        {}
func (OrderedMap) value() {}
func (KeyValue) value()   {}

func (Nil) Kind() Kind        { return KindNil }
func (Char) Kind() Kind       { return KindChar }
func (Integer) Kind() Kind    { return KindInteger }
func (UInteger) Kind() Kind   { return KindUInteger }
func (String) Kind() Kind     { return KindString }
func (Float) Kind() Kind      { return KindFloat }
func (Boolean) Kind() Kind    { return KindBoolean }
func (List) Kind() Kind       { return KindList }
func (Map) Kind() Kind        { return KindMap }
func (OrderedMap) Kind() Kind { return KindOrderedMap }
func (KeyValue) Kind() Kind   { return KindKeyValue }

func (Nil) String() string { return "nil" }

func (c Char) String() string {
	return strconv.QuoteRune(rune(c))
}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i UInteger) String() string {
	return strconv.FormatUint(uint64(i), 10) + "u"
}

func (s String) String() string {
	return strconv.Quote(string(s))
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (l List) String() string {
	var buf strings.Builder

	buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(Format(v))
	}
	buf.WriteByte(']')

	return buf.String()
}

func (m Map) String() string {
	return formatEntries(m, sortedKeys(m))
}

func (m OrderedMap) String() string {
	return formatEntries(m, m.Keys())
}

func (kv KeyValue) String() string {
	return strconv.Quote(kv.Key) + ": " + Format(kv.Value)
}

// Keys returns the keys of the map in ascending order.
func (m OrderedMap) Keys() []string {
	return sortedKeys(m)
}

// Values returns the values of the map ordered by key.
func (m OrderedMap) Values() []Value {
	keys := m.Keys()

	values := make([]Value, len(keys))
	for i, key := range keys {
		values[i] = m[key]
	}

	return values
}

// Format formats a value which may be a nil interface.
func Format(v Value) string {
	if v == nil {
		return "<absent>"
	}

	return v.String()
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func formatEntries(m map[string]Value, keys []string) string {
	var buf strings.Builder

	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.WriteString(strconv.Quote(key))
		buf.WriteString(": ")
		buf.WriteString(Format(m[key]))
	}
	buf.WriteByte('}')

	return buf.String()
}

// Equal reports whether two values have the same kind and the same content,
// recursively. Two absent values (nil interfaces) are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true

	case Map:
		return equalEntries(av, b.(Map))

	case OrderedMap:
		return equalEntries(av, b.(OrderedMap))

	case KeyValue:
		bv := b.(KeyValue)
		return av.Key == bv.Key && Equal(av.Value, bv.Value)

	default:
		return a == b
	}
}

func equalEntries(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}

	for key, av := range a {
		bv, found := b[key]
		if !found || !Equal(av, bv) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of a value; the copy shares no container with
// the original.
func Clone(v Value) Value {
	switch vv := v.(type) {
	case List:
		if vv == nil {
			return List(nil)
		}

		l := make(List, len(vv))
		for i, e := range vv {
			l[i] = Clone(e)
		}

		return l

	case Map:
		if vv == nil {
			return Map(nil)
		}

		m := make(Map, len(vv))
		for key, e := range vv {
			m[key] = Clone(e)
		}

		return m

	case OrderedMap:
		if vv == nil {
			return OrderedMap(nil)
		}

		m := make(OrderedMap, len(vv))
		for key, e := range vv {
			m[key] = Clone(e)
		}

		return m

	case KeyValue:
		return KeyValue{Key: vv.Key, Value: Clone(vv.Value)}

	default:
		return v
	}
}
