package value

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Entry is the native form of a KeyValue.
type Entry[T any] struct {
	Key   string
	Value T
}

// Sorted is the native form of an OrderedMap. Plain Go maps convert to Map.
type Sorted[T any] map[string]T

type entrySource interface {
	keyValue(path string) (KeyValue, error)
}

type entryTarget interface {
	setKeyValue(kv KeyValue, path string) error
}

type sortedMap interface {
	sorted()
}

var (
	valueType       = reflect.TypeOf((*Value)(nil)).Elem()
	entryTargetType = reflect.TypeOf((*entryTarget)(nil)).Elem()
	sortedMapType   = reflect.TypeOf((*sortedMap)(nil)).Elem()
)

func (e Entry[T]) keyValue(path string) (KeyValue, error) {
	v, err := from(e.Value, path+".value")
	if err != nil {
		return KeyValue{}, err
	}

	return KeyValue{Key: e.Key, Value: v}, nil
}

func (e *Entry[T]) setKeyValue(kv KeyValue, path string) error {
	var v T

	if err := decode(kv.Value, reflect.ValueOf(&v).Elem(), path+".value"); err != nil {
		return err
	}

	e.Key = kv.Key
	e.Value = v

	return nil
}

func (Sorted[T]) sorted() {}

// From converts a native Go value to a Value. Values are returned unchanged,
// nil and nil pointers become Nil, runes (and any int32 type) become Char.
func From(x any) (Value, error) {
	return from(x, "")
}

// MustFrom is From for values known to be convertible; it panics otherwise.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}

	return v
}

func from(x any, path string) (Value, error) {
	// Pointers are resolved first: pointers to variants or entries would
	// otherwise satisfy Value and entrySource through their method sets.
	if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Nil{}, nil
		}

		return from(rv.Elem().Interface(), path)
	}

	switch v := x.(type) {
	case nil:
		return Nil{}, nil
	case Value:
		return v, nil
	case entrySource:
		return v.keyValue(path)

	case rune:
		return Char(v), nil
	case int:
		return Integer(v), nil
	case int8:
		return Integer(v), nil
	case int16:
		return Integer(v), nil
	case int64:
		return Integer(v), nil
	case uint:
		return UInteger(v), nil
	case uint8:
		return UInteger(v), nil
	case uint16:
		return UInteger(v), nil
	case uint32:
		return UInteger(v), nil
	case uint64:
		return UInteger(v), nil
	case string:
		return String(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case bool:
		return Boolean(v), nil
	}

	return fromReflect(reflect.ValueOf(x), path)
}

func fromReflect(rv reflect.Value, path string) (Value, error) {
	switch rv.Kind() {
	case reflect.Int32:
		return Char(rune(rv.Int())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return UInteger(rv.Uint()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Bool:
		return Boolean(rv.Bool()), nil

	case reflect.Slice, reflect.Array:
		l := make(List, rv.Len())

		for i := 0; i < rv.Len(); i++ {
			e, err := from(rv.Index(i).Interface(), indexPath(path, i))
			if err != nil {
				return nil, err
			}

			l[i] = e
		}

		return l, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		m := make(map[string]Value, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()

			e, err := from(iter.Value().Interface(), keyPath(path, key))
			if err != nil {
				return nil, err
			}

			m[key] = e
		}

		if rv.Type().Implements(sortedMapType) {
			return OrderedMap(m), nil
		}

		return Map(m), nil
	}

	if path == "" {
		return nil, fmt.Errorf("%w %v", ErrUnsupportedType, rv.Type())
	}

	return nil, fmt.Errorf("%w %v at %s", ErrUnsupportedType, rv.Type(), path)
}

// To converts a value to a native Go type. Conversion fails with a
// *ConversionError if the kind of the value, or of any nested value, does
// not match the target type; no partial result is ever returned.
func To[T any](v Value) (T, error) {
	var t T

	if err := decode(v, reflect.ValueOf(&t).Elem(), ""); err != nil {
		var zero T
		return zero, err
	}

	return t, nil
}

func decode(v Value, dst reflect.Value, path string) error {
	if v == nil {
		v = Nil{}
	}

	t := dst.Type()

	mismatch := func() error {
		return &ConversionError{
			Target: t.String(),
			Actual: v.Kind(),
			Path:   path,
			Err:    ErrTypeMismatch,
		}
	}

	overflow := func() error {
		return &ConversionError{
			Target: t.String(),
			Actual: v.Kind(),
			Path:   path,
			Err:    ErrOverflow,
		}
	}

	if t == valueType {
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	if t.Kind() != reflect.Pointer && t.Implements(valueType) {
		if reflect.TypeOf(v) != t {
			return mismatch()
		}

		dst.Set(reflect.ValueOf(v))
		return nil
	}

	if reflect.PointerTo(t).Implements(entryTargetType) {
		kv, ok := v.(KeyValue)
		if !ok {
			return mismatch()
		}

		return dst.Addr().Interface().(entryTarget).setKeyValue(kv, path)
	}

	switch t.Kind() {
	case reflect.Pointer:
		if _, ok := v.(Nil); ok {
			dst.Set(reflect.Zero(t))
			return nil
		}

		p := reflect.New(t.Elem())
		if err := decode(v, p.Elem(), path); err != nil {
			return err
		}

		dst.Set(p)
		return nil

	case reflect.Interface:
		if t.NumMethod() > 0 {
			return mismatch()
		}

		dst.Set(reflect.ValueOf(v))
		return nil

	case reflect.Int32:
		c, ok := v.(Char)
		if !ok {
			return mismatch()
		}

		dst.SetInt(int64(c))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		i, ok := v.(Integer)
		if !ok {
			return mismatch()
		}

		if dst.OverflowInt(int64(i)) {
			return overflow()
		}

		dst.SetInt(int64(i))
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		i, ok := v.(UInteger)
		if !ok {
			return mismatch()
		}

		if dst.OverflowUint(uint64(i)) {
			return overflow()
		}

		dst.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := v.(Float)
		if !ok {
			return mismatch()
		}

		if dst.OverflowFloat(float64(f)) {
			return overflow()
		}

		dst.SetFloat(float64(f))
		return nil

	case reflect.String:
		s, ok := v.(String)
		if !ok {
			return mismatch()
		}

		dst.SetString(string(s))
		return nil

	case reflect.Bool:
		b, ok := v.(Boolean)
		if !ok {
			return mismatch()
		}

		dst.SetBool(bool(b))
		return nil

	case reflect.Slice:
		l, ok := v.(List)
		if !ok {
			return mismatch()
		}

		out := reflect.MakeSlice(t, len(l), len(l))
		for i, e := range l {
			if err := decode(e, out.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}

		dst.Set(out)
		return nil

	case reflect.Array:
		l, ok := v.(List)
		if !ok || len(l) != t.Len() {
			return mismatch()
		}

		out := reflect.New(t).Elem()
		for i, e := range l {
			if err := decode(e, out.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}

		dst.Set(out)
		return nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return mismatch()
		}

		var m map[string]Value

		if t.Implements(sortedMapType) {
			om, ok := v.(OrderedMap)
			if !ok {
				return mismatch()
			}
			m = om
		} else {
			um, ok := v.(Map)
			if !ok {
				return mismatch()
			}
			m = um
		}

		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := reflect.MakeMapWithSize(t, len(m))
		for _, key := range keys {
			e := reflect.New(t.Elem()).Elem()
			if err := decode(m[key], e, keyPath(path, key)); err != nil {
				return err
			}

			out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), e)
		}

		dst.Set(out)
		return nil
	}

	return mismatch()
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func keyPath(path, key string) string {
	return path + "[" + strconv.Quote(key) + "]"
}
