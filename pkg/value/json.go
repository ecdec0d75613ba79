package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// JSON wraps a value to encode it as a tagged JSON object:
//
//	{"type": "integer", "value": 42}
//	{"type": "list", "value": [{"type": "string", "value": "a"}]}
//	{"type": "keyValue", "value": {"key": "k", "value": {"type": "nil"}}}
//
// An absent value (nil interface) is encoded as null.
type JSON struct {
	Value Value
}

type taggedValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type jsonKeyValue struct {
	Key   string `json:"key"`
	Value JSON   `json:"value"`
}

func Encode(v Value) ([]byte, error) {
	return json.Marshal(JSON{Value: v})
}

func Decode(data []byte) (Value, error) {
	var j JSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	return j.Value, nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j.Value == nil {
		return []byte("null"), nil
	}

	payload, err := encodePayload(j.Value)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s value: %w", j.Value.Kind(), err)
	}

	return json.Marshal(taggedValue{
		Type:  j.Value.Kind().String(),
		Value: payload,
	})
}

func encodePayload(v Value) (json.RawMessage, error) {
	var payload interface{}

	switch vv := v.(type) {
	case Nil:
		return nil, nil
	case Char:
		payload = string(rune(vv))
	case Integer:
		payload = int64(vv)
	case UInteger:
		payload = uint64(vv)
	case String:
		payload = string(vv)
	case Float:
		payload = float64(vv)
	case Boolean:
		payload = bool(vv)

	case List:
		elements := make([]JSON, len(vv))
		for i, e := range vv {
			elements[i] = JSON{Value: e}
		}
		payload = elements

	case Map:
		payload = jsonEntries(vv)
	case OrderedMap:
		payload = jsonEntries(vv)

	case KeyValue:
		payload = jsonKeyValue{Key: vv.Key, Value: JSON{Value: vv.Value}}

	default:
		return nil, fmt.Errorf("unknown value type %T", v)
	}

	return json.Marshal(payload)
}

func jsonEntries(m map[string]Value) map[string]JSON {
	entries := make(map[string]JSON, len(m))
	for key, e := range m {
		entries[key] = JSON{Value: e}
	}

	return entries
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		j.Value = nil
		return nil
	}

	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}

	kind, found := ParseKind(tv.Type)
	if !found {
		return fmt.Errorf("unknown value type %q", tv.Type)
	}

	v, err := decodePayload(kind, tv.Value)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", kind, err)
	}

	j.Value = v
	return nil
}

func decodePayload(kind Kind, data json.RawMessage) (Value, error) {
	if kind == KindNil {
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			return nil, fmt.Errorf("unexpected payload")
		}

		return Nil{}, nil
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("missing payload")
	}

	switch kind {
	case KindChar:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}

		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("character payload must contain exactly one rune")
		}

		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil

	case KindInteger:
		var i int64
		if err := json.Unmarshal(data, &i); err != nil {
			return nil, err
		}
		return Integer(i), nil

	case KindUInteger:
		var i uint64
		if err := json.Unmarshal(data, &i); err != nil {
			return nil, err
		}
		return UInteger(i), nil

	case KindString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case KindFloat:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return Float(f), nil

	case KindBoolean:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Boolean(b), nil

	case KindList:
		var elements []JSON
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, err
		}

		l := make(List, len(elements))
		for i, e := range elements {
			l[i] = orNil(e.Value)
		}
		return l, nil

	case KindMap, KindOrderedMap:
		var entries map[string]JSON
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}

		m := make(map[string]Value, len(entries))
		for key, e := range entries {
			m[key] = orNil(e.Value)
		}

		if kind == KindOrderedMap {
			return OrderedMap(m), nil
		}
		return Map(m), nil

	case KindKeyValue:
		var kv jsonKeyValue
		if err := json.Unmarshal(data, &kv); err != nil {
			return nil, err
		}
		return KeyValue{Key: kv.Key, Value: orNil(kv.Value.Value)}, nil
	}

	return nil, fmt.Errorf("unhandled value type %s", kind)
}

func orNil(v Value) Value {
	if v == nil {
		return Nil{}
	}

	return v
}
