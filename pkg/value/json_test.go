package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEncoding(t *testing.T) {
	tests := []struct {
		value Value
		data  string
	}{
		{Nil{}, `{"type":"nil"}`},
		{Char('x'), `{"type":"char","value":"x"}`},
		{Integer(-42), `{"type":"integer","value":-42}`},
		{UInteger(18446744073709551615),
			`{"type":"uinteger","value":18446744073709551615}`},
		{String("hello"), `{"type":"string","value":"hello"}`},
		{Float(1.5), `{"type":"float","value":1.5}`},
		{Boolean(true), `{"type":"boolean","value":true}`},
		{List{Integer(1), Nil{}},
			`{"type":"list","value":[{"type":"integer","value":1},{"type":"nil"}]}`},
		{Map{"b": Boolean(false), "a": Char('a')},
			`{"type":"map","value":{"a":{"type":"char","value":"a"},"b":{"type":"boolean","value":false}}}`},
		{OrderedMap{"k": String("v")},
			`{"type":"orderedMap","value":{"k":{"type":"string","value":"v"}}}`},
		{KeyValue{Key: "wow", Value: Integer(5)},
			`{"type":"keyValue","value":{"key":"wow","value":{"type":"integer","value":5}}}`},
	}

	for _, test := range tests {
		t.Run(test.value.Kind().String(), func(t *testing.T) {
			data, err := Encode(test.value)
			require.NoError(t, err)
			assert.JSONEq(t, test.data, string(data))

			v, err := Decode([]byte(test.data))
			require.NoError(t, err)
			assert.True(t, Equal(test.value, v),
				"expected %v, got %v", test.value, v)
		})
	}
}

func TestJSONAbsent(t *testing.T) {
	data, err := json.Marshal(struct {
		Previous JSON `json:"previous"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"previous":null}`, string(data))

	v, err := Decode([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONDecodingErrors(t *testing.T) {
	inputs := []string{
		`{"type":"tuple","value":[]}`,
		`{"type":"integer"}`,
		`{"type":"integer","value":"1"}`,
		`{"type":"integer","value":1.5}`,
		`{"type":"uinteger","value":-1}`,
		`{"type":"char","value":"ab"}`,
		`{"type":"char","value":""}`,
		`{"type":"nil","value":1}`,
		`{"type":"list","value":[{"type":"tuple"}]}`,
		`[1, 2]`,
	}

	for _, input := range inputs {
		_, err := Decode([]byte(input))
		assert.Error(t, err, input)
	}
}
