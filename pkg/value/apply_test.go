package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAdd(t *testing.T) {
	tests := []struct {
		name     string
		existing Value
		operand  Value
		expected Value
	}{
		{"integer", Integer(5), Integer(5), Integer(10)},
		{"negative integer", Integer(5), Integer(-7), Integer(-2)},
		{"uinteger", UInteger(3), UInteger(4), UInteger(7)},
		{"float", Float(1.5), Float(2.25), Float(3.75)},
		{"string", String("foo"), String("bar"), String("foobar")},
		{"list and list",
			List{Integer(1)}, List{Integer(2), Integer(3)},
			List{Integer(1), Integer(2), Integer(3)}},
		{"list and scalar",
			List{Integer(1)}, String("x"),
			List{Integer(1), String("x")}},
		{"list and nil",
			List{}, Nil{},
			List{Nil{}}},
		{"list and key value",
			List{}, KeyValue{Key: "a", Value: Integer(1)},
			List{KeyValue{Key: "a", Value: Integer(1)}}},
		{"map and key value",
			Map{"a": Integer(1)}, KeyValue{Key: "b", Value: Integer(2)},
			Map{"a": Integer(1), "b": Integer(2)}},
		{"map upsert",
			Map{"a": Integer(1)}, KeyValue{Key: "a", Value: String("x")},
			Map{"a": String("x")}},
		{"nil map and key value",
			Map(nil), KeyValue{Key: "a", Value: Integer(1)},
			Map{"a": Integer(1)}},
		{"ordered map and key value",
			OrderedMap{"b": Integer(2)}, KeyValue{Key: "a", Value: Integer(1)},
			OrderedMap{"a": Integer(1), "b": Integer(2)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := test.existing

			if assert.True(t, Apply(&v, test.operand, Add)) {
				assert.True(t, Equal(test.expected, v),
					"expected %v, got %v", test.expected, v)
			}
		})
	}
}

func TestApplyAddUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		existing Value
		operand  Value
	}{
		{"integer and uinteger", Integer(1), UInteger(1)},
		{"integer and float", Integer(1), Float(1)},
		{"string and char", String("a"), Char('b')},
		{"char and char", Char('a'), Char('b')},
		{"boolean", Boolean(true), Boolean(false)},
		{"nil", Nil{}, Integer(1)},
		{"map and map", Map{}, Map{"a": Integer(1)}},
		{"ordered map and integer", OrderedMap{}, Integer(1)},
		{"key value and key value",
			KeyValue{Key: "a", Value: Integer(1)},
			KeyValue{Key: "b", Value: Integer(2)}},
		{"integer overflow", Integer(math.MaxInt64), Integer(1)},
		{"integer underflow", Integer(math.MinInt64), Integer(-1)},
		{"uinteger overflow", UInteger(math.MaxUint64), UInteger(1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			original := Clone(test.existing)
			v := test.existing

			assert.False(t, Apply(&v, test.operand, Add))
			assert.True(t, Equal(original, v))
		})
	}
}

func TestApplyReplace(t *testing.T) {
	values := []Value{
		Nil{},
		Char('x'),
		Integer(4),
		UInteger(4),
		String("four"),
		Float(4.0),
		Boolean(false),
		List{Integer(4)},
		Map{"four": Integer(4)},
		OrderedMap{"four": Integer(4)},
		KeyValue{Key: "four", Value: Integer(4)},
	}

	for _, existing := range values {
		for _, operand := range values {
			v := Clone(existing)

			assert.True(t, Apply(&v, operand, Replace))
			assert.True(t, Equal(operand, v))
		}
	}
}

func TestApplyUnknownMutation(t *testing.T) {
	v := Value(Integer(1))

	assert.False(t, Apply(&v, Integer(1), MutationKind("multiply")))
	assert.Equal(t, Integer(1), v)
}

func TestParseMutationKind(t *testing.T) {
	k, err := ParseMutationKind("add")
	if assert.NoError(t, err) {
		assert.Equal(t, Add, k)
	}

	k, err = ParseMutationKind("replace")
	if assert.NoError(t, err) {
		assert.Equal(t, Replace, k)
	}

	_, err = ParseMutationKind("remove")
	assert.Error(t, err)
}

func TestApplyAddListDoesNotAlias(t *testing.T) {
	shared := make(List, 1, 4)
	shared[0] = Integer(1)

	var a Value = shared
	var b Value = shared

	assert.True(t, Apply(&a, Integer(2), Add))
	assert.True(t, Apply(&b, List{Integer(3)}, Add))

	assert.Equal(t, List{Integer(1), Integer(2)}, a)
	assert.Equal(t, List{Integer(1), Integer(3)}, b)
	assert.Equal(t, List{Integer(1)}, shared)
}
