package introspect

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/modelschema/internal/schema"
)

type color string

func (color) Values() []string { return []string{"RED", "GREEN"} }

type level int

func (l level) String() string { return "L" + strconv.Itoa(int(l)) }

type priority uint8

func (*priority) Values() []string { return []string{"LOW", "HIGH"} }

type code int32

type label string

type point struct{ X, Y int }

func TestMapType(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want schema.PropertyType
	}{
		{"bool", reflect.TypeFor[bool](), schema.Boolean},
		{"int8", reflect.TypeFor[int8](), schema.Byte},
		{"uint8", reflect.TypeFor[uint8](), schema.Byte},
		{"int16", reflect.TypeFor[int16](), schema.Short},
		{"int", reflect.TypeFor[int](), schema.Int},
		{"int32", reflect.TypeFor[int32](), schema.Int},
		{"uint16", reflect.TypeFor[uint16](), schema.Int},
		{"named int32", reflect.TypeFor[code](), schema.Int},
		{"int64", reflect.TypeFor[int64](), schema.Long},
		{"uint32", reflect.TypeFor[uint32](), schema.Long},
		{"duration", reflect.TypeFor[time.Duration](), schema.Long},
		{"float32", reflect.TypeFor[float32](), schema.Float},
		{"float64", reflect.TypeFor[float64](), schema.Double},
		{"string", reflect.TypeFor[string](), schema.String},
		{"named string", reflect.TypeFor[label](), schema.String},
		{"bytes", reflect.TypeFor[[]byte](), schema.ByteArray},
		{"time", reflect.TypeFor[time.Time](), schema.Date},
		{"boxed int", reflect.TypeFor[*int](), schema.Int},
		{"boxed time", reflect.TypeFor[*time.Time](), schema.Date},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MapType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Type)
			assert.False(t, m.Enum)
		})
	}
}

func TestMapTypeEnums(t *testing.T) {
	tests := []struct {
		name   string
		typ    reflect.Type
		values []string
	}{
		{"string enum", reflect.TypeFor[color](), []string{"RED", "GREEN"}},
		{"boxed enum", reflect.TypeFor[*color](), []string{"RED", "GREEN"}},
		{"stringer", reflect.TypeFor[level](), nil},
		{"pointer receiver", reflect.TypeFor[priority](), []string{"LOW", "HIGH"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MapType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, schema.String, m.Type)
			assert.True(t, m.Enum)
			assert.Equal(t, tt.values, m.EnumValues)
		})
	}
}

func TestMapTypeUnsupported(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeFor[point](),
		reflect.TypeFor[[]string](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[complex128](),
		nil,
	} {
		_, err := MapType(typ)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTypeMapping))

		var tme *TypeMappingError
		require.ErrorAs(t, err, &tme)
		assert.Equal(t, Indirect(typ), tme.Type)
	}
}

func TestTypeMappingErrorMessage(t *testing.T) {
	err := &TypeMappingError{Field: "location", Type: reflect.TypeFor[point]()}
	assert.Equal(t, "modelschema: no property type for field location of type introspect.point", err.Error())
}

func TestEnumValues(t *testing.T) {
	_, ok := EnumValues(reflect.TypeFor[time.Duration]())
	assert.False(t, ok)

	_, ok = EnumValues(reflect.TypeFor[label]())
	assert.False(t, ok)

	values, ok := EnumValues(reflect.TypeFor[color]())
	assert.True(t, ok)
	assert.Equal(t, []string{"RED", "GREEN"}, values)
}
