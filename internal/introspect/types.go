package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/tordrt/modelschema/internal/schema"
)

// ErrTypeMapping is matched by every *TypeMappingError.
var ErrTypeMapping = errors.New("modelschema: unmapped field type")

// TypeMappingError reports a field type without a schema type tag.
type TypeMappingError struct {
	Field string
	Type  reflect.Type
}

// Error implements the error interface.
func (e *TypeMappingError) Error() string {
	typ := "<nil>"
	if e.Type != nil {
		typ = e.Type.String()
	}
	if e.Field != "" {
		return fmt.Sprintf("modelschema: no property type for field %s of type %s", e.Field, typ)
	}
	return fmt.Sprintf("modelschema: no property type for type %s", typ)
}

// Is reports whether the target matches ErrTypeMapping.
func (e *TypeMappingError) Is(target error) bool {
	return target == ErrTypeMapping
}

// Enum is implemented by enumeration types that can list their labels.
type Enum interface {
	Values() []string
}

// Mapping is the outcome of MapType.
type Mapping struct {
	Type       schema.PropertyType
	Enum       bool
	EnumValues []string
}

var (
	enumType     = reflect.TypeFor[Enum]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	bytesType    = reflect.TypeFor[[]byte]()
)

var kindTypes = map[reflect.Kind]schema.PropertyType{
	reflect.Bool:    schema.Boolean,
	reflect.Int8:    schema.Byte,
	reflect.Uint8:   schema.Byte,
	reflect.Int16:   schema.Short,
	reflect.Int64:   schema.Long,
	reflect.Uint32:  schema.Long,
	reflect.Float32: schema.Float,
	reflect.Float64: schema.Double,
	reflect.String:  schema.String,
}

// MapType maps a field type to a property type tag.
func MapType(t reflect.Type) (Mapping, error) {
	t = Indirect(t)
	if t == nil {
		return Mapping{}, &TypeMappingError{Type: t}
	}

	// int and int32 never reach the enum or kind lookups.
	if t == reflect.TypeFor[int]() || t == reflect.TypeFor[int32]() {
		return Mapping{Type: schema.Int}, nil
	}

	if values, ok := EnumValues(t); ok {
		return Mapping{Type: schema.String, Enum: true, EnumValues: values}, nil
	}

	switch {
	case t == timeType:
		return Mapping{Type: schema.Date}, nil
	case t == durationType:
		return Mapping{Type: schema.Long}, nil
	case t == bytesType || (t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8):
		return Mapping{Type: schema.ByteArray}, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Uint16:
		return Mapping{Type: schema.Int}, nil
	}
	if pt, ok := kindTypes[t.Kind()]; ok {
		return Mapping{Type: pt}, nil
	}
	return Mapping{}, &TypeMappingError{Type: t}
}

// EnumValues reports whether t is an enumeration and returns its labels
// when the type lists them.
func EnumValues(t reflect.Type) ([]string, bool) {
	if t == nil || t.Name() == "" || t.PkgPath() == "" || t == durationType {
		return nil, false
	}

	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, false
	}

	if implements(t, enumType) {
		// *T carries the methods of both receivers.
		return reflect.New(t).Interface().(Enum).Values(), true
	}

	if t.Kind() != reflect.String && implements(t, stringerType) {
		return nil, true
	}
	return nil, false
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
