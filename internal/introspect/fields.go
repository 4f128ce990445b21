// Package introspect reads data-model struct types through reflection.
//
// A struct's own exported fields form one level of its hierarchy; every
// embedded struct is treated as a parent level. CollectFields walks the
// hierarchy most-derived first.
package introspect

import (
	"reflect"
	"strings"
	"unicode"
)

// TagName is the struct tag consulted for field names.
const TagName = "schema"

// Field is one declared data-model field
type Field struct {
	Name   string // schema-level name
	GoName string
	Type   reflect.Type
	Owner  reflect.Type // struct level that declares the field
}

// FieldLister lists the fields of one hierarchy level and its parents.
type FieldLister interface {
	ListFields(t reflect.Type) []Field
	ParentsOf(t reflect.Type) []reflect.Type
}

// Reflector implements FieldLister with package reflect.
type Reflector struct{}

// ListFields returns the fields declared directly on t.
func (Reflector) ListFields(t reflect.Type) []Field {
	return DeclaredFields(t)
}

// ParentsOf returns the embedded struct types of t.
func (Reflector) ParentsOf(t reflect.Type) []reflect.Type {
	return Parents(t)
}

// Indirect strips pointer levels from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// DeclaredFields returns the exported, non-embedded fields of t in
// declaration order. Fields tagged `schema:"-"` are left out.
func DeclaredFields(t reflect.Type) []Field {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name, ok := fieldName(sf)
		if !ok {
			continue
		}
		fields = append(fields, Field{
			Name:   name,
			GoName: sf.Name,
			Type:   sf.Type,
			Owner:  t,
		})
	}
	return fields
}

// Parents returns the struct types embedded in t, in declaration order.
func Parents(t reflect.Type) []reflect.Type {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var parents []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		if v, ok := sf.Tag.Lookup(TagName); ok && v == "-" {
			continue
		}
		if pt := Indirect(sf.Type); pt.Kind() == reflect.Struct {
			parents = append(parents, pt)
		}
	}
	return parents
}

// CollectFields returns the fields of t followed by the fields of every
// parent, recursively. Shadowed names from different levels all appear.
// A type embedding itself, directly or through its parents, is walked once.
func CollectFields(t reflect.Type) []Field {
	return CollectWith(Reflector{}, t)
}

// CollectWith is CollectFields over an arbitrary FieldLister.
func CollectWith(l FieldLister, t reflect.Type) []Field {
	return collect(l, t, make(map[reflect.Type]bool), nil)
}

// collect skips any level already on the current embedding path.
func collect(l FieldLister, t reflect.Type, path map[reflect.Type]bool, fields []Field) []Field {
	if t == nil || path[Indirect(t)] {
		return fields
	}
	path[Indirect(t)] = true
	defer delete(path, Indirect(t))

	fields = append(fields, l.ListFields(t)...)
	for _, p := range l.ParentsOf(t) {
		fields = collect(l, p, path, fields)
	}
	return fields
}

func fieldName(sf reflect.StructField) (string, bool) {
	if v, ok := sf.Tag.Lookup(TagName); ok {
		name, _, _ := strings.Cut(v, ",")
		switch name {
		case "-":
			return "", false
		case "":
		default:
			return name, true
		}
	}
	return LowerFirst(sf.Name), true
}

// LowerFirst lowers the leading upper-case run of a Go identifier, keeping
// the last upper-case letter when it starts the next word:
// ID -> id, UserName -> userName, URLPath -> urlPath.
func LowerFirst(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == len(r) || n == 1:
	default:
		if unicode.IsLower(r[n]) {
			n--
		}
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
