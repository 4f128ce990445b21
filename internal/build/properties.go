package build

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tordrt/modelschema/internal/introspect"
	"github.com/tordrt/modelschema/internal/schema"
)

// EnumSuffix is appended to the name of enumeration properties, which are
// always stored as their string label.
const EnumSuffix = "AsString"

// PropertiesBuilder builds entity properties from model types.
type PropertiesBuilder struct {
	schema *schema.Schema
	prefix string
	fields introspect.FieldLister
	added  map[reflect.Type]bool
}

// NewPropertiesBuilder creates a builder writing into s. Entity names are
// the model's type name preceded by prefix.
func NewPropertiesBuilder(s *schema.Schema, prefix string) *PropertiesBuilder {
	return &PropertiesBuilder{
		schema: s,
		prefix: prefix,
		fields: introspect.Reflector{},
		added:  make(map[reflect.Type]bool),
	}
}

// WithFieldLister replaces the reflection based field lister.
func (b *PropertiesBuilder) WithFieldLister(l introspect.FieldLister) *PropertiesBuilder {
	if l != nil {
		b.fields = l
	}
	return b
}

// EntityName returns the entity name used for model.
func EntityName(prefix string, model reflect.Type) string {
	return prefix + introspect.Indirect(model).Name()
}

// Build adds an entity for model with one property per collected field.
// It returns a nil entity when model was already built.
func (b *PropertiesBuilder) Build(model reflect.Type, blacklist *Blacklist, primaryKey string) (*schema.Entity, error) {
	if model == nil {
		return nil, &InvalidClassError{Message: "the entity class is nil"}
	}
	model = introspect.Indirect(model)
	if model.Kind() != reflect.Struct {
		return nil, &InvalidClassError{Type: model, Message: "entity class must be a struct"}
	}
	if model.Name() == "" {
		return nil, &InvalidClassError{Type: model, Message: "entity class must be a named type"}
	}

	if primaryKey == "" {
		primaryKey = DefaultPrimaryKey
	}

	if b.added[model] {
		return nil, nil
	}
	b.added[model] = true

	entity := b.schema.AddEntity(EntityName(b.prefix, model))

	for _, f := range introspect.CollectWith(b.fields, model) {
		if blacklist.Contains(f.Name) {
			continue
		}

		m, err := introspect.MapType(f.Type)
		if err != nil {
			var tme *introspect.TypeMappingError
			if errors.As(err, &tme) {
				tme.Field = f.Name
			}
			return nil, fmt.Errorf("build entity %s: %w", entity.Name, err)
		}

		if m.Enum {
			p := entity.AddProperty(schema.String, f.Name+EnumSuffix)
			p.EnumValues = m.EnumValues
			p.Field, p.Owner = f.GoName, ownerName(f)
			continue
		}

		p := entity.AddProperty(m.Type, f.Name)
		p.Field, p.Owner = f.GoName, ownerName(f)
		if strings.EqualFold(f.Name, primaryKey) {
			entity.SetPrimaryKey(p)
		}
	}

	return entity, nil
}

func ownerName(f introspect.Field) string {
	if f.Owner == nil {
		return ""
	}
	return f.Owner.Name()
}

// Built reports whether model already has an entity.
func (b *PropertiesBuilder) Built(model reflect.Type) bool {
	return b.added[introspect.Indirect(model)]
}
