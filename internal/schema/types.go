package schema

import "slices"

// PropertyType is the type tag of a schema property
type PropertyType string

// Property type vocabulary understood by the generation backends
const (
	Boolean   PropertyType = "Boolean"
	Byte      PropertyType = "Byte"
	Short     PropertyType = "Short"
	Int       PropertyType = "Int"
	Long      PropertyType = "Long"
	Float     PropertyType = "Float"
	Double    PropertyType = "Double"
	String    PropertyType = "String"
	ByteArray PropertyType = "ByteArray"
	Date      PropertyType = "Date"
)

// Schema represents the complete set of entities being assembled
type Schema struct {
	Version        int
	DefaultPackage string
	Entities       []*Entity
}

// Entity represents one table descriptor
type Entity struct {
	Name       string
	Properties []*Property
	PrimaryKey *Property
	ToOne      []*ToOne
	ToMany     []*ToMany
	Superclass string
	Interfaces []string
}

// Property represents one column of an entity
type Property struct {
	Name       string
	Type       PropertyType
	PrimaryKey bool
	NotNull    bool
	EnumValues []string
	Field      string // originating Go field, empty for synthesized properties
	Owner      string // Go type declaring Field
}

// ToOne represents a to-one association
type ToOne struct {
	Target   *Entity
	Property *Property
	Name     string
}

// ToMany represents a to-many association
type ToMany struct {
	Target   *Entity
	Property *Property
	Name     string
}

// New creates an empty schema
func New(version int, defaultPackage string) *Schema {
	return &Schema{
		Version:        version,
		DefaultPackage: defaultPackage,
	}
}

// AddEntity appends a new entity with the given name.
// Names are not checked for uniqueness.
func (s *Schema) AddEntity(name string) *Entity {
	e := &Entity{Name: name}
	s.Entities = append(s.Entities, e)
	return e
}

// Entity returns the first entity with the given name, or nil
func (s *Schema) Entity(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// AddProperty appends a property of the given type
func (e *Entity) AddProperty(t PropertyType, name string) *Property {
	p := &Property{Name: name, Type: t}
	e.Properties = append(e.Properties, p)
	return p
}

// AddStringProperty appends a String property
func (e *Entity) AddStringProperty(name string) *Property {
	return e.AddProperty(String, name)
}

// Property returns the first property with the given name, or nil
func (e *Entity) Property(name string) *Property {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Owns reports whether p belongs to this entity
func (e *Entity) Owns(p *Property) bool {
	return slices.Contains(e.Properties, p)
}

// SetPrimaryKey marks p as the primary key. The first call wins; later
// calls leave the entity untouched and return false.
func (e *Entity) SetPrimaryKey(p *Property) bool {
	if e.PrimaryKey != nil {
		return false
	}
	p.PrimaryKey = true
	e.PrimaryKey = p
	return true
}

// AddToOne attaches a to-one association through the linking property
func (e *Entity) AddToOne(target *Entity, link *Property, name string) *ToOne {
	a := &ToOne{Target: target, Property: link, Name: name}
	e.ToOne = append(e.ToOne, a)
	return a
}

// AddToMany attaches a to-many association through the linking property
func (e *Entity) AddToMany(target *Entity, link *Property, name string) *ToMany {
	a := &ToMany{Target: target, Property: link, Name: name}
	e.ToMany = append(e.ToMany, a)
	return a
}

// SetSuperclass records the superclass name passed through to generators
func (e *Entity) SetSuperclass(name string) {
	e.Superclass = name
}

// ImplementsInterface records interface names passed through to generators
func (e *Entity) ImplementsInterface(names ...string) {
	for _, n := range names {
		if !slices.Contains(e.Interfaces, n) {
			e.Interfaces = append(e.Interfaces, n)
		}
	}
}

// MarkNotNull sets the not-null flag and returns the property for chaining
func (p *Property) MarkNotNull() *Property {
	p.NotNull = true
	return p
}
