package build

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// DefaultPrimaryKey is the field name marked as primary key when a request
// does not name one.
const DefaultPrimaryKey = "Id"

// PropertyOptions asks for one entity built from one model type.
type PropertyOptions struct {
	Model      reflect.Type
	PrimaryKey string // empty means DefaultPrimaryKey
	Superclass string
	Interfaces []string
}

// Equal compares two requests by value.
func (o PropertyOptions) Equal(other PropertyOptions) bool {
	return o.Model == other.Model &&
		o.PrimaryKey == other.PrimaryKey &&
		o.Superclass == other.Superclass &&
		slices.Equal(o.Interfaces, other.Interfaces)
}

// RelationType is the kind of an entity relation
type RelationType int

// Relation kinds. The zero value is invalid.
const (
	OneToOne RelationType = iota + 1
	OneToMany
)

func (t RelationType) String() string {
	switch t {
	case OneToOne:
		return "ONE_TO_ONE"
	case OneToMany:
		return "ONE_TO_MANY"
	default:
		return fmt.Sprintf("RelationType(%d)", int(t))
	}
}

// Valid reports whether t is one of the known kinds.
func (t RelationType) Valid() bool {
	return t == OneToOne || t == OneToMany
}

// ParseRelationType parses ONE_TO_ONE, ONE_TO_MANY, 1:1 or 1:N.
func ParseRelationType(s string) (RelationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ONE_TO_ONE", "1:1":
		return OneToOne, nil
	case "ONE_TO_MANY", "1:N":
		return OneToMany, nil
	}
	return 0, &InvalidEntityRelationError{Input: s}
}

// EntityRelation declares a relation from Source to Target exposed on the
// source entity as Field.
type EntityRelation struct {
	Source    reflect.Type
	Target    reflect.Type
	Field     string
	Kind      RelationType
	LinkField string // existing linking property to reuse, optional
}

// Equal compares two relations by value, ignoring LinkField.
func (r EntityRelation) Equal(other EntityRelation) bool {
	return r.Source == other.Source &&
		r.Target == other.Target &&
		r.Field == other.Field &&
		r.Kind == other.Kind
}

// Blacklist is an ordered set of field names excluded from scalar
// property extraction.
type Blacklist struct {
	names []string
	set   map[string]struct{}
}

// NewBlacklist creates a blacklist holding names.
func NewBlacklist(names ...string) *Blacklist {
	b := &Blacklist{set: make(map[string]struct{})}
	for _, n := range names {
		b.Add(n)
	}
	return b
}

// Add appends name if absent and reports whether it was added.
func (b *Blacklist) Add(name string) bool {
	if b.set == nil {
		b.set = make(map[string]struct{})
	}
	if _, ok := b.set[name]; ok {
		return false
	}
	b.set[name] = struct{}{}
	b.names = append(b.names, name)
	return true
}

// Contains reports whether name is blacklisted. A nil blacklist is empty.
func (b *Blacklist) Contains(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.set[name]
	return ok
}

// Names returns the blacklisted names in insertion order.
func (b *Blacklist) Names() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.names)
}
