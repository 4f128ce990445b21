// Package build turns data-model types and relation requests into schema
// entities, properties and associations.
package build

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for the build failures.
var (
	// ErrInvalidClass indicates a nil or unusable model type.
	ErrInvalidClass = errors.New("modelschema: invalid class")
	// ErrInvalidEntity indicates a relation references a model without an entity.
	ErrInvalidEntity = errors.New("modelschema: invalid entity")
	// ErrInvalidEntityRelation indicates an unknown relation kind.
	ErrInvalidEntityRelation = errors.New("modelschema: invalid entity relation")
)

// InvalidClassError represents a model type that cannot become an entity.
type InvalidClassError struct {
	Type    reflect.Type
	Message string
}

// Error implements the error interface.
func (e *InvalidClassError) Error() string {
	if e.Type == nil {
		return "modelschema: " + e.Message
	}
	return fmt.Sprintf("modelschema: %s: %s", e.Type, e.Message)
}

// Is reports whether the target matches ErrInvalidClass.
func (e *InvalidClassError) Is(target error) bool {
	return target == ErrInvalidClass
}

// InvalidEntityError represents a relation end with no built entity.
type InvalidEntityError struct {
	Role string // Source or Relation
	Name string
}

// Error implements the error interface.
func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("modelschema: No such %s Entity: %s", e.Role, e.Name)
}

// Is reports whether the target matches ErrInvalidEntity.
func (e *InvalidEntityError) Is(target error) bool {
	return target == ErrInvalidEntity
}

// InvalidEntityRelationError represents a relation of unknown kind.
type InvalidEntityRelationError struct {
	Kind  RelationType
	Input string // unparsed kind, set by ParseRelationType
}

// Error implements the error interface.
func (e *InvalidEntityRelationError) Error() string {
	got := e.Kind.String()
	if e.Input != "" {
		got = fmt.Sprintf("%q", e.Input)
	}
	return fmt.Sprintf("modelschema: Needs a valid Schema Relation type, should be one of: %s, %s (got %s)",
		OneToOne, OneToMany, got)
}

// Is reports whether the target matches ErrInvalidEntityRelation.
func (e *InvalidEntityRelationError) Is(target error) bool {
	return target == ErrInvalidEntityRelation
}
