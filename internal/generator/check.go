package generator

import (
	"errors"
	"fmt"

	"github.com/tordrt/modelschema/internal/codegen"
	"github.com/tordrt/modelschema/internal/ddl"
	"github.com/tordrt/modelschema/internal/schema"
)

// Structural errors found by Check.
var (
	ErrDuplicateProperty = errors.New("modelschema: duplicate property")
	ErrDuplicateEntity   = errors.New("modelschema: duplicate entity")
	ErrDanglingTarget    = errors.New("modelschema: association target not in schema")
	ErrNameConflict      = errors.New("modelschema: generated name conflict")
)

// Check verifies that s is structurally complete: unique entity names,
// unique property names inside an entity, and association targets and
// linking properties that belong to the schema. Names that differ in the
// schema but collide once rendered, such as userId and userID, are
// rejected as well.
func Check(s *schema.Schema) error {
	entities := make(map[*schema.Entity]bool, len(s.Entities))
	names := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		if names[e.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.Name)
		}
		names[e.Name] = true
		entities[e] = true

		props := make(map[string]bool, len(e.Properties))
		for _, p := range e.Properties {
			if props[p.Name] {
				return fmt.Errorf("%w: %s.%s", ErrDuplicateProperty, e.Name, p.Name)
			}
			props[p.Name] = true
		}
		if err := checkRendered(e); err != nil {
			return err
		}
	}

	for _, e := range s.Entities {
		for _, a := range e.ToOne {
			if err := checkAssociation(entities, e, a.Target, a.Property, a.Name); err != nil {
				return err
			}
		}
		for _, a := range e.ToMany {
			if err := checkAssociation(entities, e, a.Target, a.Property, a.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkAssociation(entities map[*schema.Entity]bool, source, target *schema.Entity, link *schema.Property, name string) error {
	if target == nil || !entities[target] {
		return fmt.Errorf("%w: %s.%s", ErrDanglingTarget, source.Name, name)
	}
	if link == nil || (!source.Owns(link) && !target.Owns(link)) {
		return fmt.Errorf("%w: %s.%s has no linking property", ErrDanglingTarget, source.Name, name)
	}
	return nil
}

// checkRendered rejects members of e that map to the same Go field or the
// same column.
func checkRendered(e *schema.Entity) error {
	fields := make(map[string]string)
	columns := make(map[string]string)
	claim := func(seen map[string]string, key, name, what string) error {
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s.%s and %s.%s both map to %s %s",
				ErrNameConflict, e.Name, prev, e.Name, name, what, key)
		}
		seen[key] = name
		return nil
	}

	for _, p := range e.Properties {
		if err := claim(fields, codegen.ExportName(p.Name), p.Name, "Go field"); err != nil {
			return err
		}
		if err := claim(columns, ddl.ColumnName(p), p.Name, "column"); err != nil {
			return err
		}
	}
	for _, a := range e.ToOne {
		if err := claim(fields, codegen.ExportName(a.Name), a.Name, "Go field"); err != nil {
			return err
		}
	}
	for _, a := range e.ToMany {
		if err := claim(fields, codegen.ExportName(a.Name), a.Name, "Go field"); err != nil {
			return err
		}
	}
	return nil
}
