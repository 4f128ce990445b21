package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/modelschema/internal/schema"
)

// Snapshot is the YAML form of a schema, written to schema.yaml.
type Snapshot struct {
	Version  int              `yaml:"version"`
	Package  string           `yaml:"package"`
	Entities []EntitySnapshot `yaml:"entities"`
}

// EntitySnapshot describes one entity.
type EntitySnapshot struct {
	Name         string                `yaml:"name"`
	Superclass   string                `yaml:"superclass,omitempty"`
	Interfaces   []string              `yaml:"interfaces,omitempty"`
	Properties   []PropertySnapshot    `yaml:"properties"`
	Associations []AssociationSnapshot `yaml:"associations,omitempty"`
}

// PropertySnapshot describes one property.
type PropertySnapshot struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	PrimaryKey bool     `yaml:"primary_key,omitempty"`
	NotNull    bool     `yaml:"not_null,omitempty"`
	EnumValues []string `yaml:"enum_values,omitempty"`
}

// AssociationSnapshot describes one to-one or to-many association.
type AssociationSnapshot struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Target   string `yaml:"target"`
	Property string `yaml:"property"`
}

// NewSnapshot converts s.
func NewSnapshot(s *schema.Schema) Snapshot {
	snap := Snapshot{Version: s.Version, Package: s.DefaultPackage}
	for _, e := range s.Entities {
		es := EntitySnapshot{
			Name:       e.Name,
			Superclass: e.Superclass,
			Interfaces: e.Interfaces,
		}
		for _, p := range e.Properties {
			es.Properties = append(es.Properties, PropertySnapshot{
				Name:       p.Name,
				Type:       string(p.Type),
				PrimaryKey: p.PrimaryKey,
				NotNull:    p.NotNull,
				EnumValues: p.EnumValues,
			})
		}
		for _, a := range e.ToOne {
			es.Associations = append(es.Associations, AssociationSnapshot{
				Name: a.Name, Kind: "to-one", Target: a.Target.Name, Property: a.Property.Name,
			})
		}
		for _, a := range e.ToMany {
			es.Associations = append(es.Associations, AssociationSnapshot{
				Name: a.Name, Kind: "to-many", Target: a.Target.Name, Property: a.Property.Name,
			})
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// WriteSnapshot writes outDir/schema.yaml.
func WriteSnapshot(_ context.Context, s *schema.Schema, outDir string) error {
	data, err := yaml.Marshal(NewSnapshot(s))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "schema.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
