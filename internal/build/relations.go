package build

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tordrt/modelschema/internal/schema"
)

// DefaultIDSuffix is appended to synthesized linking property names.
const DefaultIDSuffix = "Id"

// LinkPlacement decides which entity receives a relation's linking property.
type LinkPlacement int

const (
	// PlacementByKind puts the linking property on the relation entity for
	// ONE_TO_MANY and on the source entity for ONE_TO_ONE.
	PlacementByKind LinkPlacement = iota
	// PlacementSource always puts the linking property on the source entity.
	PlacementSource
)

func (p LinkPlacement) String() string {
	if p == PlacementSource {
		return "source"
	}
	return "by-kind"
}

// ParseLinkPlacement parses "by-kind" (or "") and "source".
func ParseLinkPlacement(s string) (LinkPlacement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "by-kind":
		return PlacementByKind, nil
	case "source":
		return PlacementSource, nil
	}
	return 0, fmt.Errorf("invalid link placement: %s (must be 'by-kind' or 'source')", s)
}

// RelationOptions configures a RelationBuilder.
type RelationOptions struct {
	EntityPrefix string
	IDSuffix     string // empty means DefaultIDSuffix
	Placement    LinkPlacement
}

// RelationBuilder resolves relations between entities already in a schema.
type RelationBuilder struct {
	schema *schema.Schema
	opts   RelationOptions
}

// NewRelationBuilder creates a relation builder over s.
func NewRelationBuilder(s *schema.Schema, opts RelationOptions) *RelationBuilder {
	if opts.IDSuffix == "" {
		opts.IDSuffix = DefaultIDSuffix
	}
	return &RelationBuilder{schema: s, opts: opts}
}

// FindEntity returns the entity built for model. role names the relation
// end in the error.
func (b *RelationBuilder) FindEntity(model reflect.Type, role string) (*schema.Entity, error) {
	if model == nil {
		return nil, &InvalidEntityError{Role: role, Name: "<nil>"}
	}
	name := EntityName(b.opts.EntityPrefix, model)
	for _, e := range b.schema.Entities {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, &InvalidEntityError{Role: role, Name: name}
}

// Build attaches the association described by rel to its source entity.
func (b *RelationBuilder) Build(rel EntityRelation) error {
	if !rel.Kind.Valid() {
		return &InvalidEntityRelationError{Kind: rel.Kind}
	}

	source, err := b.FindEntity(rel.Source, "Source")
	if err != nil {
		return err
	}
	target, err := b.FindEntity(rel.Target, "Relation")
	if err != nil {
		return err
	}

	link := b.linkProperty(rel, source, target)

	switch rel.Kind {
	case OneToMany:
		source.AddToMany(target, link, rel.Field)
	case OneToOne:
		source.AddToOne(target, link, rel.Field)
	}
	return nil
}

// linkProperty finds or creates the property carrying the relation key.
func (b *RelationBuilder) linkProperty(rel EntityRelation, source, target *schema.Entity) *schema.Property {
	holder, other := source, target
	if rel.Kind == OneToMany && b.opts.Placement == PlacementByKind {
		holder, other = target, source
	}

	if rel.LinkField != "" {
		if p := holder.Property(rel.LinkField); p != nil {
			return p
		}
		return holder.AddStringProperty(rel.LinkField).MarkNotNull()
	}

	name := strings.ToLower(other.Name) + b.opts.IDSuffix
	return holder.AddStringProperty(name).MarkNotNull()
}
