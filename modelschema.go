// Package modelschema assembles a relational schema from Go data-model types
// and hands it to a generator that writes entity sources, documentation and
// DDL.
//
// modelschema reads the exported fields of registered struct types through
// reflection, turns them into typed entity properties, resolves the declared
// relations between the resulting entities and finally calls the generator
// exactly once.
//
// # Quick Start
//
// A build program registers its models and relations, then generates:
//
//	b := modelschema.New(1, "github.com/acme/shop/dao", "gen")
//	b.AddPropertyOptions(modelschema.PropertyOptions{Model: modelschema.Model[User]()})
//	b.AddPropertyOptions(modelschema.PropertyOptions{Model: modelschema.Model[Order]()})
//	b.AddRelation(modelschema.EntityRelation{
//		Source: modelschema.Model[User](),
//		Target: modelschema.Model[Order](),
//		Field:  "orders",
//		Kind:   modelschema.OneToMany,
//	})
//	err := b.Generate(context.Background())
//
// # Models
//
// Every exported field of a model becomes a property. Embedded structs are
// treated as parent levels whose fields follow the model's own fields. The
// property name is the `schema` struct tag, or the Go field name with its
// leading capitals lowered (ID becomes id, UserName becomes userName).
// Fields tagged `schema:"-"` are skipped, and so is every name on the
// blacklist. The field named "Id" (case-insensitively, or the name given in
// PropertyOptions.PrimaryKey) becomes the primary key.
//
// Enumerations, that is named types listing their labels through
// Values() []string or named integer types implementing fmt.Stringer, are
// stored as a String property named <field>AsString.
//
// # Relations
//
// A relation links two registered models. Its exposed field name is
// blacklisted so the Go field holding the related models is not read as a
// scalar. The linking property is reused when EntityRelation.LinkField names
// an existing property, otherwise a not-null String property named after the
// other entity plus the id suffix is created. For ONE_TO_MANY the linking
// property lives on the related entity, for ONE_TO_ONE on the source entity.
//
// # Generation
//
// Without WithGenerator, Generate runs the default pipeline that writes Go
// entity sources and markdown documentation into the output directory. See
// NewCommand for the command-line front end and its configuration file.
package modelschema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/tordrt/modelschema/internal/build"
	"github.com/tordrt/modelschema/internal/generator"
	"github.com/tordrt/modelschema/internal/introspect"
	"github.com/tordrt/modelschema/internal/schema"
)

// Request and schema types.
type (
	PropertyOptions = build.PropertyOptions
	EntityRelation  = build.EntityRelation
	RelationType    = build.RelationType
	LinkPlacement   = build.LinkPlacement

	Schema   = schema.Schema
	Entity   = schema.Entity
	Property = schema.Property

	// Generator consumes the finished schema.
	Generator = generator.Generator
	// GeneratorFunc adapts a function to Generator.
	GeneratorFunc = generator.Func
)

// Relation kinds and link placements.
const (
	OneToOne  = build.OneToOne
	OneToMany = build.OneToMany

	PlacementByKind = build.PlacementByKind
	PlacementSource = build.PlacementSource
)

// Error types.
type (
	InvalidClassError          = build.InvalidClassError
	TypeMappingError           = introspect.TypeMappingError
	InvalidEntityError         = build.InvalidEntityError
	InvalidEntityRelationError = build.InvalidEntityRelationError
)

var (
	ErrInvalidClass          = build.ErrInvalidClass
	ErrTypeMapping           = introspect.ErrTypeMapping
	ErrInvalidEntity         = build.ErrInvalidEntity
	ErrInvalidEntityRelation = build.ErrInvalidEntityRelation
	// ErrConsumed is returned by a second call to Builder.Generate.
	ErrConsumed = errors.New("modelschema: builder already generated")
)

// Model returns the model type of T for use in requests.
func Model[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Option configures a Builder.
type Option func(*Builder)

// WithEntityPrefix prepends prefix to every entity name.
func WithEntityPrefix(prefix string) Option {
	return func(b *Builder) { b.entityPrefix = prefix }
}

// WithIDSuffix sets the suffix of synthesized linking properties
// (default "Id").
func WithIDSuffix(suffix string) Option {
	return func(b *Builder) { b.idSuffix = suffix }
}

// WithLinkPlacement chooses which entity holds a relation's linking property.
func WithLinkPlacement(p LinkPlacement) Option {
	return func(b *Builder) { b.placement = p }
}

// WithGenerator replaces the default generation pipeline.
func WithGenerator(g Generator) Option {
	return func(b *Builder) { b.generator = g }
}

// WithLogger sets the logger used during generation.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder collects property and relation requests and assembles the schema.
// A Builder is not safe for concurrent use and generates only once.
type Builder struct {
	schema *schema.Schema
	outDir string

	entityPrefix string
	idSuffix     string
	placement    LinkPlacement
	generator    Generator
	logger       *slog.Logger

	blacklist *build.Blacklist
	props     []PropertyOptions
	relations []EntityRelation
	consumed  bool
}

// New creates a Builder for a schema of the given version whose generated
// code lives in namespace, written to outDir.
func New(version int, namespace, outDir string, opts ...Option) *Builder {
	b := &Builder{
		schema:    schema.New(version, namespace),
		outDir:    outDir,
		idSuffix:  build.DefaultIDSuffix,
		logger:    slog.Default(),
		blacklist: build.NewBlacklist(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPropertyOptions queues an entity request. It reports false when an
// equal request is already queued.
func (b *Builder) AddPropertyOptions(o PropertyOptions) bool {
	if slices.ContainsFunc(b.props, o.Equal) {
		return false
	}
	b.props = append(b.props, o)
	return true
}

// AddRelation queues a relation and blacklists its field name. It reports
// false when an equal relation is already queued.
func (b *Builder) AddRelation(r EntityRelation) bool {
	if slices.ContainsFunc(b.relations, r.Equal) {
		return false
	}
	b.relations = append(b.relations, r)
	b.blacklist.Add(r.Field)
	return true
}

// AddToBlacklist excludes name from property extraction for every entity.
func (b *Builder) AddToBlacklist(name string) bool {
	return b.blacklist.Add(name)
}

// Blacklist returns the blacklisted field names in insertion order.
func (b *Builder) Blacklist() []string {
	return b.blacklist.Names()
}

// Schema returns the schema being assembled.
func (b *Builder) Schema() *Schema {
	return b.schema
}

// OutputDir returns the directory handed to the generator.
func (b *Builder) OutputDir() string {
	return b.outDir
}

// Generate builds every queued entity, then every queued relation, then
// runs the generator once. The first failure stops generation; entities
// built before it stay in the schema.
func (b *Builder) Generate(ctx context.Context) error {
	if b.consumed {
		return ErrConsumed
	}
	b.consumed = true

	if err := b.buildEntities(); err != nil {
		return err
	}
	if err := b.buildRelations(); err != nil {
		return err
	}

	gen := b.generator
	if gen == nil {
		p, err := generator.New(generator.Options{Logger: b.logger})
		if err != nil {
			return err
		}
		gen = p
	}

	b.logger.Debug("running generator", "entities", len(b.schema.Entities), "dir", b.outDir)
	if err := gen.Generate(ctx, b.schema, b.outDir); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

func (b *Builder) buildEntities() error {
	pb := build.NewPropertiesBuilder(b.schema, b.entityPrefix)
	for _, o := range b.props {
		entity, err := pb.Build(o.Model, b.blacklist, o.PrimaryKey)
		if err != nil {
			return err
		}
		if entity == nil {
			b.logger.Debug("model already built", "model", o.Model)
			continue
		}

		if o.Superclass != "" {
			entity.SetSuperclass(o.Superclass)
		}
		if len(o.Interfaces) > 0 {
			entity.ImplementsInterface(o.Interfaces...)
		}
		b.logger.Debug("built entity", "entity", entity.Name, "properties", len(entity.Properties))
	}
	return nil
}

func (b *Builder) buildRelations() error {
	rb := build.NewRelationBuilder(b.schema, build.RelationOptions{
		EntityPrefix: b.entityPrefix,
		IDSuffix:     b.idSuffix,
		Placement:    b.placement,
	})
	for _, r := range b.relations {
		if err := rb.Build(r); err != nil {
			return err
		}
		b.logger.Debug("built relation", "relation", r.Field, "kind", r.Kind)
	}
	return nil
}

// ParseRelationType parses ONE_TO_ONE, ONE_TO_MANY, 1:1 or 1:N.
func ParseRelationType(s string) (RelationType, error) {
	return build.ParseRelationType(s)
}
