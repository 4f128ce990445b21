package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/modelschema/internal/schema"
)

// MarkdownFormatter formats schema as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Entity Schema")
	_, _ = fmt.Fprintln(f.writer)
	_, _ = fmt.Fprintf(f.writer, "Version %d, package `%s`\n\n", s.Version, s.DefaultPackage)

	for _, entity := range s.Entities {
		if err := f.formatEntity(entity, s); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntity formats a single entity (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatEntity(entity *schema.Entity, s *schema.Schema) error {
	return f.formatEntity(entity, s)
}

func (f *MarkdownFormatter) formatEntity(entity *schema.Entity, s *schema.Schema) error {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", entity.Name)

	if entity.Superclass != "" || len(entity.Interfaces) > 0 {
		if entity.Superclass != "" {
			_, _ = fmt.Fprintf(f.writer, "- Extends: %s\n", entity.Superclass)
		}
		if len(entity.Interfaces) > 0 {
			_, _ = fmt.Fprintf(f.writer, "- Implements: %s\n", strings.Join(entity.Interfaces, ", "))
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	f.formatProperties(entity)
	f.formatAssociations(entity)

	incoming := FindIncoming(entity, s)
	if len(incoming) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Referenced by")
		_, _ = fmt.Fprintln(f.writer)
		for _, in := range incoming {
			_, _ = fmt.Fprintf(f.writer, "- %s.%s (%s via %s)\n",
				in.Source.Name, in.Name, in.Cardinality, in.Property.Name)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	return nil
}

func (f *MarkdownFormatter) formatProperties(entity *schema.Entity) {
	_, _ = fmt.Fprintln(f.writer, "### Properties")
	_, _ = fmt.Fprintln(f.writer)

	for _, p := range entity.Properties {
		typeStr := string(p.Type)
		if len(p.EnumValues) > 0 {
			typeStr = fmt.Sprintf("%s (%s)", p.Type, strings.Join(p.EnumValues, "|"))
		}

		constraintStr := formatConstraints(p)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", p.Name, typeStr, constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", p.Name, typeStr)
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatAssociations(entity *schema.Entity) {
	if len(entity.ToOne) == 0 && len(entity.ToMany) == 0 {
		return
	}

	_, _ = fmt.Fprintln(f.writer, "### Associations")
	_, _ = fmt.Fprintln(f.writer)
	for _, a := range entity.ToOne {
		_, _ = fmt.Fprintf(f.writer, "- %s → %s via %s (to-one)\n",
			a.Name, a.Target.Name, linkOwner(entity, a.Target, a.Property))
	}
	for _, a := range entity.ToMany {
		_, _ = fmt.Fprintf(f.writer, "- %s → %s via %s (to-many)\n",
			a.Name, a.Target.Name, linkOwner(entity, a.Target, a.Property))
	}
	_, _ = fmt.Fprintln(f.writer)
}

func formatConstraints(p *schema.Property) string {
	var constraints []string

	if p.PrimaryKey {
		constraints = append(constraints, "PK")
	}

	if p.NotNull {
		constraints = append(constraints, "NOT NULL")
	}

	return strings.Join(constraints, ", ")
}

// linkOwner qualifies the linking property with the entity holding it
func linkOwner(source, target *schema.Entity, p *schema.Property) string {
	if target.Owns(p) && !source.Owns(p) {
		return target.Name + "." + p.Name
	}
	return source.Name + "." + p.Name
}
