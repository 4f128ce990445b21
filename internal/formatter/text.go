package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/modelschema/internal/schema"
)

// TextFormatter formats schema as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the schema in compact text format
func (f *TextFormatter) Format(s *schema.Schema) error {
	for i, entity := range s.Entities {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between entities
		}

		if err := f.FormatEntity(entity); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntity writes a single entity
func (f *TextFormatter) FormatEntity(entity *schema.Entity) error {
	// Entity header with primary key
	pkStr := ""
	if entity.PrimaryKey != nil {
		pkStr = fmt.Sprintf(" (PK: %s)", entity.PrimaryKey.Name)
	}
	_, _ = fmt.Fprintf(f.writer, "ENTITY %s%s\n", entity.Name, pkStr)

	for _, p := range entity.Properties {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", f.formatProperty(p))
	}

	if len(entity.ToOne) > 0 || len(entity.ToMany) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  ASSOCIATIONS:")
		for _, a := range entity.ToOne {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s (1:1, %s)\n", a.Name, a.Target.Name, a.Property.Name)
		}
		for _, a := range entity.ToMany {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s (1:N, %s)\n", a.Name, a.Target.Name, a.Property.Name)
		}
	}

	return nil
}

func (f *TextFormatter) formatProperty(p *schema.Property) string {
	parts := []string{p.Name + ":"}

	// Type with enum values if present
	typeStr := string(p.Type)
	if len(p.EnumValues) > 0 {
		typeStr = fmt.Sprintf("%s (%s)", p.Type, strings.Join(p.EnumValues, "|"))
	}
	parts = append(parts, typeStr)

	if p.PrimaryKey {
		parts = append(parts, "PK")
	}

	if p.NotNull {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}
