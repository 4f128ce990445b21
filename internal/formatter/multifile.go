package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/modelschema/internal/schema"
)

// Supported documentation formats
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// MultiFileFormatter writes schema to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes the schema to multiple files
func (f *MultiFileFormatter) Format(s *schema.Schema) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeOverview(s); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, entity := range s.Entities {
		if err := f.writeEntityFile(entity, s); err != nil {
			return fmt.Errorf("failed to write entity file for %s: %w", entity.Name, err)
		}
	}

	return nil
}

// writeOverview writes the overview file
func (f *MultiFileFormatter) writeOverview(s *schema.Schema) error {
	ext := f.getFileExtension()
	filename := filepath.Join(f.OutputDir, "_overview"+ext)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	sorted := make([]*schema.Entity, len(s.Entities))
	copy(sorted, s.Entities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(file, "Version %d, package `%s`\n\n", s.Version, s.DefaultPackage)
		_, _ = fmt.Fprintf(file, "Each entity has a corresponding file: `<EntityName>%s`\n\n", ext)
		_, _ = fmt.Fprintf(file, "## Entities\n\n")
	} else {
		_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW (version %d, package %s)\n", s.Version, s.DefaultPackage)
		_, _ = fmt.Fprintf(file, "Each entity has a file: <EntityName>%s\n\n", ext)
	}

	for _, entity := range sorted {
		if f.OutputFormat == FormatMarkdown {
			_, _ = fmt.Fprintf(file, "- **%s**", entity.Name)
		} else {
			_, _ = fmt.Fprintf(file, "%s", entity.Name)
		}

		// Show outgoing associations
		if targets := associationTargets(entity); len(targets) > 0 {
			_, _ = fmt.Fprintf(file, " (references: %s)", strings.Join(targets, ", "))
		}
		_, _ = fmt.Fprintf(file, "\n")
	}

	return nil
}

// writeEntityFile writes a single entity to its own file
func (f *MultiFileFormatter) writeEntityFile(entity *schema.Entity, s *schema.Schema) error {
	filename := filepath.Join(f.OutputDir, entity.Name+f.getFileExtension())

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == FormatMarkdown {
		return NewMarkdownFormatter(file).FormatEntity(entity, s)
	}
	return NewTextFormatter(file).FormatEntity(entity)
}

// IncomingAssociation represents an association pointing to an entity
type IncomingAssociation struct {
	Source      *schema.Entity
	Name        string
	Property    *schema.Property
	Cardinality string
}

// FindIncoming finds all associations targeting entity
func FindIncoming(entity *schema.Entity, s *schema.Schema) []IncomingAssociation {
	var incoming []IncomingAssociation

	for _, e := range s.Entities {
		for _, a := range e.ToOne {
			if a.Target == entity {
				incoming = append(incoming, IncomingAssociation{Source: e, Name: a.Name, Property: a.Property, Cardinality: "1:1"})
			}
		}
		for _, a := range e.ToMany {
			if a.Target == entity {
				incoming = append(incoming, IncomingAssociation{Source: e, Name: a.Name, Property: a.Property, Cardinality: "1:N"})
			}
		}
	}

	return incoming
}

func associationTargets(entity *schema.Entity) []string {
	var targets []string
	for _, a := range entity.ToOne {
		targets = append(targets, a.Target.Name)
	}
	for _, a := range entity.ToMany {
		targets = append(targets, a.Target.Name)
	}
	return targets
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
