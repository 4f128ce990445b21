// Package codegen renders Go entity sources for an assembled schema.
package codegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/tordrt/modelschema/internal/ddl"
	"github.com/tordrt/modelschema/internal/schema"
)

// Writer generates one Go file per entity plus a schema file.
type Writer struct {
	schema  *schema.Schema
	outDir  string
	pkg     string
	workers int
}

// NewWriter creates a writer for s targeting outDir.
func NewWriter(s *schema.Schema, outDir string) *Writer {
	return &Writer{
		schema:  s,
		outDir:  outDir,
		pkg:     PackageName(s.DefaultPackage),
		workers: runtime.GOMAXPROCS(0),
	}
}

// file is a single file generation task.
type file struct {
	name  string
	build func() *jen.File
}

// Generate writes all files, in parallel.
func (w *Writer) Generate(ctx context.Context) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []file{{name: "schema.go", build: w.schemaFile}}
	for _, e := range w.schema.Entities {
		files = append(files, file{
			name:  inflect.Underscore(e.Name) + ".go",
			build: func() *jen.File { return w.entityFile(e) },
		})
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(f)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) write(f file) error {
	var buf bytes.Buffer
	if err := f.build().Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", f.name, err)
	}

	fullPath := filepath.Join(w.outDir, f.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.name, err)
	}

	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}
	return nil
}

func (w *Writer) newFile() *jen.File {
	f := jen.NewFilePathName(w.schema.DefaultPackage, w.pkg)
	f.HeaderComment("Code generated by modelschema. DO NOT EDIT.")
	return f
}

func (w *Writer) schemaFile() *jen.File {
	f := w.newFile()

	f.Comment("SchemaVersion is the version of the schema the entities were generated from.")
	f.Const().Id("SchemaVersion").Op("=").Lit(w.schema.Version)

	f.Comment("Tables lists the table of every entity, in generation order.")
	f.Func().Id("Tables").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, e := range w.schema.Entities {
				g.Lit(ddl.TableName(e))
			}
		})),
	)
	return f
}

func (w *Writer) entityFile(e *schema.Entity) *jen.File {
	f := w.newFile()

	f.Commentf("%s is the model entity for the %s table.", e.Name, ddl.TableName(e))
	f.Type().Id(e.Name).StructFunc(func(g *jen.Group) {
		if e.Superclass != "" {
			g.Id(e.Superclass)
		}
		for _, p := range e.Properties {
			// Promoted from the embedded superclass.
			if e.Superclass != "" && p.Owner == e.Superclass {
				continue
			}
			g.Id(ExportName(p.Name)).Add(goType(p.Type)).Tag(map[string]string{
				"json": p.Name,
				"db":   ddl.ColumnName(p),
			})
		}
		for _, a := range e.ToOne {
			g.Id(ExportName(a.Name)).Op("*").Id(a.Target.Name).Tag(map[string]string{
				"json": a.Name + ",omitempty",
				"db":   "-",
			})
		}
		for _, a := range e.ToMany {
			g.Id(ExportName(a.Name)).Index().Op("*").Id(a.Target.Name).Tag(map[string]string{
				"json": a.Name + ",omitempty",
				"db":   "-",
			})
		}
	})

	f.Commentf("TableName returns the table name of %s.", e.Name)
	f.Func().Params(jen.Op("*").Id(e.Name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(ddl.TableName(e))),
	)

	if len(e.Interfaces) > 0 {
		f.Var().DefsFunc(func(g *jen.Group) {
			for _, iface := range e.Interfaces {
				g.Id("_").Id(iface).Op("=").Parens(jen.Op("*").Id(e.Name)).Parens(jen.Nil())
			}
		})
	}
	return f
}

func goType(t schema.PropertyType) *jen.Statement {
	switch t {
	case schema.Boolean:
		return jen.Bool()
	case schema.Byte:
		return jen.Int8()
	case schema.Short:
		return jen.Int16()
	case schema.Int:
		return jen.Int()
	case schema.Long:
		return jen.Int64()
	case schema.Float:
		return jen.Float32()
	case schema.Double:
		return jen.Float64()
	case schema.ByteArray:
		return jen.Index().Byte()
	case schema.Date:
		return jen.Qual("time", "Time")
	default:
		return jen.String()
	}
}

// ExportName turns a property name into an exported Go identifier:
// id -> ID, userId -> UserID, name -> Name.
func ExportName(name string) string {
	// Casers are stateful, one per call.
	s := cases.Title(language.Und, cases.NoLower).String(name)
	switch {
	case s == "Id":
		return "ID"
	case strings.HasSuffix(s, "Id"):
		return strings.TrimSuffix(s, "Id") + "ID"
	}
	return s
}

// PackageName derives a Go package name from a namespace such as
// github.com/acme/shop/dao or com.acme.shop.dao.
func PackageName(namespace string) string {
	name := namespace
	if i := strings.LastIndexAny(name, "/."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, name)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "model"
	}
	return name
}
