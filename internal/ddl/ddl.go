// Package ddl renders CREATE TABLE statements for an assembled schema.
package ddl

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"

	"github.com/tordrt/modelschema/internal/schema"
)

// Dialect is a SQL flavor
type Dialect string

// Supported dialects
const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

var columnTypes = map[Dialect]map[schema.PropertyType]string{
	Postgres: {
		schema.Boolean:   "BOOLEAN",
		schema.Byte:      "SMALLINT",
		schema.Short:     "SMALLINT",
		schema.Int:       "INTEGER",
		schema.Long:      "BIGINT",
		schema.Float:     "REAL",
		schema.Double:    "DOUBLE PRECISION",
		schema.String:    "TEXT",
		schema.ByteArray: "BYTEA",
		schema.Date:      "TIMESTAMP",
	},
	MySQL: {
		schema.Boolean:   "BOOLEAN",
		schema.Byte:      "TINYINT",
		schema.Short:     "SMALLINT",
		schema.Int:       "INT",
		schema.Long:      "BIGINT",
		schema.Float:     "FLOAT",
		schema.Double:    "DOUBLE",
		schema.String:    "VARCHAR(255)",
		schema.ByteArray: "BLOB",
		schema.Date:      "DATETIME",
	},
	SQLite: {
		schema.Boolean:   "BOOLEAN",
		schema.Byte:      "INTEGER",
		schema.Short:     "INTEGER",
		schema.Int:       "INTEGER",
		schema.Long:      "INTEGER",
		schema.Float:     "REAL",
		schema.Double:    "REAL",
		schema.String:    "TEXT",
		schema.ByteArray: "BLOB",
		schema.Date:      "DATETIME",
	},
}

// ParseDialect validates a dialect name
func ParseDialect(name string) (Dialect, error) {
	d := Dialect(strings.ToLower(name))
	if d == "postgresql" {
		d = Postgres
	}
	if _, ok := columnTypes[d]; !ok {
		return "", fmt.Errorf("unsupported dialect: %s (must be postgres, mysql or sqlite)", name)
	}
	return d, nil
}

// TableName returns the table name of an entity: users for User
func TableName(e *schema.Entity) string {
	return inflect.Pluralize(snakeCase(e.Name))
}

// ColumnName returns the column name of a property: user_id for userId
// and userID, url_path for URLPath.
func ColumnName(p *schema.Property) string {
	return snakeCase(p.Name)
}

// snakeCase underscores name after folding every upper-case run to a
// single capital, so acronyms stay one word.
func snakeCase(name string) string {
	r := []rune(name)
	for i := 0; i < len(r); {
		if !unicode.IsUpper(r[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(r) && unicode.IsUpper(r[j]) {
			j++
		}
		end := j
		if j < len(r) && unicode.IsLower(r[j]) {
			end--
		}
		for k := i + 1; k < end; k++ {
			r[k] = unicode.ToLower(r[k])
		}
		i = j
	}
	return inflect.Underscore(string(r))
}

// Statements renders one CREATE TABLE per entity followed by one CREATE
// INDEX per linking property.
func Statements(s *schema.Schema, d Dialect) ([]string, error) {
	types, ok := columnTypes[d]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect: %s", d)
	}

	var stmts []string
	for _, e := range s.Entities {
		stmt, err := createTable(e, d, types)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	seen := make(map[string]bool)
	for _, e := range s.Entities {
		for _, link := range linkingProperties(e) {
			owner := ownerOf(s, link)
			if owner == nil {
				continue
			}
			name := fmt.Sprintf("idx_%s_%s", TableName(owner), ColumnName(link))
			if seen[name] {
				continue
			}
			seen[name] = true
			stmts = append(stmts, createIndex(name, owner, link, d))
		}
	}

	return stmts, nil
}

// WriteFile writes the statements of s to path
func WriteFile(path string, s *schema.Schema, d Dialect) error {
	stmts, err := Statements(s, d)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Code generated by modelschema. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "-- schema version %d, dialect %s\n\n", s.Version, d)
	for _, stmt := range stmts {
		b.WriteString(stmt)
		b.WriteString(";\n\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func createTable(e *schema.Entity, d Dialect, types map[schema.PropertyType]string) (string, error) {
	var cols []string
	for _, p := range e.Properties {
		typ, ok := types[p.Type]
		if !ok {
			return "", fmt.Errorf("entity %s: no %s column type for %s", e.Name, d, p.Type)
		}
		col := quote(d, ColumnName(p)) + " " + typ
		if p.NotNull || p.PrimaryKey {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	if e.PrimaryKey != nil {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", quote(d, ColumnName(e.PrimaryKey))))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		quote(d, TableName(e)), strings.Join(cols, ",\n  ")), nil
}

func createIndex(name string, owner *schema.Entity, p *schema.Property, d Dialect) string {
	ifNotExists := " IF NOT EXISTS"
	if d == MySQL {
		ifNotExists = ""
	}
	return fmt.Sprintf("CREATE INDEX%s %s ON %s (%s)",
		ifNotExists, quote(d, name), quote(d, TableName(owner)), quote(d, ColumnName(p)))
}

func linkingProperties(e *schema.Entity) []*schema.Property {
	var props []*schema.Property
	for _, a := range e.ToOne {
		props = append(props, a.Property)
	}
	for _, a := range e.ToMany {
		props = append(props, a.Property)
	}
	return props
}

func ownerOf(s *schema.Schema, p *schema.Property) *schema.Entity {
	for _, e := range s.Entities {
		if e.Owns(p) {
			return e
		}
	}
	return nil
}

func quote(d Dialect, ident string) string {
	if d == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}
