package codegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/modelschema/internal/schema"
)

func testSchema() *schema.Schema {
	s := schema.New(2, "github.com/acme/shop/dao")

	user := s.AddEntity("User")
	user.SetPrimaryKey(user.AddStringProperty("id"))
	user.AddProperty(schema.Date, "createdAt")
	user.AddProperty(schema.ByteArray, "avatar")
	user.ImplementsInterface("Auditable")

	order := s.AddEntity("OrderLine")
	order.SetPrimaryKey(order.AddStringProperty("id"))
	order.AddProperty(schema.Long, "quantity")
	order.SetSuperclass("Model")

	user.AddToMany(order, order.AddStringProperty("userId").MarkNotNull(), "lines")
	order.AddToOne(user, order.Property("userId"), "owner")
	return s
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(testSchema(), dir).Generate(context.Background()))

	for _, name := range []string{"schema.go", "user.go", "order_line.go"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	user := readFile(t, filepath.Join(dir, "user.go"))
	for _, want := range []string{
		"// Code generated by modelschema. DO NOT EDIT.",
		"package dao",
		`import "time"`,
		"type User struct {",
		"time.Time",
		"[]byte",
		`json:"createdAt"`,
		`db:"created_at"`,
		"[]*OrderLine",
		`json:"lines,omitempty"`,
		"func (*User) TableName() string",
		`return "users"`,
		"_ Auditable = (*User)(nil)",
	} {
		assert.Contains(t, user, want)
	}

	line := readFile(t, filepath.Join(dir, "order_line.go"))
	assert.Contains(t, line, "\tModel\n")
	assert.Contains(t, line, "*User")
	assert.Contains(t, line, `db:"user_id"`)
	assert.Regexp(t, `UserID\s+string`, line)
	assert.Regexp(t, `Quantity\s+int64`, line)
	assert.NotContains(t, line, "import")

	schemaFile := readFile(t, filepath.Join(dir, "schema.go"))
	assert.Contains(t, schemaFile, "const SchemaVersion = 2")
	assert.Contains(t, schemaFile, `return []string{"users", "order_lines"}`)
}

func TestGenerateSkipsSuperclassFields(t *testing.T) {
	s := schema.New(1, "shop")
	order := s.AddEntity("Order")
	order.SetSuperclass("Base")
	id := order.AddStringProperty("id")
	id.Owner = "Base"
	order.SetPrimaryKey(id)
	total := order.AddProperty(schema.Double, "total")
	total.Owner = "Order"
	order.AddStringProperty("userId").MarkNotNull()

	dir := t.TempDir()
	require.NoError(t, NewWriter(s, dir).Generate(context.Background()))

	out := readFile(t, filepath.Join(dir, "order.go"))
	assert.Contains(t, out, "\tBase\n")
	assert.NotContains(t, out, `json:"id"`)
	assert.Regexp(t, `Total\s+float64`, out)
	assert.Regexp(t, `UserID\s+string`, out)
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter(testSchema(), t.TempDir()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportName(t *testing.T) {
	tests := map[string]string{
		"id":             "ID",
		"userId":         "UserID",
		"name":           "Name",
		"statusAsString": "StatusAsString",
		"createdAt":      "CreatedAt",
		"paid":           "Paid",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExportName(in), in)
	}
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"github.com/acme/shop/dao": "dao",
		"com.acme.Shop":            "shop",
		"api-v2":                   "apiv2",
		"":                         "model",
		"acme/9lives":              "model",
	}
	for in, want := range tests {
		assert.Equal(t, want, PackageName(in), in)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
