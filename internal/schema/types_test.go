package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityProperties(t *testing.T) {
	s := New(3, "shop")
	assert.Equal(t, 3, s.Version)
	assert.Equal(t, "shop", s.DefaultPackage)

	user := s.AddEntity("User")
	require.Same(t, user, s.Entity("User"))
	assert.Nil(t, s.Entity("Order"))

	id := user.AddStringProperty("id")
	age := user.AddProperty(Int, "age")
	assert.Equal(t, String, id.Type)
	assert.Same(t, age, user.Property("age"))
	assert.Nil(t, user.Property("missing"))

	assert.True(t, user.Owns(id))
	assert.False(t, user.Owns(&Property{Name: "id"}))
}

func TestSetPrimaryKeyFirstWins(t *testing.T) {
	e := New(1, "").AddEntity("User")
	a := e.AddStringProperty("id")
	b := e.AddStringProperty("ID")

	assert.True(t, e.SetPrimaryKey(a))
	assert.False(t, e.SetPrimaryKey(b))
	assert.Same(t, a, e.PrimaryKey)
	assert.True(t, a.PrimaryKey)
	assert.False(t, b.PrimaryKey)
}

func TestAssociations(t *testing.T) {
	s := New(1, "")
	user, order := s.AddEntity("User"), s.AddEntity("Order")
	link := order.AddStringProperty("userId").MarkNotNull()
	assert.True(t, link.NotNull)

	many := user.AddToMany(order, link, "orders")
	one := order.AddToOne(user, link, "user")
	assert.Equal(t, []*ToMany{many}, user.ToMany)
	assert.Equal(t, []*ToOne{one}, order.ToOne)
	assert.Same(t, order, many.Target)
	assert.Equal(t, "user", one.Name)
}

func TestSuperclassAndInterfaces(t *testing.T) {
	e := New(1, "").AddEntity("User")
	e.SetSuperclass("Model")
	e.ImplementsInterface("Auditable", "Named")
	e.ImplementsInterface("Named")

	assert.Equal(t, "Model", e.Superclass)
	assert.Equal(t, []string{"Auditable", "Named"}, e.Interfaces)
}
