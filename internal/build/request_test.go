package build

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyOptionsEqual(t *testing.T) {
	a := PropertyOptions{Model: reflect.TypeFor[customer](), Interfaces: []string{"Auditable"}}
	b := PropertyOptions{Model: reflect.TypeFor[customer](), Interfaces: []string{"Auditable"}}
	assert.True(t, a.Equal(b))

	b.PrimaryKey = "Code"
	assert.False(t, a.Equal(b))

	c := a
	c.Model = reflect.TypeFor[purchase]()
	assert.False(t, a.Equal(c))
}

func TestEntityRelationEqual(t *testing.T) {
	a := EntityRelation{
		Source: reflect.TypeFor[customer](),
		Target: reflect.TypeFor[purchase](),
		Field:  "orders",
		Kind:   OneToMany,
	}
	b := a
	b.LinkField = "buyerRef"
	assert.True(t, a.Equal(b))

	b.Kind = OneToOne
	assert.False(t, a.Equal(b))
}

func TestRelationType(t *testing.T) {
	tests := []struct {
		in      string
		want    RelationType
		wantErr bool
	}{
		{"ONE_TO_ONE", OneToOne, false},
		{"one_to_many", OneToMany, false},
		{"1:1", OneToOne, false},
		{"1:n", OneToMany, false},
		{"MANY_TO_MANY", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRelationType(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidEntityRelation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRelationType("many-to-many")
	var relErr *InvalidEntityRelationError
	require.ErrorAs(t, err, &relErr)
	assert.Equal(t, "many-to-many", relErr.Input)
	assert.Contains(t, err.Error(), `(got "many-to-many")`)

	assert.Equal(t, "ONE_TO_ONE", OneToOne.String())
	assert.Equal(t, "ONE_TO_MANY", OneToMany.String())
	assert.Equal(t, "RelationType(0)", RelationType(0).String())
	assert.False(t, RelationType(0).Valid())
}

func TestLinkPlacement(t *testing.T) {
	p, err := ParseLinkPlacement("")
	require.NoError(t, err)
	assert.Equal(t, PlacementByKind, p)

	p, err = ParseLinkPlacement("Source")
	require.NoError(t, err)
	assert.Equal(t, PlacementSource, p)
	assert.Equal(t, "source", p.String())

	_, err = ParseLinkPlacement("target")
	assert.Error(t, err)
}

func TestBlacklist(t *testing.T) {
	b := NewBlacklist("orders", "orders")
	assert.Equal(t, []string{"orders"}, b.Names())

	assert.True(t, b.Add("profile"))
	assert.False(t, b.Add("orders"))
	assert.True(t, b.Contains("profile"))
	assert.False(t, b.Contains("Profile"))
	assert.Equal(t, []string{"orders", "profile"}, b.Names())

	var empty *Blacklist
	assert.False(t, empty.Contains("orders"))
	assert.Nil(t, empty.Names())

	var zero Blacklist
	assert.True(t, zero.Add("x"))
	assert.True(t, zero.Contains("x"))
}
