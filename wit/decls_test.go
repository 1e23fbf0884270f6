package wit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/syntax"
)

func TestCollectRecord(t *testing.T) {
	file := &syntax.File{Items: []syntax.Item{
		&syntax.Record{Name: "LineItem", Fields: []syntax.Field{
			{Name: "SKU", Type: syntax.N("string")},
			{Name: "Quantity", Type: syntax.N("uint32")},
			{Name: "", Type: syntax.N("Base")}, // embedded fields are not named
			{Name: "Owner", Type: syntax.RefTo(syntax.N("Customer"))},
		}},
	}}

	decls, err := Collect(file, Options{})
	require.NoError(t, err)
	require.Contains(t, decls, "line-item")

	decl := decls["line-item"]
	assert.Equal(t, DeclRecord, decl.Kind)
	assert.Equal(t, "LineItem", decl.Source)
	assert.Equal(t, "    record line-item {\n        sku: string,\n        quantity: u32,\n        owner: customer\n    }", decl.Text)
	assert.Equal(t, []string{"customer"}, decl.Refs.Sorted())
}

func TestCollectVariant(t *testing.T) {
	file := &syntax.File{Items: []syntax.Item{
		&syntax.Variant{Name: "Status", Cases: []syntax.Case{
			{Name: "Pending"},
			{Name: "Shipped", Payload: []syntax.TypeExpr{syntax.N("Tracking")}},
			{Name: "Split", Payload: []syntax.TypeExpr{syntax.N("string"), syntax.N("Parcel")}},
		}},
	}}

	decls, err := Collect(file, Options{})
	require.NoError(t, err)

	decl := decls["status"]
	require.NotNil(t, decl)
	assert.Equal(t, DeclVariant, decl.Kind)
	assert.Equal(t, "    variant status {\n        pending,\n        shipped(tracking),\n        split\n    }", decl.Text)
	// Multi-value payloads are dropped entirely, references included
	assert.Equal(t, []string{"tracking"}, decl.Refs.Sorted())
}

func TestCollectEmptyRecordOmittedEmptyVariantKept(t *testing.T) {
	file := &syntax.File{Items: []syntax.Item{
		&syntax.Record{Name: "Marker"},
		&syntax.Record{Name: "Embedded", Fields: []syntax.Field{{Type: syntax.N("Base")}}},
		&syntax.Variant{Name: "Nothing"},
	}}

	decls, err := Collect(file, Options{})
	require.NoError(t, err)

	assert.NotContains(t, decls, "marker")
	assert.NotContains(t, decls, "embedded")
	require.Contains(t, decls, "nothing")
	assert.Equal(t, "    variant nothing {\n\n    }", decls["nothing"].Text)
}

func TestCollectSkipsImpls(t *testing.T) {
	file := &syntax.File{Items: []syntax.Item{
		&syntax.Impl{TypeName: "OrderState"},
	}}

	decls, err := Collect(file, Options{})
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestCollectNamingErrors(t *testing.T) {
	tests := []struct {
		name string
		item syntax.Item
		want string
	}{
		{
			name: "record name",
			item: &syntax.Record{Name: "Item2", Fields: []syntax.Field{{Name: "a", Type: syntax.N("bool")}}},
			want: "record name 'Item2' contains numbers",
		},
		{
			name: "field name",
			item: &syntax.Record{Name: "Item", Fields: []syntax.Field{{Name: "Streams", Type: syntax.N("bool")}}},
			want: "field name 'Streams' contains 'stream'",
		},
		{
			name: "field type",
			item: &syntax.Record{Name: "Item", Fields: []syntax.Field{{Name: "a", Type: syntax.N("Vec3")}}},
			want: "type name 'Vec3' contains numbers",
		},
		{
			name: "variant name",
			item: &syntax.Variant{Name: "StreamKind"},
			want: "variant name 'StreamKind' contains 'stream'",
		},
		{
			name: "case name",
			item: &syntax.Variant{Name: "Kind", Cases: []syntax.Case{{Name: "V2"}}},
			want: "case name 'V2' contains numbers",
		},
		{
			// Validation happens before emptiness is decided
			name: "empty record",
			item: &syntax.Record{Name: "Empty1"},
			want: "record name 'Empty1' contains numbers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Collect(&syntax.File{Items: []syntax.Item{tt.item}}, Options{})
			require.Error(t, err)
			assert.True(t, errors.IsNamingError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCollectCollisions(t *testing.T) {
	file := &syntax.File{Items: []syntax.Item{
		&syntax.Record{Name: "LineItem", Fields: []syntax.Field{{Name: "first", Type: syntax.N("bool")}}},
		&syntax.Record{Name: "line_item", Fields: []syntax.Field{{Name: "second", Type: syntax.N("bool")}}},
	}}

	for _, policy := range []CollisionPolicy{CollisionOverwrite, CollisionReport} {
		t.Run(policy.String(), func(t *testing.T) {
			decls, err := Collect(file, Options{Collisions: policy})
			require.NoError(t, err)
			require.Len(t, decls, 1)
			assert.Equal(t, "line_item", decls["line-item"].Source)
			assert.Contains(t, decls["line-item"].Text, "second: bool")
		})
	}

	t.Run("reject", func(t *testing.T) {
		_, err := Collect(file, Options{Collisions: CollisionReject})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrDeclarationCollision))
		assert.Contains(t, err.Error(), "record LineItem and record line_item both normalize to 'line-item'")
		assert.NotEmpty(t, errors.GetAllHints(err))
	})
}

func TestDeclarationsNames(t *testing.T) {
	decls := Declarations{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, decls.Names())
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseCollisionPolicy("report")
	require.NoError(t, err)
	assert.Equal(t, CollisionReport, p)

	p, err = ParseCollisionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, CollisionOverwrite, p)

	_, err = ParseCollisionPolicy("merge")
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	tr, err := ParseTracking("structural")
	require.NoError(t, err)
	assert.Equal(t, TrackingStructural, tr)
	assert.Equal(t, "structural", tr.String())

	_, err = ParseTracking("fuzzy")
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
