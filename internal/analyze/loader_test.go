package analyze

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/dyna"
)

func loadShop(t *testing.T) *Analyzer {
	t.Helper()

	a := NewAnalyzer()
	graph, err := a.LoadPackages("./testdata/shop")
	require.NoError(t, err)
	require.Len(t, graph.Packages, 1)

	return a
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	a := loadShop(t)

	ids := make([]string, 0)
	for id := range a.Graph().Types {
		ids = append(ids, id.Name)
	}

	assert.ElementsMatch(t, []string{"Address", "Audit", "Line", "Order"}, ids, "generic and non-struct types are skipped")

	_, err := NewAnalyzer().LoadPackages("./testdata/missing")
	assert.Error(t, err)
}

func TestTypeGraph_Lookup(t *testing.T) {
	graph := loadShop(t).Graph()

	id, err := graph.Lookup("Order")
	require.NoError(t, err)
	assert.Equal(t, "shop.Order", id.Short())

	same, err := graph.Lookup(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, same)

	_, err = graph.Lookup("shop.Missing")
	assert.Error(t, err)
}

func TestAnalyzer_Class(t *testing.T) {
	a := loadShop(t)

	id, err := a.Graph().Lookup("shop.Order")
	require.NoError(t, err)

	file, err := a.Class(id)
	require.NoError(t, err)
	assert.Equal(t, "Order", file.Name)

	props := make(map[string]dyna.PropertyDef)
	for _, p := range file.Properties {
		props[p.Name] = p
	}

	t.Log(spew.Sdump(file))

	expected := map[string]dyna.PropertyDef{
		"id":        {Name: "id", Type: "uuid.UUID", ReadOnly: true},
		"status":    {Name: "status", Type: "string"},
		"note":      {Name: "note", Type: "string"},
		"lines":     {Name: "lines", Type: "[]map[string]any"},
		"ship":      {Name: "ship", Type: "map[string]any"},
		"attrs":     {Name: "attrs", Type: "map[string]any"},
		"tags":      {Name: "tags", Type: "[3]string"},
		"events":    {Name: "events"},
		"createdAt": {Name: "createdAt", Type: "time.Time"},
		"createdBy": {Name: "createdBy", Type: "string"},
		"total":     {Name: "total", Type: "int64", ReadOnly: true},
		"paid":      {Name: "paid", Type: "bool", ReadOnly: true},
		"label":     {Name: "label", Type: "map[string]string"},
		"password":  {Name: "password", Type: "string", WriteOnly: true},
	}

	assert.Equal(t, expected, props)

	_, err = file.Build(nil)
	require.NoError(t, err, "derived types resolve")
}

func TestAnalyzer_ClassTagsAndPointers(t *testing.T) {
	a := loadShop(t)

	id, err := a.Graph().Lookup("Line")
	require.NoError(t, err)

	file, err := a.Class(id)
	require.NoError(t, err)

	assert.Equal(t, []dyna.PropertyDef{
		{Name: "sku", Type: "string"},
		{Name: "quantity", Type: "int"},
		{Name: "price", Type: "*big.Rat"},
	}, file.Properties)

	_, err = a.Class(TypeID{Name: "Nope"})
	assert.Error(t, err)
}
