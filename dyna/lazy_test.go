package dyna_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/dyna"
	"beankit/errs"
)

func TestLazyIndexedVivification(t *testing.T) {
	b := dyna.NewLazy()

	require.NoError(t, b.SetIndexed("items", 5, 42))

	v, err := b.GetIndexed("items", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	items, err := b.Get("items")
	require.NoError(t, err)
	assert.Len(t, items, 6, spew.Sdump(items))

	// growth is monotonic
	require.NoError(t, b.SetIndexed("items", 1, 7))
	items, _ = b.Get("items")
	assert.Equal(t, []int{0, 7, 0, 0, 0, 42}, items)

	// reads grow too
	_, err = b.GetIndexed("items", 9)
	require.NoError(t, err)
	items, _ = b.Get("items")
	assert.Len(t, items, 10)
}

func TestLazyReadCreatesUntypedList(t *testing.T) {
	b := dyna.NewLazy()

	v, err := b.GetIndexed("things", 2)
	require.NoError(t, err)
	assert.Nil(t, v)

	p, ok := b.Class().Property("things")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[[]any](), p.Type)
	assert.Nil(t, p.Elem())

	// untyped lists take anything
	require.NoError(t, b.SetIndexed("things", 0, "x"))
	require.NoError(t, b.SetIndexed("things", 1, 2))
}

func TestLazyAddressScenario(t *testing.T) {
	b := dyna.NewLazy()

	require.NoError(t, b.SetIndexed("address", 0, "123 Main St"))
	require.NoError(t, b.SetIndexed("address", 1, "Unit 4"))

	v, err := b.GetIndexed("address", 1)
	require.NoError(t, err)
	assert.Equal(t, "Unit 4", v)

	whole, _ := b.Get("address")
	assert.Equal(t, []string{"123 Main St", "Unit 4"}, whole)

	p, _ := b.Class().Property("address")
	assert.Equal(t, reflect.TypeFor[string](), p.Elem())
}

func TestLazyRestricted(t *testing.T) {
	c, err := dyna.NewLazyClass("order", dyna.NewProperty("id", reflect.TypeFor[string]()))
	require.NoError(t, err)

	c.SetRestricted(true)
	assert.ErrorIs(t, c.Add("newProp", reflect.TypeFor[string]()), errs.ErrRestricted)
	assert.ErrorIs(t, c.Remove("id"), errs.ErrRestricted)

	inst, err := c.NewInstance()
	require.NoError(t, err)

	b := inst.(*dyna.LazyBean)
	assert.False(t, b.Extensible())
	assert.ErrorIs(t, b.Set("newProp", "x"), errs.ErrRestricted)
	assert.ErrorIs(t, b.SetIndexed("list", 0, "x"), errs.ErrRestricted)
	assert.ErrorIs(t, b.SetMapped("map", "k", "x"), errs.ErrRestricted)
	require.NoError(t, b.Set("id", "A-1"))

	_, ok := c.Property("newProp")
	assert.False(t, ok)

	c.SetRestricted(false)
	require.NoError(t, b.Set("newProp", "x"))
	assert.True(t, b.Extensible())
}

func TestLazySetInfersType(t *testing.T) {
	b := dyna.NewLazy()

	require.NoError(t, b.Set("count", 3))
	p, _ := b.Class().Property("count")
	assert.Equal(t, reflect.TypeFor[int](), p.Type)
	assert.ErrorIs(t, b.Set("count", "three"), errs.ErrTypeMismatch)

	require.NoError(t, b.Set("loose", nil))
	p, _ = b.Class().Property("loose")
	assert.Nil(t, p.Type)
	require.NoError(t, b.Set("loose", "anything"))

	v, err := b.Get("undeclared")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, ok := b.Class().Property("undeclared")
	assert.False(t, ok, "reads do not declare simple properties")
}

func TestLazyMappedNarrowing(t *testing.T) {
	b := dyna.NewLazy()

	v, err := b.GetMapped("attrs", "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	p, _ := b.Class().Property("attrs")
	assert.Nil(t, p.Elem(), "content type unknown before the first write")

	require.NoError(t, b.SetMapped("attrs", "size", 10))
	p, _ = b.Class().Property("attrs")
	assert.Equal(t, reflect.TypeFor[int](), p.Elem())

	// weak typing: the map itself stays untyped
	require.NoError(t, b.SetMapped("attrs", "label", "big"))

	ok, err := b.Contains("attrs", "label")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Remove("attrs", "label"))
	ok, _ = b.Contains("attrs", "label")
	assert.False(t, ok)

	ok, err = b.Contains("nothing", "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLazyKindMismatch(t *testing.T) {
	b := dyna.NewLazy()
	require.NoError(t, b.Set("name", "x"))

	_, err := b.GetIndexed("name", 0)
	assert.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = b.GetMapped("name", "k")
	assert.ErrorIs(t, err, errs.ErrKindMismatch)
}

func TestLazyDeclaredContainers(t *testing.T) {
	c, err := dyna.NewLazyClass("doc",
		dyna.NewProperty("lines", reflect.TypeFor[[]string]()),
		dyna.NewProperty("fixed", reflect.TypeFor[[2]int]()),
		dyna.NewProperty("children", reflect.TypeFor[[]dyna.Bean]()),
	)
	require.NoError(t, err)

	b := dyna.NewLazyBean(c)

	lines, err := b.Get("lines")
	require.NoError(t, err)
	assert.Equal(t, []string{}, lines)

	require.NoError(t, b.SetIndexed("fixed", 1, 4))
	assert.ErrorIs(t, b.SetIndexed("fixed", 2, 4), errs.ErrIndexOutOfRange)

	child, err := b.GetIndexed("children", 1)
	require.NoError(t, err)
	require.IsType(t, &dyna.LazyBean{}, child)

	// nested beans are vivified too
	require.NoError(t, child.(dyna.Bean).Set("name", "leaf"))
}

func TestEnsureCapacity(t *testing.T) {
	s := reflect.ValueOf([]int{1})

	grown, err := dyna.EnsureCapacity(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 0}, grown.Interface())
	assert.Equal(t, []int{1}, s.Interface(), "input is untouched")

	same, err := dyna.EnsureCapacity(grown, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, same.Len())

	ptrs, err := dyna.EnsureCapacity(reflect.ValueOf([]*struct{ A int }{}), 1)
	require.NoError(t, err)
	assert.NotNil(t, ptrs.Index(1).Interface())

	_, err = dyna.EnsureCapacity(reflect.ValueOf([1]int{}), 1)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = dyna.EnsureCapacity(s, -1)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}
