package dyna_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/dyna"
	"beankit/errs"
	"beankit/introspect"
)

type Address struct {
	Street string
	City   string
}

type Customer struct {
	Name      string
	Home      Address
	Addresses []Address
	Attrs     map[string]string
	ID        int `bean:"id,readonly"`

	scores []int
}

func (c *Customer) GetScore(i int) int    { return c.scores[i] }
func (c *Customer) SetScore(i int, v int) { c.scores[i] = v }

func TestWrapBean(t *testing.T) {
	c := &Customer{Name: "Ann", ID: 7, scores: []int{1, 2}}

	b, err := dyna.Wrap(c)
	require.NoError(t, err)
	assert.IsType(t, &dyna.WrapBean{}, b)
	assert.Equal(t, "dyna_test.Customer", b.Class().Name())

	v, err := b.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", v)

	require.NoError(t, b.Set("name", "Bob"))
	assert.Equal(t, "Bob", c.Name)

	assert.ErrorIs(t, b.Set("name", 1), errs.ErrTypeMismatch)
	assert.ErrorIs(t, b.Set("id", 8), errs.ErrAccess)
	assert.ErrorIs(t, b.Set("nope", 8), errs.ErrNoSuchProperty)

	require.NoError(t, b.SetIndexed("score", 1, 20))
	v, err = b.GetIndexed("score", 1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	require.NoError(t, b.SetMapped("attrs", "k", "v"))
	assert.Equal(t, "v", c.Attrs["k"])

	ok, err := b.Contains("attrs", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, b.Remove("attrs", "k"))
	assert.Empty(t, c.Attrs)
}

func TestWrapClassProperties(t *testing.T) {
	c := dyna.NewWrapClass(introspect.NewCache(), reflect.TypeFor[*Customer]())

	score, ok := c.Property("score")
	require.True(t, ok)
	assert.True(t, score.IsIndexed())
	assert.False(t, score.Readable())
	assert.Equal(t, reflect.TypeFor[int](), score.Elem())

	id, _ := c.Property("id")
	assert.False(t, id.Writable())

	inst, err := c.NewInstance()
	require.NoError(t, err)
	require.NoError(t, inst.Set("name", "fresh"))
	assert.Equal(t, "fresh", inst.(*dyna.WrapBean).Value().(*Customer).Name)
}

func TestWrapBeanUnsupported(t *testing.T) {
	b, err := dyna.NewWrapBean(introspect.NewCache(), &Customer{})
	require.NoError(t, err)

	_, err = b.Contains("name", "k")
	assert.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = dyna.Wrap(42)
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	_, err = dyna.Wrap((*Customer)(nil))
	assert.ErrorIs(t, err, errs.ErrUnsupported)
}

type Labels struct {
	labels map[string]string
}

func (l *Labels) GetLabel(k string) string    { return l.labels[k] }
func (l *Labels) SetLabel(k string, v string) { l.labels[k] = v }

func TestWrapBeanAccessorOnlyMap(t *testing.T) {
	b, err := dyna.Wrap(&Labels{labels: map[string]string{}})
	require.NoError(t, err)

	require.NoError(t, b.SetMapped("label", "a", "x"))
	v, err := b.GetMapped("label", "a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = b.Contains("label", "a")
	assert.ErrorIs(t, err, errs.ErrUnsupported)
	assert.ErrorIs(t, b.Remove("label", "a"), errs.ErrUnsupported)
}

func TestWrapBeanAddr(t *testing.T) {
	c := &Customer{Addresses: []Address{{Street: "A"}}}

	b, err := dyna.Wrap(c)
	require.NoError(t, err)

	a := b.(dyna.Addresser)

	home, ok := a.Addr("home")
	require.True(t, ok)
	home.(*Address).Street = "Main"
	assert.Equal(t, "Main", c.Home.Street)

	first, ok := a.AddrIndexed("addresses", 0)
	require.True(t, ok)
	first.(*Address).City = "Oslo"
	assert.Equal(t, "Oslo", c.Addresses[0].City)

	_, ok = a.Addr("name")
	assert.False(t, ok)
}

func TestMapBean(t *testing.T) {
	m := map[string]any{"name": "Ann", "tags": []string{"a"}, "attrs": map[string]any{}}

	b, err := dyna.Wrap(m)
	require.NoError(t, err)
	assert.IsType(t, &dyna.MapBean{}, b)

	v, err := b.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Set("age", 3))
	assert.Equal(t, 3, m["age"])

	require.NoError(t, b.SetIndexed("tags", 0, "A"))
	assert.Equal(t, []string{"A"}, m["tags"])

	require.NoError(t, b.SetMapped("attrs", "k", 1))
	v, _ = b.GetMapped("attrs", "k")
	assert.Equal(t, 1, v)

	require.NoError(t, b.SetMapped("fresh", "k", 2))
	assert.Equal(t, map[string]any{"k": 2}, m["fresh"])

	names := []string{}
	for _, p := range b.Class().Properties() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"age", "attrs", "fresh", "name", "tags"}, names)

	name, _ := b.Class().Property("name")
	assert.Equal(t, reflect.TypeFor[string](), name.Type)
}

func TestMapBeanTyped(t *testing.T) {
	m := map[string]int{}

	b, err := dyna.NewMapBean(m)
	require.NoError(t, err)

	require.NoError(t, b.Set("a", 1))
	assert.ErrorIs(t, b.Set("b", "x"), errs.ErrTypeMismatch)

	var nilMap map[string]int

	b, err = dyna.NewMapBean(&nilMap)
	require.NoError(t, err)
	require.NoError(t, b.Set("a", 1))
	assert.Equal(t, map[string]int{"a": 1}, nilMap)
}
