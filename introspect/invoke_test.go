package introspect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/errs"
	"beankit/introspect"
)

func describe(t *testing.T, name string) *introspect.Descriptor {
	t.Helper()

	d, ok := introspect.NewCache().Descriptor(reflect.TypeFor[Person](), name)
	require.True(t, ok, name)

	return d
}

func TestGetSet(t *testing.T) {
	p := &Person{Name: "Ann", Audit: Audit{Created: "today"}}
	bean := reflect.ValueOf(p)

	v, err := describe(t, "name").Get(bean)
	require.NoError(t, err)
	assert.Equal(t, "Ann", v.Interface())

	v, err = describe(t, "created").Get(bean)
	require.NoError(t, err)
	assert.Equal(t, "today", v.Interface())

	require.NoError(t, describe(t, "nickname").Set(bean, reflect.ValueOf("bob")))
	v, err = describe(t, "nickname").Get(bean)
	require.NoError(t, err)
	assert.Equal(t, "BOB", v.Interface())

	require.NoError(t, describe(t, "age").Set(bean, reflect.ValueOf(41)))
	assert.Equal(t, 41, p.Age)

	err = describe(t, "age").Set(bean, reflect.ValueOf(-1))
	require.ErrorIs(t, err, errs.ErrInvocation)
	assert.ErrorIs(t, err, errRejected)
}

func TestSetNotAddressable(t *testing.T) {
	err := describe(t, "name").Set(reflect.ValueOf(Person{}), reflect.ValueOf("x"))
	assert.ErrorIs(t, err, errs.ErrAccess)

	// reads through pointer-receiver getters work on a copy
	v, err := describe(t, "nickname").Get(reflect.ValueOf(Person{nickname: "z"}))
	require.NoError(t, err)
	assert.Equal(t, "Z", v.Interface())
}

func TestIndexed(t *testing.T) {
	p := &Person{Tags: []string{"a", "b"}, scores: []int{1, 2, 3}}
	bean := reflect.ValueOf(p)

	tags := describe(t, "tags")
	require.NoError(t, tags.SetIndexed(bean, 1, reflect.ValueOf("B")))
	assert.Equal(t, []string{"a", "B"}, p.Tags)

	_, err := tags.GetIndexed(bean, 2)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	grid := describe(t, "grid")
	require.NoError(t, grid.SetIndexed(bean, 2, reflect.ValueOf(9)))
	assert.Equal(t, [3]int{0, 0, 9}, p.Grid)

	score := describe(t, "score")
	require.NoError(t, score.SetIndexed(bean, 0, reflect.ValueOf(7)))
	v, err := score.GetIndexed(bean, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, v.Interface())

	_, err = describe(t, "name").GetIndexed(bean, 0)
	assert.ErrorIs(t, err, errs.ErrKindMismatch)
}

func TestMapped(t *testing.T) {
	p := &Person{}
	bean := reflect.ValueOf(p)

	attrs := describe(t, "attrs")
	v, err := attrs.GetMapped(bean, "missing")
	require.NoError(t, err)
	assert.Nil(t, introspect.Interface(v))

	require.NoError(t, attrs.SetMapped(bean, "color", reflect.ValueOf("red")))
	assert.Equal(t, map[string]string{"color": "red"}, p.Attrs)

	label := describe(t, "label")
	require.NoError(t, label.SetMapped(bean, "x", reflect.ValueOf(3)))
	v, err = label.GetMapped(bean, "x")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Interface())

	_, err = describe(t, "tags").GetMapped(bean, "x")
	assert.ErrorIs(t, err, errs.ErrKindMismatch)
}

type Status string

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		value any
		typ   reflect.Type
		ok    bool
	}{
		{"same type", 1, reflect.TypeFor[int](), true},
		{"named to underlying", Status("on"), reflect.TypeFor[string](), true},
		{"underlying to named", "on", reflect.TypeFor[Status](), true},
		{"int to int64", 1, reflect.TypeFor[int64](), false},
		{"string to int", "1", reflect.TypeFor[int](), false},
		{"nil to pointer", nil, reflect.TypeFor[*Address](), true},
		{"nil to int", nil, reflect.TypeFor[int](), false},
		{"value to interface", 3, reflect.TypeFor[any](), true},
		{"untyped slot", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := introspect.Fit(tt.value, tt.typ)
			assert.Equal(t, tt.ok, ok)

			if ok && tt.typ != nil {
				assert.True(t, v.Type().AssignableTo(tt.typ))
			}
		})
	}
}
