package beanutil_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/beanutil"
)

func TestComparator(t *testing.T) {
	ctx := beanutil.New()
	people := []*Customer{
		{Name: "Cy", Age: 40},
		{Name: "Ann", Age: 30, Work: &Address{City: "Oslo"}},
		{Name: "Bea", Age: 35, Work: &Address{City: "Bergen"}},
	}

	slices.SortFunc(people, beanutil.Comparator[*Customer](ctx, "age", nil))
	names, err := beanutil.Collect(ctx, people, "name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Ann", "Bea", "Cy"}, names)

	// nil links order first
	slices.SortFunc(people, beanutil.Comparator[*Customer](ctx, "work.city", nil))
	assert.Equal(t, "Cy", people[0].Name)
	assert.Equal(t, "Bea", people[1].Name)
}

func TestCompareValues(t *testing.T) {
	now := time.Now()

	assert.Equal(t, -1, beanutil.CompareValues(1, int64(2)))
	assert.Equal(t, 1, beanutil.CompareValues(2.5, 2))
	assert.Equal(t, 0, beanutil.CompareValues("a", "a"))
	assert.Equal(t, -1, beanutil.CompareValues(false, true))
	assert.Equal(t, -1, beanutil.CompareValues(nil, 0))
	assert.Equal(t, 1, beanutil.CompareValues(now.Add(time.Second), now))
	assert.Equal(t, -1, beanutil.CompareValues(time.Second, time.Minute))
}

func TestPredicates(t *testing.T) {
	ctx := beanutil.New()
	people := []*Customer{
		{Name: "Ann", Age: 3},
		{Name: "Bea", Age: 33, Home: Address{City: "Oslo"}},
	}

	oslo := slices.IndexFunc(people, beanutil.Equals[*Customer](ctx, "home.city", "Oslo"))
	assert.Equal(t, 1, oslo)

	assert.True(t, beanutil.Equals[*Customer](ctx, "age", "3")(people[0]))
	assert.True(t, beanutil.Equals[*Customer](ctx, "age", 33)(people[1]))
	assert.False(t, beanutil.Equals[*Customer](ctx, "work.city", "Oslo")(people[1]))

	adults := beanutil.Predicate[*Customer](ctx, "age", func(v any) bool { return v.(int) >= 18 })
	assert.Equal(t, []*Customer{people[1]}, slices.DeleteFunc(slices.Clone(people), func(c *Customer) bool { return !adults(c) }))

	_, err := beanutil.Collect(ctx, people, "work.city")
	assert.Error(t, err)
}

func ExampleComparator() {
	ctx := beanutil.New()
	orders := []map[string]any{
		{"id": "b", "total": 12.5},
		{"id": "a", "total": 3},
		{"id": "c", "total": 40},
	}

	slices.SortFunc(orders, beanutil.Comparator[map[string]any](ctx, "total", nil))

	for _, o := range orders {
		fmt.Println(o["id"])
	}

	// Output:
	// a
	// b
	// c
}

func ExampleContext_SetFromString() {
	ctx := beanutil.New()
	c := &Customer{}

	_ = ctx.SetFromString(c, "age", "42")
	_ = ctx.SetFromString(c, "home.city", "Oslo")
	_ = ctx.SetFromString(c, "scores", "3,1,2")

	fmt.Println(c.Age, c.Home.City, c.Scores)

	// Output:
	// 42 Oslo [3 1 2]
}
