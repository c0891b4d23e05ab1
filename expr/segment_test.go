package expr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/errs"
	"beankit/expr"
)

func TestParse(t *testing.T) {
	seg, err := expr.Parse("orders[2].lines(first).sku")
	require.NoError(t, err)
	assert.Equal(t, "orders[2]", seg.Raw)
	assert.Equal(t, "orders", seg.Name)
	assert.Equal(t, expr.KindIndexed, seg.Kind)
	assert.Equal(t, 2, seg.Index)
	assert.Equal(t, "lines(first).sku", seg.Rest)
	assert.False(t, seg.IsLast())

	seg, err = expr.Parse(seg.Rest)
	require.NoError(t, err)
	assert.Equal(t, expr.KindMapped, seg.Kind)
	assert.Equal(t, "first", seg.Key)
	assert.Equal(t, -1, seg.Index)

	seg, err = expr.Parse(seg.Rest)
	require.NoError(t, err)
	assert.Equal(t, expr.KindSimple, seg.Kind)
	assert.True(t, seg.IsLast())
}

func TestParseBareSubscripts(t *testing.T) {
	seg, err := expr.Parse("[3]")
	require.NoError(t, err)
	assert.Empty(t, seg.Name)
	assert.Equal(t, 3, seg.Index)

	seg, err = expr.Parse("(a.b)")
	require.NoError(t, err)
	assert.Empty(t, seg.Name)
	assert.Equal(t, "a.b", seg.Key)
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{"", "a]", "a[1", "a(k", "a[x]", "a[1)", "a)b(", ".b", "a.", "a[0]b", "a(k)b", "a[0][1]"} {
		t.Run(bad, func(t *testing.T) {
			_, err := expr.Parse(bad)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrParse)
		})
	}
}

func TestSplit(t *testing.T) {
	segments, err := expr.Split("a.b[2].c(key)")
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "a", segments[0].Name)
	assert.Equal(t, "b", segments[1].Name)
	assert.Equal(t, 2, segments[1].Index)
	assert.Equal(t, "c", segments[2].Name)
	assert.Equal(t, "key", segments[2].Key)

	_, err = expr.Split("a..b")
	assert.ErrorIs(t, err, errs.ErrParse)

	_, err = expr.Split("a.")
	assert.ErrorIs(t, err, errs.ErrParse)
}

func ExampleSplit() {
	segments, _ := expr.Split("customer.addresses[1].lines(street)")
	for _, s := range segments {
		fmt.Printf("%s %s %d %q\n", s.Name, s.Kind, s.Index, s.Key)
	}

	// Output:
	// customer KindSimple -1 ""
	// addresses KindIndexed 1 ""
	// lines KindMapped -1 "street"
}
