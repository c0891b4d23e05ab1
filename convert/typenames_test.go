package convert_test

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/convert"
)

type Order struct {
	ID int
}

func TestTypeNamesResolve(t *testing.T) {
	t.Parallel()

	names := convert.NewTypeNames()
	names.Register(reflect.TypeFor[*Order]())

	cases := map[string]reflect.Type{
		"int":                        reflect.TypeFor[int](),
		"byte":                       reflect.TypeFor[byte](),
		"any":                        reflect.TypeFor[any](),
		"time.Duration":              reflect.TypeFor[time.Duration](),
		"[]string":                   reflect.TypeFor[[]string](),
		"[3]uuid.UUID":               reflect.TypeFor[[3]uuid.UUID](),
		"map[string]*big.Int":        reflect.TypeFor[map[string]*big.Int](),
		"*convert_test.Order":        reflect.TypeFor[*Order](),
		"beankit/convert_test.Order": reflect.TypeFor[Order](),
		"[]Order":                    reflect.TypeFor[[]Order](),
	}

	for name, want := range cases {
		got, err := names.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, bad := range []string{"", "nope", "[x]int", "map[string", "[]", "map[[]int]string"} {
		_, err := names.Resolve(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]*big.Int", convert.TypeName(reflect.TypeFor[[]*big.Int]()))
	assert.Equal(t, "map[string][2]convert_test.Order", convert.TypeName(reflect.TypeFor[map[string][2]Order]()))
	assert.Equal(t, "any", convert.TypeName(reflect.TypeFor[any]()))
	assert.Equal(t, "<nil>", convert.TypeName(nil))

	// names round-trip through the shared table
	convert.RegisterTypes(reflect.TypeFor[Order]())

	got, err := convert.Resolve(convert.TypeName(reflect.TypeFor[[]*Order]()))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[[]*Order](), got)
}
