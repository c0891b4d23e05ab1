package errs_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/errs"
)

func TestPropertyError(t *testing.T) {
	err := errs.New(errs.ErrNoSuchProperty, "shop.Order", "totl", "").WithExpr("order.totl")
	err.Suggestions = []string{"total"}

	assert.ErrorIs(t, err, errs.ErrNoSuchProperty)
	assert.NotErrorIs(t, err, errs.ErrAccess)
	assert.Equal(t, `no such property "totl" on shop.Order (in "order.totl") (did you mean total?)`, err.Error())
	assert.True(t, errs.IsBenign(err))

	same := errs.New(errs.ErrAccess, "", "id", "read-only").WithExpr("id")
	assert.Empty(t, same.Expr)
	assert.False(t, errs.IsBenign(same))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := &strconv.NumError{Func: "Atoi", Num: "x", Err: strconv.ErrSyntax}
	err := fmt.Errorf("populate: %w", errs.Wrap(errs.ErrConversion, "Order", "age", cause))

	assert.ErrorIs(t, err, errs.ErrConversion)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	var pe *errs.PropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "age", pe.Property)

	var ne *strconv.NumError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "x", ne.Num)
}

func TestConversionError(t *testing.T) {
	err := errs.Conversion("abc", reflect.TypeFor[int](), strconv.ErrSyntax)

	assert.ErrorIs(t, err, errs.ErrConversion)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Equal(t, "cannot convert string value abc to int: invalid syntax", err.Error())

	err = errs.Conversion(nil, reflect.TypeFor[int](), nil)
	assert.Equal(t, "cannot convert <nil> value <nil> to int", err.Error())
	assert.True(t, errors.Is(err, errs.ErrConversion))
}
