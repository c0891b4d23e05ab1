package convert

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"beankit/internal/common"
	"beankit/introspect"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")

	errRejected = errors.New("value rejected by caster")
)

// Caster describes a typed conversion function.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster if it is a
// valid conversion function.
//
// Supports signatures:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if isDoublePointer(src) {
		return Caster{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if isDoublePointer(dst) {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}

	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		alias, name := common.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))
		caster.Name = name
		caster.PackageAlias = common.Second(path.Split(alias))
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}

		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true

		return caster, nil
	}
}

// QualifiedName returns "alias.Name", or just the name for closures without
// a package.
func (c Caster) QualifiedName() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

// Call runs the caster on value, which must fit Src.
func (c Caster) Call(value any) (any, error) {
	in, ok := introspect.Fit(value, c.Src)
	if !ok {
		return nil, fmt.Errorf("%s expects %s, got %T", c.QualifiedName(), c.Src, value)
	}

	out := c.fn.Call([]reflect.Value{in})

	if c.HasErr {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return nil, err
		}
	}

	if c.HasBool && !out[1].Bool() {
		return nil, errRejected
	}

	return introspect.Interface(out[0]), nil
}

// Converter adapts c to the Converter interface. Values not fitting Src are
// first converted to Src through r.
func (c Caster) Converter(r *Registry) Converter {
	return ConverterFunc(func(target reflect.Type, value any) (any, error) {
		if target != c.Dst {
			return nil, errNoConverter
		}

		if _, ok := introspect.Fit(value, c.Src); !ok && c.Src != c.Dst {
			v, err := r.strict(value, c.Src)
			if err != nil {
				return nil, err
			}

			value = v
		}

		return c.Call(value)
	})
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Pointer
}

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}

var errorType = reflect.TypeFor[error]()
