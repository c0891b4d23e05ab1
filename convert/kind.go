package convert

import (
	"math"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies the scalar types handled by the built-in converters.
type Kind int

const (
	_ Kind = iota // zero is the invalid kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over a basic kind: type Status string, type Level int

	// KindTotal is the number of kinds, the invalid one included.
	KindTotal = int(iota)
)

func (k Kind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

func (k Kind) IsUnsigned() bool {
	switch k {
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// Bits returns the width of a number kind.
func (k Kind) Bits() int {
	switch k {
	default:
		panic("only number kinds have a meaningful width, requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}

		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

// Type returns the built-in type of k, nil for KindPrimitiveEnum.
func (k Kind) Type() reflect.Type {
	if k <= 0 || int(k) >= len(kindTypes) {
		return nil
	}

	return kindTypes[k]
}

var kindTypes = [...]reflect.Type{
	KindInt:      reflect.TypeFor[int](),
	KindInt8:     reflect.TypeFor[int8](),
	KindInt16:    reflect.TypeFor[int16](),
	KindInt32:    reflect.TypeFor[int32](),
	KindInt64:    reflect.TypeFor[int64](),
	KindUint:     reflect.TypeFor[uint](),
	KindUint8:    reflect.TypeFor[uint8](),
	KindUint16:   reflect.TypeFor[uint16](),
	KindUint32:   reflect.TypeFor[uint32](),
	KindUint64:   reflect.TypeFor[uint64](),
	KindFloat32:  reflect.TypeFor[float32](),
	KindFloat64:  reflect.TypeFor[float64](),
	KindBool:     reflect.TypeFor[bool](),
	KindString:   reflect.TypeFor[string](),
	KindTime:     reflect.TypeFor[time.Time](),
	KindDuration: reflect.TypeFor[time.Duration](),
}

// FromType returns the kind of t: the exact built-in kinds first, then
// KindPrimitiveEnum for named types over a basic kind, 0 otherwise.
func FromType(t reflect.Type) Kind {
	if t == nil {
		return 0
	}

	for k, kt := range kindTypes {
		if kt == t {
			return Kind(k)
		}
	}

	if basicOf(t.Kind()) != 0 {
		return KindPrimitiveEnum
	}

	return 0
}

// basicOf maps a reflect.Kind to the kind of its built-in type.
func basicOf(k reflect.Kind) Kind {
	switch k {
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	default:
		return 0
	}
}
