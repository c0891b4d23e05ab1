package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"beankit/errs"
	"beankit/internal/common"
	"beankit/introspect"
)

// Converter produces a value of type target from value. A converter is
// registered for its destination type; it may also be asked to render a
// value of its own type as a string (target == string).
type Converter interface {
	Convert(target reflect.Type, value any) (any, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(target reflect.Type, value any) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(target reflect.Type, value any) (any, error) {
	return f(target, value)
}

var (
	stringType      = reflect.TypeFor[string]()
	stringSliceType = reflect.TypeFor[[]string]()

	errNoConverter = errors.New("no converter registered")
)

// Registry maps destination types to converters.
//
// Lookups read an immutable snapshot and never block. Register and
// Deregister copy the map and swap it in; they are meant for configuration
// time.
type Registry struct {
	cfg Config

	mu         sync.Mutex // serializes writers
	converters atomic.Pointer[map[reflect.Type]Converter]
	policies   atomic.Pointer[map[reflect.Type]Policy]
	derived    sync.Map // reflect.Type -> Converter, dropped on every write
}

// NewRegistry returns a registry holding the default converters.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{cfg: NewConfig(opts...)}
	r.converters.Store(ptr(r.defaults()))
	r.policies.Store(ptr(map[reflect.Type]Policy{}))

	return r
}

func ptr[T any](v T) *T { return &v }

// Config returns the registry configuration.
func (r *Registry) Config() Config { return r.cfg }

// Register installs c for target, replacing any previous registration.
func (r *Registry) Register(target reflect.Type, c Converter) {
	r.update(func(m map[reflect.Type]Converter) {
		if c == nil {
			delete(m, target)
		} else {
			m[target] = c
		}
	})
}

// RegisterFunc installs a typed conversion function, see ParseCaster for the
// accepted signatures.
func (r *Registry) RegisterFunc(fn any) error {
	c, err := ParseCaster(fn)
	if err != nil {
		return err
	}

	r.Register(c.Dst, c.Converter(r))
	r.cfg.Logger.Debug("converter registered",
		slog.String("func", c.QualifiedName()),
		slog.String("from", c.Src.String()),
		slog.String("to", c.Dst.String()))

	return nil
}

// Deregister drops the converter for target, built-in ones included.
func (r *Registry) Deregister(target reflect.Type) {
	r.update(func(m map[reflect.Type]Converter) {
		delete(m, target)
	})
}

// DeregisterAll restores the default converters and drops every policy.
func (r *Registry) DeregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.converters.Store(ptr(r.defaults()))
	r.policies.Store(ptr(map[reflect.Type]Policy{}))
	r.derived.Clear()
}

// Configure overrides the failure handling for target.
func (r *Registry) Configure(target reflect.Type, p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := maps.Clone(*r.policies.Load())
	m[target] = p
	r.policies.Store(&m)
}

func (r *Registry) update(fn func(map[reflect.Type]Converter)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := maps.Clone(*r.converters.Load())
	fn(m)
	r.converters.Store(&m)
	r.derived.Clear()
}

// Lookup returns the converter for target: a registered one, or one derived
// for slices, arrays, pointers, named basic types and encoding.TextUnmarshaler
// implementations. It returns nil when target is not convertible.
func (r *Registry) Lookup(target reflect.Type) Converter {
	if target == nil {
		return nil
	}

	if c, ok := (*r.converters.Load())[target]; ok {
		return c
	}

	if c, ok := r.derived.Load(target); ok {
		return c.(Converter)
	}

	c := r.derive(target)
	if c != nil {
		r.derived.Store(target, c)
	}

	return c
}

// LookupPair returns the converter for a source and destination type. For
// string destinations the source type's own converter is preferred, so a
// type controls how it is rendered; slices then fall back to the []string
// converter and everything else to the string converter. For []string
// destinations a slice source uses its own slice converter.
func (r *Registry) LookupPair(source, target reflect.Type) Converter {
	switch target {
	case stringType:
		if c := r.Lookup(source); c != nil {
			return c
		}

		if source != nil && (source.Kind() == reflect.Slice || source.Kind() == reflect.Array) {
			if c := r.Lookup(stringSliceType); c != nil {
				return c
			}
		}

		return r.Lookup(stringType)
	case stringSliceType:
		if source != nil && (source.Kind() == reflect.Slice || source.Kind() == reflect.Array) {
			if c := r.Lookup(source); c != nil {
				return c
			}
		}

		return r.Lookup(stringSliceType)
	default:
		return r.Lookup(target)
	}
}

// Convert converts value to target, applying the failure policy of target.
// Converting to string never fails.
func (r *Registry) Convert(value any, target reflect.Type) (any, error) {
	if target == stringType {
		return r.ToString(value), nil
	}

	out, err := r.strict(value, target)
	if err == nil {
		return out, nil
	}

	policy := r.policy(target)
	if policy.Mode != ModeLenient {
		return nil, err
	}

	def := r.defaultFor(target, policy)
	r.cfg.Logger.Debug("conversion failed, using default",
		slog.String("to", target.String()),
		slog.Any("value", value),
		slog.Any("default", def),
		slog.Any("error", err))

	return def, nil
}

// ConvertString converts s to target.
func (r *Registry) ConvertString(s string, target reflect.Type) (any, error) {
	return r.Convert(s, target)
}

// ConvertStrings converts values to target: element by element for slice
// and array targets, otherwise from the first value. An empty input yields
// the zero value of a scalar target.
func (r *Registry) ConvertStrings(values []string, target reflect.Type) (any, error) {
	if target == nil {
		return values, nil
	}

	if k := target.Kind(); k == reflect.Slice || k == reflect.Array {
		return r.Convert(values, target)
	}

	first, ok := common.First(values)
	if !ok {
		return introspect.Interface(reflect.Zero(target)), nil
	}

	return r.Convert(first, target)
}

// ToString renders value with the converter of its own type, then the string
// converter, then fmt. Nil renders as "".
func (r *Registry) ToString(value any) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	src := reflect.TypeOf(value)
	if rv := reflect.ValueOf(value); introspect.Nilable(src) && rv.IsNil() {
		return ""
	}

	for _, c := range []Converter{r.LookupPair(src, stringType), r.Lookup(stringType)} {
		if c == nil {
			continue
		}

		if out, err := c.Convert(stringType, value); err == nil {
			if s, ok := out.(string); ok {
				return s
			}
		}
	}

	return fmt.Sprint(value)
}

// strict converts without applying any lenient policy.
func (r *Registry) strict(value any, target reflect.Type) (any, error) {
	if target == nil {
		return value, nil
	}

	if target == stringType {
		return r.ToString(value), nil
	}

	if value == nil {
		if introspect.Nilable(target) {
			return nil, nil
		}

		return nil, errs.Conversion(nil, target, errors.New("no value specified"))
	}

	if v, ok := introspect.Fit(value, target); ok {
		return introspect.Interface(v), nil
	}

	c := r.LookupPair(reflect.TypeOf(value), target)
	if c == nil {
		return nil, errs.Conversion(value, target, errNoConverter)
	}

	out, err := c.Convert(target, value)
	if err != nil {
		var ce *errs.ConversionError
		if errors.As(err, &ce) {
			return nil, err
		}

		return nil, errs.Conversion(value, target, err)
	}

	v, ok := introspect.Fit(out, target)
	if !ok {
		return nil, errs.Conversion(value, target, fmt.Errorf("converter returned %T", out))
	}

	return introspect.Interface(v), nil
}

func (r *Registry) policy(target reflect.Type) Policy {
	if p, ok := (*r.policies.Load())[target]; ok {
		return p
	}

	return Policy{Mode: r.cfg.Mode}
}

func (r *Registry) defaultFor(target reflect.Type, p Policy) any {
	if p.Default != nil {
		if v, ok := introspect.Fit(p.Default, target); ok {
			return introspect.Interface(v)
		}
	}

	if target.Kind() == reflect.Slice {
		if r.cfg.DefaultArraySize < 0 {
			return nil
		}

		return reflect.MakeSlice(target, r.cfg.DefaultArraySize, r.cfg.DefaultArraySize).Interface()
	}

	return introspect.Interface(reflect.Zero(target))
}
