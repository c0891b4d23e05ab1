package introspect

import (
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

type entry struct {
	list   []*Descriptor
	byName map[string]*Descriptor
}

func newEntry(list []*Descriptor) *entry {
	e := &entry{list: list, byName: make(map[string]*Descriptor, len(list))}
	for _, d := range list {
		e.byName[d.Name] = d
	}

	return e
}

// Cache memoizes the descriptors of reflected types.
//
// Reads are lock-free. Two goroutines introspecting the same type at once may
// both run the chain; the results are equal and either may be kept.
// Descriptors handed out by the cache are shared and must not be modified.
type Cache struct {
	mu            sync.Mutex // serializes chain updates
	introspectors atomic.Pointer[[]Introspector]
	entries       sync.Map // reflect.Type -> *entry
	caching       atomic.Bool
	logger        *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithIntrospectors replaces the default introspector chain.
func WithIntrospectors(chain ...Introspector) Option {
	return func(c *Cache) {
		c.setChain(slices.Clone(chain))
	}
}

// WithLogger sets the logger used to report failing introspectors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCaching turns memoization on or off.
func WithCaching(enabled bool) Option {
	return func(c *Cache) {
		c.caching.Store(enabled)
	}
}

// NewCache returns a cache using DefaultIntrospectors.
func NewCache(opts ...Option) *Cache {
	c := &Cache{logger: slog.Default().With("component", "introspect")}
	c.caching.Store(true)
	c.setChain(DefaultIntrospectors())

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Descriptors returns the properties of t in discovery order. Pointer types
// are described by their element type.
func (c *Cache) Descriptors(t reflect.Type) []*Descriptor {
	return slices.Clone(c.lookup(t).list)
}

// Descriptor returns the property called name on t.
func (c *Cache) Descriptor(t reflect.Type, name string) (*Descriptor, bool) {
	d, ok := c.lookup(t).byName[name]
	return d, ok
}

// Names returns the property names of t in discovery order.
func (c *Cache) Names(t reflect.Type) []string {
	list := c.lookup(t).list

	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.Name
	}

	return names
}

// Invalidate drops the cached descriptors of t.
func (c *Cache) Invalidate(t reflect.Type) {
	c.entries.Delete(base(t))
}

// Clear drops every cached descriptor set.
func (c *Cache) Clear() {
	c.entries.Clear()
}

// SetCaching turns memoization on or off. Turning it off clears the cache.
func (c *Cache) SetCaching(enabled bool) {
	c.caching.Store(enabled)

	if !enabled {
		c.Clear()
	}
}

// Introspectors returns a copy of the current chain.
func (c *Cache) Introspectors() []Introspector {
	return slices.Clone(*c.introspectors.Load())
}

// AddIntrospector appends in to the chain and clears the cache.
func (c *Cache) AddIntrospector(in Introspector) {
	if in == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setChain(append(c.Introspectors(), in))
}

// RemoveIntrospector drops every chain entry equal to in and reports whether
// any was removed. Introspectors of non-comparable types never match.
func (c *Cache) RemoveIntrospector(in Introspector) bool {
	if in == nil || !reflect.TypeOf(in).Comparable() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	chain := c.Introspectors()
	kept := slices.DeleteFunc(slices.Clone(chain), func(x Introspector) bool {
		return reflect.TypeOf(x) == reflect.TypeOf(in) && x == in
	})

	if len(kept) == len(chain) {
		return false
	}

	c.setChain(kept)

	return true
}

// ResetIntrospectors restores DefaultIntrospectors.
func (c *Cache) ResetIntrospectors() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setChain(DefaultIntrospectors())
}

func (c *Cache) setChain(chain []Introspector) {
	c.introspectors.Store(&chain)
	c.Clear()
}

func (c *Cache) lookup(t reflect.Type) *entry {
	t = base(t)

	if c.caching.Load() {
		if e, ok := c.entries.Load(t); ok {
			return e.(*entry)
		}
	}

	e := newEntry(c.introspect(t))

	if c.caching.Load() {
		actual, _ := c.entries.LoadOrStore(t, e)
		return actual.(*entry)
	}

	return e
}

func (c *Cache) introspect(t reflect.Type) []*Descriptor {
	if t == nil {
		return nil
	}

	ctx := newContext(t)

	for _, in := range *c.introspectors.Load() {
		if err := in.Introspect(ctx); err != nil {
			c.logger.Warn("introspection failed",
				slog.String("type", t.String()),
				slog.String("introspector", reflect.TypeOf(in).String()),
				slog.Any("error", err))

			return nil
		}
	}

	return ctx.result()
}

func base(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
