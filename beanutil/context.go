package beanutil

import (
	"log/slog"
	"reflect"
	"sync"

	"beankit/convert"
	"beankit/dyna"
	"beankit/expr"
	"beankit/introspect"
)

// Context bundles the collaborators every property operation needs: an
// expression resolver, an introspection cache and a conversion registry.
// A Context is safe for concurrent use once configured.
type Context struct {
	resolver expr.Resolver
	cache    *introspect.Cache
	registry *convert.Registry
	logger   *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithResolver replaces the expression syntax.
func WithResolver(r expr.Resolver) Option {
	return func(c *Context) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithCache sets the introspection cache.
func WithCache(cache *introspect.Cache) Option {
	return func(c *Context) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithRegistry sets the conversion registry.
func WithRegistry(r *convert.Registry) Option {
	return func(c *Context) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger sets the logger reporting skipped assignments.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConfig builds the cache and registry from cfg.
func WithConfig(cfg *Config) Option {
	return func(c *Context) {
		c.cache = introspect.NewCache(cfg.CacheOptions()...)

		opts, err := cfg.ConvertOptions()
		if err != nil {
			c.logger.Warn("ignoring invalid conversion config", slog.Any("error", err))
			return
		}

		c.registry = convert.NewRegistry(opts...)
	}
}

// New returns a Context with a fresh cache and a strict registry unless
// opts say otherwise.
func New(opts ...Option) *Context {
	c := &Context{
		resolver: expr.DefaultResolver{},
		logger:   slog.Default().With("component", "beanutil"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cache == nil {
		c.cache = introspect.NewCache()
	}

	if c.registry == nil {
		c.registry = convert.NewRegistry()
	}

	return c
}

var (
	defaultContext = sync.OnceValue(func() *Context { return New() })
	domains        sync.Map // any -> *Context
)

// Default returns the process-wide Context.
func Default() *Context {
	return defaultContext()
}

// ForDomain returns the Context of an isolation domain, creating it with
// opts on first use. Later calls ignore opts. Domains are never dropped.
func ForDomain(key any, opts ...Option) *Context {
	if c, ok := domains.Load(key); ok {
		return c.(*Context)
	}

	c, _ := domains.LoadOrStore(key, New(opts...))

	return c.(*Context)
}

// Resolver returns the expression resolver.
func (c *Context) Resolver() expr.Resolver { return c.resolver }

// Cache returns the introspection cache.
func (c *Context) Cache() *introspect.Cache { return c.cache }

// Registry returns the conversion registry.
func (c *Context) Registry() *convert.Registry { return c.registry }

// RegisterConverter installs conv for values of type t.
func (c *Context) RegisterConverter(t reflect.Type, conv convert.Converter) {
	c.registry.Register(t, conv)
}

// RegisterConverterFunc installs a typed conversion function such as
// func(string) (Money, error).
func (c *Context) RegisterConverterFunc(fn any) error {
	return c.registry.RegisterFunc(fn)
}

// DeregisterConverter drops the converter for t.
func (c *Context) DeregisterConverter(t reflect.Type) {
	c.registry.Deregister(t)
}

// DeregisterAll restores the default converters.
func (c *Context) DeregisterAll() {
	c.registry.DeregisterAll()
}

// Bean returns v as a dyna.Bean using the context's introspection cache.
func (c *Context) Bean(v any) (dyna.Bean, error) {
	return dyna.WrapWith(c.cache, v)
}
