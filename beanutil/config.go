package beanutil

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"beankit/convert"
	"beankit/introspect"
)

// Config is the file form of a Context configuration:
//
//	conversion:
//	  mode: lenient
//	  categories: [safe_number, text_number, textual_bool]
//	  array_size: -1
//	  time_layouts: ["2006-01-02"]
//	  location: Europe/Berlin
//	  delimiter: ";"
//	introspection:
//	  caching: true
//	  fluent: With
//	  suppress: [password]
type Config struct {
	Conversion    ConversionConfig    `yaml:"conversion"`
	Introspection IntrospectionConfig `yaml:"introspection"`
}

// ConversionConfig configures the conversion registry.
type ConversionConfig struct {
	Mode        convert.Mode `yaml:"mode"`
	Categories  []string     `yaml:"categories,omitempty"`
	ArraySize   *int         `yaml:"array_size,omitempty"`
	TimeLayouts []string     `yaml:"time_layouts,omitempty"`
	Location    string       `yaml:"location,omitempty"`
	Delimiter   string       `yaml:"delimiter,omitempty"`
}

// IntrospectionConfig configures the introspection cache.
type IntrospectionConfig struct {
	Caching *bool `yaml:"caching,omitempty"`
	// Fluent enables chained setters with the given method prefix.
	Fluent   string   `yaml:"fluent,omitempty"`
	Suppress []string `yaml:"suppress,omitempty"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// ConvertOptions translates the conversion section into registry options.
func (c *Config) ConvertOptions() ([]convert.Option, error) {
	cc := c.Conversion
	opts := []convert.Option{convert.WithMode(cc.Mode)}

	if len(cc.Categories) > 0 {
		cats, err := convert.ParseCategories(cc.Categories)
		if err != nil {
			return nil, err
		}

		opts = append(opts, convert.WithCategories(cats))
	}

	if cc.ArraySize != nil {
		opts = append(opts, convert.WithDefaultArraySize(*cc.ArraySize))
	}

	if cc.Location != "" {
		loc, err := time.LoadLocation(cc.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid location: %w", err)
		}

		opts = append(opts, convert.WithLocation(loc))
	}

	return append(opts,
		convert.WithTimeLayouts(cc.TimeLayouts...),
		convert.WithArrayDelimiter(cc.Delimiter),
	), nil
}

// CacheOptions translates the introspection section into cache options.
func (c *Config) CacheOptions() []introspect.Option {
	ic := c.Introspection
	chain := introspect.DefaultIntrospectors()

	if ic.Fluent != "" {
		chain = append(chain, introspect.FluentIntrospector{Prefix: ic.Fluent})
	}

	if len(ic.Suppress) > 0 {
		chain = append(chain, introspect.SuppressIntrospector{Names: ic.Suppress})
	}

	opts := []introspect.Option{introspect.WithIntrospectors(chain...)}
	if ic.Caching != nil {
		opts = append(opts, introspect.WithCaching(*ic.Caching))
	}

	return opts
}
