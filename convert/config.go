package convert

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

//go:generate go tool stringer -type=Mode -output=mode_string.go

// Mode selects what a failed conversion does.
type Mode int

const (
	// ModeStrict reports failures as *errs.ConversionError.
	ModeStrict Mode = iota
	// ModeLenient swallows failures and returns the configured default.
	ModeLenient
)

// UnmarshalText accepts "strict" and "lenient".
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "strict", "":
		*m = ModeStrict
	case "lenient":
		*m = ModeLenient
	default:
		return fmt.Errorf("unknown conversion mode %q", text)
	}

	return nil
}

// MarshalText renders the mode as "strict" or "lenient".
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(strings.TrimPrefix(m.String(), "Mode"))), nil
}

const (
	// DefaultArraySize is the length of the slice lenient mode returns for a
	// failed slice conversion. A negative size means nil.
	DefaultArraySize = 0
	// DefaultArrayDelimiter separates elements in textual slices.
	DefaultArrayDelimiter = ","
)

// DefaultTimeLayouts are tried in order when parsing time.Time; the first
// one is used for formatting.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// Config holds the registry-wide conversion settings.
type Config struct {
	Mode             Mode
	DefaultArraySize int
	Categories       Category
	TimeLayouts      []string
	Location         *time.Location
	ArrayDelimiter   string
	Logger           *slog.Logger
}

// DefaultConfig returns strict mode with every category enabled.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeStrict,
		DefaultArraySize: DefaultArraySize,
		Categories:       CategoryAll,
		TimeLayouts:      DefaultTimeLayouts,
		Location:         time.UTC,
		ArrayDelimiter:   DefaultArrayDelimiter,
		Logger:           slog.Default().With("component", "convert"),
	}
}

// NewConfig applies opts to DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithMode selects strict or lenient failure handling for every converter.
func WithMode(mode Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithDefaultArraySize sets the slice length used by lenient mode.
func WithDefaultArraySize(size int) Option {
	return func(c *Config) {
		c.DefaultArraySize = size
	}
}

// WithCategories restricts the conversion families the built-in converters
// perform.
func WithCategories(categories Category) Option {
	return func(c *Config) {
		c.Categories = categories
	}
}

// WithTimeLayouts replaces the time.Time layouts. An empty list keeps the
// defaults.
func WithTimeLayouts(layouts ...string) Option {
	return func(c *Config) {
		if len(layouts) > 0 {
			c.TimeLayouts = layouts
		}
	}
}

// WithLocation sets the location for layouts without a zone.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithArrayDelimiter sets the element separator of textual slices.
func WithArrayDelimiter(delim string) Option {
	return func(c *Config) {
		if delim != "" {
			c.ArrayDelimiter = delim
		}
	}
}

// WithLogger sets the logger reporting swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// Policy overrides the failure handling of one destination type.
type Policy struct {
	Mode Mode
	// Default is returned in lenient mode instead of the zero value.
	Default any
}

var categoryNames = map[string]Category{
	"safe_number":   CategorySafeNumber,
	"unsafe_number": CategoryUnsafeNumber,
	"text_number":   CategoryTextNumber,
	"numeric_bool":  CategoryNumericBool,
	"textual_bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"seconds":       CategorySeconds,
	"enum_string":   CategoryEnumString,
	"safe_array":    CategorySafeArray,
	"unsafe_array":  CategoryUnsafeArray,
	"all":           CategoryAll,
}

// ParseCategories combines category names such as "text_number" or "all".
func ParseCategories(names []string) (Category, error) {
	var c Category

	for _, name := range names {
		bit, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}

		c |= bit
	}

	return c, nil
}
