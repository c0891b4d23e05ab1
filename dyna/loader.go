package dyna

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"beankit/convert"
)

// Format is the encoding of a class definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension; anything but .toml is
// read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}

	return FormatYAML
}

// ClassFile is the textual form of a class:
//
//	name: Order
//	lazy: true
//	properties:
//	  - name: id
//	    type: int
//	    readonly: true
//	  - name: lines
//	    type: "[]string"
//	  - name: attrs
//	    type: map[string]any
//	    content: string
type ClassFile struct {
	Name       string        `yaml:"name" toml:"name"`
	Lazy       bool          `yaml:"lazy,omitempty" toml:"lazy,omitempty"`
	Restricted bool          `yaml:"restricted,omitempty" toml:"restricted,omitempty"`
	Properties []PropertyDef `yaml:"properties" toml:"properties"`
}

// PropertyDef is the textual form of a Property. Types are resolved by
// name through convert.TypeNames; an empty type means untyped.
type PropertyDef struct {
	Name      string `yaml:"name" toml:"name"`
	Type      string `yaml:"type,omitempty" toml:"type,omitempty"`
	Content   string `yaml:"content,omitempty" toml:"content,omitempty"`
	ReadOnly  bool   `yaml:"readonly,omitempty" toml:"readonly,omitempty"`
	WriteOnly bool   `yaml:"writeonly,omitempty" toml:"writeonly,omitempty"`
}

// LoadClass reads and builds the class defined in the file at path.
func LoadClass(path string) (Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file %s: %w", path, err)
	}

	return ParseClass(data, FormatOf(path))
}

// ParseClass builds a class from data, resolving types in the shared
// name table.
func ParseClass(data []byte, format Format) (Class, error) {
	f, err := DecodeClassFile(data, format)
	if err != nil {
		return nil, err
	}

	return f.Build(nil)
}

// DecodeClassFile parses data without building the class.
func DecodeClassFile(data []byte, format Format) (*ClassFile, error) {
	var f ClassFile

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse class TOML: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse class YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown class format %q", format)
	}

	return &f, nil
}

// Build creates a LazyClass when the file asks for one, a BasicClass
// otherwise. A nil names uses the shared table.
func (f *ClassFile) Build(names *convert.TypeNames) (Class, error) {
	resolve := convert.Resolve
	if names != nil {
		resolve = names.Resolve
	}

	if f.Name == "" {
		return nil, fmt.Errorf("class without a name")
	}

	props := make([]*Property, 0, len(f.Properties))

	for _, def := range f.Properties {
		p := &Property{Name: def.Name, ReadOnly: def.ReadOnly, WriteOnly: def.WriteOnly}

		var err error
		if p.Type, err = resolveOptional(resolve, def.Type); err != nil {
			return nil, fmt.Errorf("class %s, property %s: %w", f.Name, def.Name, err)
		}

		if p.ContentType, err = resolveOptional(resolve, def.Content); err != nil {
			return nil, fmt.Errorf("class %s, property %s: %w", f.Name, def.Name, err)
		}

		if p.ContentType != nil && !p.IsIndexed() && !p.IsMapped() {
			return nil, fmt.Errorf("class %s, property %s: content type on a non-container", f.Name, def.Name)
		}

		props = append(props, p)
	}

	if !f.Lazy {
		if f.Restricted {
			return nil, fmt.Errorf("class %s: only lazy classes can be restricted", f.Name)
		}

		return NewBasicClass(f.Name, props...)
	}

	c, err := NewLazyClass(f.Name, props...)
	if err != nil {
		return nil, err
	}

	c.SetRestricted(f.Restricted)

	return c, nil
}

// Definition returns the textual form of c.
func Definition(c Class) *ClassFile {
	f := &ClassFile{Name: c.Name()}

	if mc, ok := c.(MutableClass); ok {
		f.Lazy = true
		f.Restricted = mc.IsRestricted()
	}

	for _, p := range c.Properties() {
		def := PropertyDef{Name: p.Name, ReadOnly: p.ReadOnly, WriteOnly: p.WriteOnly}

		if p.Type != nil {
			def.Type = convert.TypeName(p.Type)
		}

		if p.ContentType != nil {
			def.Content = convert.TypeName(p.ContentType)
		}

		f.Properties = append(f.Properties, def)
	}

	return f
}

// Marshal encodes f in the given format.
func (f *ClassFile) Marshal(format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(f)
	}

	return yaml.Marshal(f)
}

func resolveOptional(resolve func(string) (reflect.Type, error), name string) (reflect.Type, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	return resolve(name)
}
