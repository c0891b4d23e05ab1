package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"beankit/dyna"
)

// document is a YAML or TOML file decoded into a map bean.
type document struct {
	path   string
	format dyna.Format
	data   map[string]any
}

func loadDocument(path string) (*document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	doc := &document{path: path, format: dyna.FormatOf(path)}

	switch doc.format {
	case dyna.FormatTOML:
		err = toml.Unmarshal(raw, &doc.data)
	default:
		err = yaml.Unmarshal(raw, &doc.data)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	if doc.data == nil {
		doc.data = make(map[string]any)
	}

	return doc, nil
}

func (d *document) encode() ([]byte, error) {
	return encodeValue(d.data, d.format)
}

func (d *document) save() error {
	out, err := d.encode()
	if err != nil {
		return err
	}

	info, err := os.Stat(d.path)
	if err != nil {
		return err
	}

	return os.WriteFile(d.path, out, info.Mode().Perm())
}

// name is the file name without extension.
func (d *document) name() string {
	base := filepath.Base(d.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func encodeValue(v any, format dyna.Format) ([]byte, error) {
	if format == dyna.FormatTOML {
		return toml.Marshal(v)
	}

	return yaml.Marshal(v)
}

// parseFormat validates a --to flag value; empty keeps fallback.
func parseFormat(s string, fallback dyna.Format) (dyna.Format, error) {
	switch f := dyna.Format(strings.ToLower(s)); f {
	case "":
		return fallback, nil
	case dyna.FormatYAML, dyna.FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml or toml)", s)
	}
}

// parseScalar reads a command-line value as a YAML scalar, so 3 is an int
// and true a bool. Values that are not valid YAML stay strings.
func parseScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || (v == nil && s != "null" && s != "~") {
		return s
	}

	return v
}

// composite reports whether v is rendered as a nested document rather
// than a single line.
func composite(v any) bool {
	if v == nil {
		return false
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if k := reflect.ValueOf(rv.Index(i).Interface()).Kind(); k == reflect.Map || k == reflect.Slice {
				return true
			}
		}
	}

	return false
}
