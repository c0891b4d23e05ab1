package commands

import (
	"github.com/spf13/cobra"

	"beankit/dyna"
	"beankit/internal/analyze"
)

type classOptions struct {
	infer  bool
	source string
	to     string
}

func newClassCmd(s *session) *cobra.Command {
	opts := &classOptions{}

	cmd := &cobra.Command{
		Use:   "class FILE",
		Short: "Print a class definition",
		Long: `Load the class definition in FILE and print it in normalized form.
With --infer, FILE is a document instead and the printed class declares
one property per top-level key, typed after its value. With --go, FILE
names a struct in the Go packages matched by the pattern and the class
is derived from its fields and accessors.`,
		Example: `  # Convert a class definition to TOML
  beankit class order.class.yaml --to toml

  # Derive a class from a sample document
  beankit class --infer order.yaml

  # Derive a class from a Go struct
  beankit class --go ./shop shop.Order`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runClass(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.infer, "infer", false, "derive the class from a document")
	cmd.Flags().StringVar(&opts.source, "go", "", "derive the class from a struct in the Go packages matching `PATTERN`")
	cmd.Flags().StringVar(&opts.to, "to", "", "output format: yaml or toml (default: format of FILE)")
	cmd.MarkFlagsMutuallyExclusive("infer", "go")

	return cmd
}

func (s *session) runClass(cmd *cobra.Command, path string, opts *classOptions) error {
	format, err := parseFormat(opts.to, dyna.FormatOf(path))
	if err != nil {
		return err
	}

	var file *dyna.ClassFile

	switch {
	case opts.source != "":
		file, err = s.sourceClass(opts.source, path)
	case opts.infer:
		file, err = s.inferClass(path)
	default:
		file, err = s.loadClass(path)
	}

	if err != nil {
		return err
	}

	out, err := file.Marshal(format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}

func (s *session) loadClass(path string) (*dyna.ClassFile, error) {
	class, err := dyna.LoadClass(path)
	if err != nil {
		return nil, err
	}

	return dyna.Definition(class), nil
}

// sourceClass derives the class of struct name from Go source. The result
// is built once to make sure every derived type resolves.
func (s *session) sourceClass(pattern, name string) (*dyna.ClassFile, error) {
	a := analyze.NewAnalyzer(analyze.WithLogger(s.logger.With("component", "analyze")))

	graph, err := a.LoadPackages(pattern)
	if err != nil {
		return nil, err
	}

	id, err := graph.Lookup(name)
	if err != nil {
		return nil, err
	}

	file, err := a.Class(id)
	if err != nil {
		return nil, err
	}

	if _, err := file.Build(nil); err != nil {
		return nil, err
	}

	return file, nil
}

// inferClass copies a document into a lazy bean, which declares every key
// with the type of its value.
func (s *session) inferClass(path string) (*dyna.ClassFile, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}

	class, err := dyna.NewLazyClass(doc.name())
	if err != nil {
		return nil, err
	}

	bean := dyna.NewLazyBean(class)
	if err := s.beans.CopyProperties(bean, doc.data); err != nil {
		return nil, err
	}

	return dyna.Definition(class), nil
}
