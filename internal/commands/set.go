package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

type setOptions struct {
	write   bool
	strings bool
}

func newSetCmd(s *session) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set FILE EXPRESSION=VALUE...",
		Short: "Assign values and print or rewrite the document",
		Long: `Assign every EXPRESSION=VALUE pair in order. Values are read as YAML
scalars (3 is a number, true a boolean) unless --strings is given. Paths
through missing intermediate values are skipped with a warning.`,
		Example: `  # Change a quantity in place
  beankit set -w order.toml "lines[1].quantity=3"

  # Add a mapped entry and print the result
  beankit set order.yaml "attrs(color)=red"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			return s.runSet(cmd, doc, args[1:], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite FILE instead of printing the result")
	cmd.Flags().BoolVar(&opts.strings, "strings", false, "assign values as strings")

	return cmd
}

func (s *session) runSet(cmd *cobra.Command, doc *document, assignments []string, opts *setOptions) error {
	for _, a := range assignments {
		expression, raw, ok := strings.Cut(a, "=")
		if !ok || expression == "" {
			return fmt.Errorf("invalid assignment %q (want EXPRESSION=VALUE)", a)
		}

		var value any = raw
		if !opts.strings {
			value = parseScalar(raw)
		}

		if !s.beans.IsWritable(doc.data, expression) {
			s.logger.Warn("property not writable, skipped", slog.String("expression", expression))
			continue
		}

		if err := s.beans.SetProperty(doc.data, expression, value); err != nil {
			return err
		}
	}

	if opts.write {
		return doc.save()
	}

	out, err := doc.encode()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}
