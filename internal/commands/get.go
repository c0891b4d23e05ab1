package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newGetCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get FILE EXPRESSION...",
		Short: "Print the values addressed by expressions",
		Long: `Print the value of every expression, one per line. Maps and lists of
maps are printed as a nested document in the format of FILE.`,
		Example: `  # Read a nested value and a list element
  beankit get order.yaml customer.name "lines[0].sku"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			return s.runGet(cmd, doc, args[1:])
		},
	}

	return cmd
}

func (s *session) runGet(cmd *cobra.Command, doc *document, expressions []string) error {
	out := cmd.OutOrStdout()

	for _, expression := range expressions {
		v, err := s.beans.GetProperty(doc.data, expression)
		if err != nil {
			return err
		}

		s.logger.Debug("read property", slog.String("expression", expression), slog.String("type", fmt.Sprintf("%T", v)))

		if composite(v) {
			data, err := encodeValue(v, doc.format)
			if err != nil {
				return err
			}

			fmt.Fprint(out, string(data))

			continue
		}

		fmt.Fprintln(out, s.beans.Registry().ToString(v))
	}

	return nil
}
