package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func newDescribeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe FILE [EXPRESSION]",
		Short: "List the properties of a document or a nested value",
		Example: `  # List top-level properties
  beankit describe order.yaml

  # List the properties of the first line
  beankit describe order.yaml "lines[0]"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			var bean any = doc.data
			if len(args) == 2 {
				if bean, err = s.beans.GetProperty(doc.data, args[1]); err != nil {
					return err
				}
			}

			return s.runDescribe(cmd, bean)
		},
	}

	return cmd
}

func (s *session) runDescribe(cmd *cobra.Command, bean any) error {
	props, err := s.beans.DescribeStrings(bean)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(out, "%s: %s\n", name, props[name])
	}

	return nil
}
