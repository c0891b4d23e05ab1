package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"beankit/dyna"
)

type checkOptions struct {
	strict   bool
	describe bool
}

func newCheckCmd(s *session) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check CLASS DOCUMENT",
		Short: "Populate a bean of a class from a document and report problems",
		Long: `Create an instance of the class in CLASS and populate it from the
top-level keys of DOCUMENT, converting values to the declared types.
Unknown and read-only keys are reported as warnings; conversion failures
are errors.`,
		Example: `  # Validate an order against its class
  beankit check order.class.yaml order.yaml --describe`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runCheck(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat skipped keys as errors")
	cmd.Flags().BoolVar(&opts.describe, "describe", false, "print the populated bean")

	return cmd
}

func (s *session) runCheck(cmd *cobra.Command, classPath, docPath string, opts *checkOptions) error {
	class, err := dyna.LoadClass(classPath)
	if err != nil {
		return err
	}

	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}

	bean, err := class.NewInstance()
	if err != nil {
		return err
	}

	report, err := s.beans.PopulateReport(bean, doc.data)

	out := cmd.OutOrStdout()
	for _, w := range report.Warnings {
		fmt.Fprintln(out, "warning:", w.String())
	}

	for _, e := range report.Errors {
		fmt.Fprintln(out, "error:", e.String())
	}

	if err != nil {
		return fmt.Errorf("%s does not match class %s: %w", docPath, class.Name(), err)
	}

	if opts.strict && len(report.Warnings) > 0 {
		return fmt.Errorf("%s does not match class %s: %w", docPath, class.Name(), errSkipped)
	}

	if opts.describe {
		return s.runDescribe(cmd, bean)
	}

	return nil
}

var errSkipped = errors.New("keys were skipped")
