package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/load"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|url>...",
	Short: "Check article documents for unknown blocks and missing fields",
	Long: `Validate decodes each document and reports every block that would render
as a diagnostic: unknown content types and blocks missing required fields.

Examples:
  articlepipe validate post.json
  articlepipe validate content/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loader := load.New()

	var failed int
	for _, source := range args {
		if err := validateSource(ctx, loader, source); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s\n", source)
			for _, e := range problems(err) {
				fmt.Fprintf(os.Stderr, "  - %v\n", e)
			}
			continue
		}
		fmt.Fprintf(os.Stdout, "✓ %s\n", source)
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d documents invalid", failed, len(args))
	}
	return nil
}

func validateSource(ctx context.Context, loader core.Loader, source string) error {
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return err
	}
	return core.Validate(doc)
}

// problems flattens an aggregated validation error into its parts.
func problems(err error) []error {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.Errors
	}
	return []error{err}
}
