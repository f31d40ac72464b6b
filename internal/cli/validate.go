package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"craftplan/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	SpecHash string                     `json:"spec_hash,omitempty"`
	Errors   []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec-file>",
		Short: "Validate a crafting spec",
		Long: `Validate a crafting spec file without solving.

Checks for undeclared item references, duplicate rule names, malformed
quantities and unproducible goal items. All findings are reported at once.

Exit codes:
  0 - spec is valid
  1 - validation findings
  2 - command error (file missing, malformed CUE)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	spec, err := compiler.LoadSpecFile(specPath)
	if err != nil {
		var loadErr *compiler.LoadError
		if errors.As(err, &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Message)
		}
		return WrapExitError(ExitCommandError, "load spec", err)
	}

	formatter.VerboseLog("Loaded %s: %d items, %d recipes", specPath, len(spec.Items), len(spec.Recipes))

	findings := compiler.ValidateSpec(*spec)
	if len(findings) > 0 {
		result := ValidationResult{Valid: false, Errors: findings}
		if opts.Format == "json" {
			formatter.JSON(result)
		} else {
			fmt.Fprintf(formatter.Writer, "Validation failed with %d finding(s):\n", len(findings))
			for _, f := range findings {
				fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", f.Code, f.Field, f.Message)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation finding(s)", len(findings)))
	}

	hash := specDigest(spec)
	if opts.Format == "json" {
		return formatter.JSON(ValidationResult{Valid: true, SpecHash: hash})
	}
	fmt.Fprintf(formatter.Writer, "Valid. spec_hash=%s\n", hash)
	return nil
}
