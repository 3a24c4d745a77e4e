package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/0dillon/HNG1/internal/config"
)

// ConfigIssue is one problem found in a config file.
type ConfigIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool          `json:"valid"`
	Errors []ConfigIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a server config file",
		Long: `Check a YAML config file against the config schema and the
server's settings rules without starting the server. Environment overrides
are not applied.

Exit codes:
  0 - Config is valid
  1 - Config has errors
  2 - File could not be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(newFormatter(rootOpts, cmd), args[0])
		},
	}
}

func runValidate(f *OutputFormatter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if outErr := f.Error(ErrCodeGeneric, fmt.Sprintf("cannot read %s", path), err.Error()); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to read config", err)
	}

	result := validateConfig(path, data)
	f.VerboseLog("Checked %s: %d issue(s)", path, len(result.Errors))

	if !result.Valid {
		if outErr := f.Error(ErrCodeInvalidConf, fmt.Sprintf("%d config error(s)", len(result.Errors)), result.Errors); outErr != nil {
			return outErr
		}
		if f.Format != "json" {
			for _, issue := range result.Errors {
				writeIssue(f.Writer, issue)
			}
		}
		return NewExitError(ExitFailure, "config is invalid")
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s is valid\n", path)
	})
}

// validateConfig runs schema and semantic checks over data.
// Semantic checks run only when the schema passes.
func validateConfig(path string, data []byte) ValidationResult {
	cfg := config.Default()
	if err := config.Parse(path, data, &cfg); err != nil {
		return ValidationResult{Errors: []ConfigIssue{issueFromError(err)}}
	}

	var issues []ConfigIssue
	for _, e := range cfg.Validate() {
		issues = append(issues, ConfigIssue{Field: e.Field, Message: e.Message})
	}
	return ValidationResult{Valid: len(issues) == 0, Errors: issues}
}

func issueFromError(err error) ConfigIssue {
	var schemaErr *config.SchemaError
	if errors.As(err, &schemaErr) {
		issue := ConfigIssue{Field: schemaErr.Field, Message: schemaErr.Message}
		if schemaErr.Pos.IsValid() {
			issue.Line = schemaErr.Pos.Line()
		}
		return issue
	}
	return ConfigIssue{Field: "config", Message: err.Error()}
}

func writeIssue(w io.Writer, issue ConfigIssue) {
	if issue.Line > 0 {
		fmt.Fprintf(w, "  line %d: %s: %s\n", issue.Line, issue.Field, issue.Message)
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", issue.Field, issue.Message)
}
