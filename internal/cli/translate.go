package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/0dillon/HNG1/internal/nlquery"
	"github.com/0dillon/HNG1/internal/queryir"
)

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <query>",
		Short: "Show the filters a natural-language query translates to",
		Long: `Translate a free-text query into structured filters, exactly as
GET /strings/filter-by-natural-language does, without querying any store.

Example:
  stringsvc translate "all single word palindromic strings"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(newFormatter(rootOpts, cmd), args[0])
		},
	}
}

func runTranslate(f *OutputFormatter, query string) error {
	interp, err := nlquery.Translate(query)
	if err != nil {
		msg := err.Error()
		var argErr *queryir.ArgumentError
		if errors.As(err, &argErr) {
			msg = argErr.Message
		}
		if outErr := f.Error(ErrCodeInvalidInput, msg, nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "translate failed", err)
	}

	return f.Success(interp, func(w io.Writer) {
		fmt.Fprintf(w, "original:       %s\n", interp.Original)
		filters, _ := json.Marshal(interp.ParsedFilters)
		fmt.Fprintf(w, "parsed_filters: %s\n", filters)
		if interp.ParsedFilters.IsEmpty() {
			fmt.Fprintln(w, "(no filters recognized; every string matches)")
		}
	})
}
