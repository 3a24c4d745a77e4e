package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/0dillon/HNG1/internal/analyzer"
	"github.com/0dillon/HNG1/internal/ir"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <value>",
		Short: "Print the properties of a string without storing it",
		Long: `Compute the record the server would store for a value.

Example:
  stringsvc analyze "never odd or even"
  stringsvc analyze racecar --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := analyzer.NewRecord(args[0], time.Now())
			return newFormatter(rootOpts, cmd).Success(rec, func(w io.Writer) {
				writeRecord(w, rec)
			})
		},
	}
}

// writeRecord prints a record as aligned key/value lines.
func writeRecord(w io.Writer, rec ir.StringRecord) {
	p := rec.Properties
	fmt.Fprintf(w, "id:                %s\n", rec.ID)
	fmt.Fprintf(w, "value:             %q\n", rec.Value)
	fmt.Fprintf(w, "length:            %d\n", p.Length)
	fmt.Fprintf(w, "is_palindrome:     %t\n", p.IsPalindrome)
	fmt.Fprintf(w, "unique_characters: %d\n", p.UniqueCharacters)
	fmt.Fprintf(w, "word_count:        %d\n", p.WordCount)
	fmt.Fprintf(w, "created_at:        %s\n", rec.CreatedAt)
	fmt.Fprintln(w, "character_frequency_map:")

	chars := make([]string, 0, len(p.CharacterFrequencyMap))
	for ch := range p.CharacterFrequencyMap {
		chars = append(chars, ch)
	}
	sort.Strings(chars)
	for _, ch := range chars {
		fmt.Fprintf(w, "  %q: %d\n", ch, p.CharacterFrequencyMap[ch])
	}
}
