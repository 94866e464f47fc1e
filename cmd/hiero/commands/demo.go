package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/translit"
)

// alphabetColumns is how many letters go in each column of the demo listing.
const alphabetColumns = 13

// NewDemoCmd creates the demo command
func NewDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through example conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runDemo(cmd.OutOrStdout())
			return nil
		},
	}
}

func runDemo(w io.Writer) {
	c := converter()

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Basic conversions"))
	for _, text := range translit.DemoTexts {
		fmt.Fprintf(w, "%-24s → %s\n", text, c.Convert(text))
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprintf("Detailed breakdown: %q", translit.BreakdownSample))
	output, trace := c.ConvertWithTrace(translit.BreakdownSample)
	fmt.Fprintf(w, "Result: %s\n", output)
	printBreakdown(w, trace)

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Alphabet"))
	letters := translit.Alphabet()
	for i := 0; i < alphabetColumns && i < len(letters); i++ {
		left := letters[i]
		line := fmt.Sprintf("%s = %s %-22s", left.Letter, left.Glyph, left.Label)
		if j := i + alphabetColumns; j < len(letters) {
			right := letters[j]
			line += fmt.Sprintf("%s = %s %s", right.Letter, right.Glyph, right.Label)
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Numerals"))
	for _, n := range translit.Numerals() {
		fmt.Fprintf(w, "%s = %s (%s)\n", n.Letter, n.Glyph, n.Label)
	}
}
