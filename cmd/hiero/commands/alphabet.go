package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/translit"
)

// NewAlphabetCmd creates the alphabet command
func NewAlphabetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "alphabet",
		Aliases: []string{"abc"},
		Short:   "Show the sign for every letter and digit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if display.ShouldOutputJSON(cmd) {
				return printJSON(cmd, map[string][]translit.AlphabetEntry{
					"letters":  translit.Alphabet(),
					"numerals": translit.Numerals(),
				})
			}
			if err := renderTable(cmd.OutOrStdout(), referenceTable("Letter", translit.Alphabet())); err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), referenceTable("Digit", translit.Numerals()))
		},
	}
}

func referenceTable(heading string, entries []translit.AlphabetEntry) pterm.TableData {
	data := pterm.TableData{{heading, "Sign", "Gardiner", "Description"}}
	for _, e := range entries {
		data = append(data, []string{e.Letter, e.Glyph, e.Gardiner, e.Label})
	}
	return data
}
