package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/translit"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <text...>",
		Short: "List characters that have no hieroglyph",
		Long: `Check text before converting it. Characters without a sign are listed
once each, in the order they first appear; they would be converted to the
stroke placeholder.

Examples:
  hiero validate "Hello, World!"
  hiero validate --strict "café"   # exit non-zero when anything is unsupported`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := textArg(args)
			ok, unsupported := translit.Validate(text)
			chars := translit.Unsupported(unsupported)

			if display.ShouldOutputJSON(cmd) {
				if chars == nil {
					chars = []string{}
				}
				if err := printJSON(cmd, map[string]interface{}{
					"supported":   ok,
					"unsupported": chars,
				}); err != nil {
					return err
				}
			} else if ok {
				fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("All characters are supported"))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), pterm.Warning.Sprintfln("Unsupported characters: %s", strings.Join(chars, " ")))
			}

			if strict && !ok {
				return errors.Newf("%d unsupported character(s)", len(chars))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any character is unsupported")
	return cmd
}
