package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/translit"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <character>",
		Short: "Explain how a single character converts",
		Long: `Explain which sign a single character becomes and why.

Examples:
  hiero describe h
  hiero describe 7
  hiero describe "'"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := translit.DescribeCharacter(args[0])
			if display.ShouldOutputJSON(cmd) {
				return printJSON(cmd, map[string]string{
					"char":        args[0],
					"description": description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), description)
			return nil
		},
	}
}
