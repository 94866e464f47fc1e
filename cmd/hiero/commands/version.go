package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show hiero version information",
		Long:  `Display version, build time, commit hash, table version and platform information for the hiero binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if display.ShouldOutputJSON(cmd) {
				return printJSON(cmd, info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
}
