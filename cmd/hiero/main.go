package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/cmd/hiero/commands"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/sym"
)

var rootCmd = &cobra.Command{
	Use:   "hiero",
	Short: sym.Vulture + " hiero - English to Egyptian hieroglyphs",
	Long: sym.Vulture + ` hiero - English to Egyptian hieroglyphs

Converts English text to Egyptian hieroglyphic signs one character at a
time. Letters map to uniliteral signs, digits to numeral strokes, and
anything without a sign becomes the stroke placeholder ` + sym.Placeholder + `.

Available commands:
  convert   - Convert text (add --trace for a per-character breakdown)
  describe  - Explain how one character converts
  batch     - Convert many texts, from arguments or a file
  alphabet  - Show the letter and numeral signs
  validate  - List characters that have no sign
  repl      - Interactive converter
  demo      - Walk through examples
  history   - Show recorded conversions
  serve     - Start the HTTP and websocket API
  mcp       - Serve the Model Context Protocol over stdio
  am        - Manage configuration ("as meant")

Examples:
  hiero convert "Hello, World!"
  hiero describe h
  hiero batch --file words.txt
  hiero serve --port 8877`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON instead of text")

	commands.AddCommands(rootCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}
