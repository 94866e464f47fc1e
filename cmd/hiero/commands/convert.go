package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/translit"
)

// convertResult is the JSON form of a conversion.
type convertResult struct {
	Input       string                `json:"input"`
	Output      string                `json:"output"`
	Supported   bool                  `json:"supported"`
	Unsupported []string              `json:"unsupported,omitempty"`
	Trace       []translit.TraceEntry `json:"trace,omitempty"`
}

// NewConvertCmd creates the convert command
func NewConvertCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:     "convert [text...]",
		Aliases: []string{"c"},
		Short:   "Convert English text to hieroglyphs",
		Long: `Convert English text to Egyptian hieroglyphs.

Arguments are joined with spaces. With no arguments the text is read from
standard input. Short inputs (up to convert.breakdown_max_chars characters)
are followed by a per-character breakdown; --trace always shows it.

Examples:
  hiero convert Hello, World!
  echo "nile" | hiero convert
  hiero convert --trace egypt
  hiero convert --json "ra 123"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := textArg(args)
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "failed to read standard input")
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			return runConvert(cmd, text, trace)
		},
	}
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Always show the per-character breakdown")
	return cmd
}

func runConvert(cmd *cobra.Command, text string, trace bool) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	v := verbosity(cmd)

	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	output, entries := converter().ConvertWithTrace(text)
	record(cmd.Context(), store, text, output, history.SourceCLI, v)

	if display.ShouldOutputJSON(cmd) {
		ok, unsupported := translit.Validate(text)
		res := convertResult{
			Input:       text,
			Output:      output,
			Supported:   ok,
			Unsupported: translit.Unsupported(unsupported),
		}
		if trace {
			res.Trace = entries
		}
		return printJSON(cmd, res)
	}

	out := cmd.OutOrStdout()
	if cfg.Convert.WarnUnsupported {
		warnUnsupported(cmd.ErrOrStderr(), text)
	}
	fmt.Fprintln(out, output)
	if trace || showBreakdown(cfg, text, v) {
		printBreakdown(out, entries)
	}
	return nil
}
