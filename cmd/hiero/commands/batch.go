package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/batchfile"
	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
)

type batchOutput struct {
	RunID   string      `json:"run_id"`
	Outputs []string    `json:"outputs,omitzero"`
	Results []batchItem `json:"results,omitzero"`
}

type batchItem struct {
	Index  int    `json:"index"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	var (
		file     string
		tolerant bool
	)

	cmd := &cobra.Command{
		Use:   "batch [texts...]",
		Short: "Convert many texts at once",
		Long: `Convert several texts in order. Each argument is one text; --file adds
the texts stored in a file:

  .txt          one text per line
  .json         array of strings
  .yaml, .yml   sequence of strings
  .toml         texts = ["...", ...]

A non-text value (a number in a JSON file, for example) stops the batch
unless --tolerant (or batch.tolerant) is set, in which case every item is
reported on its own.

Examples:
  hiero batch hello egypt nile
  hiero batch --file words.json --tolerant`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, 0, len(args))
			for _, a := range args {
				values = append(values, a)
			}
			if file != "" {
				loaded, err := batchfile.Load(file)
				if err != nil {
					return err
				}
				values = append(values, loaded...)
			}
			if len(values) == 0 {
				return errors.WithHint(
					errors.NewInvalidRequestError("nothing to convert"),
					"pass texts as arguments or use --file",
				)
			}

			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			if !cmd.Flags().Changed("tolerant") {
				tolerant = cfg.Batch.Tolerant
			}
			return runBatch(cmd, cfg, values, tolerant)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read texts from a .txt, .json, .yaml or .toml file")
	cmd.Flags().BoolVar(&tolerant, "tolerant", false, "Report per-item failures instead of stopping at the first")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg *am.Config, values []any, tolerant bool) error {
	v := verbosity(cmd)
	store, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	runID := uuid.NewString()
	ctx := logger.WithRunID(cmd.Context(), runID)
	log := logger.FromContext(ctx, logger.ComponentLogger("batch"))
	start := time.Now()
	c := converter()

	res := batchOutput{RunID: runID}
	if tolerant {
		res.Results = make([]batchItem, 0, len(values))
		for _, r := range c.BatchConvertTolerant(values) {
			item := batchItem{Index: r.Index, Input: fmt.Sprint(values[r.Index]), Output: r.Output}
			if r.Err != nil {
				item.Error = r.Err.Error()
			} else {
				record(ctx, store, item.Input, r.Output, history.SourceBatch, v)
			}
			res.Results = append(res.Results, item)
		}
	} else {
		outputs, err := c.BatchConvert(values)
		if err != nil {
			return errors.WithHint(err, "use --tolerant to convert the remaining items")
		}
		for i, out := range outputs {
			record(ctx, store, fmt.Sprint(values[i]), out, history.SourceBatch, v)
		}
		res.Outputs = outputs
		if res.Outputs == nil {
			res.Outputs = []string{}
		}
	}

	if logger.ShouldOutput(v, logger.OutputProgress) {
		log.Infow("Batch converted", logger.FieldBatchSize, len(values), "tolerant", tolerant)
	}
	if logger.ShouldOutput(v, logger.OutputTiming) {
		log.Debugw("Batch timing", logger.FieldDurationMS, time.Since(start).Milliseconds())
	}

	if display.ShouldOutputJSON(cmd) {
		return printJSON(cmd, res)
	}

	data := pterm.TableData{{"#", "Input", "Hieroglyphs"}}
	if tolerant {
		failed := 0
		for _, item := range res.Results {
			out := item.Output
			if item.Error != "" {
				out = pterm.Red("error: " + item.Error)
				failed++
			}
			data = append(data, []string{fmt.Sprint(item.Index), item.Input, out})
		}
		if err := renderTable(cmd.OutOrStdout(), data); err != nil {
			return err
		}
		if failed > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), pterm.Warning.Sprintfln("%d of %d items failed", failed, len(values)))
		}
		return nil
	}

	for i, out := range res.Outputs {
		data = append(data, []string{fmt.Sprint(i), fmt.Sprint(values[i]), out})
	}
	return renderTable(cmd.OutOrStdout(), data)
}
