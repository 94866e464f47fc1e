package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		limit  int
		tables string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded conversions",
		Long: `List the most recent conversions, newest first.

--tables filters by the version of the sign tables a conversion was made
with, as a semver constraint.

Examples:
  hiero history
  hiero history --limit 50
  hiero history --tables ">=1.0.0"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			if !cfg.History.Enabled {
				return errors.WithHint(
					errors.New("history is disabled"),
					"run `hiero am set history.enabled true`",
				)
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.Limit
			}

			store, closeStore, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer closeStore()
			return runHistory(cmd, store, limit, tables)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of entries to show (default: history.limit)")
	cmd.Flags().StringVar(&tables, "tables", "", `Only entries made with matching table versions (e.g. ">=1.0.0")`)
	return cmd
}

func runHistory(cmd *cobra.Command, store *history.Store, limit int, tables string) error {
	entries, err := store.Recent(cmd.Context(), limit, tables)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if entries == nil {
			entries = []history.Entry{}
		}
		return printJSON(cmd, entries)
	}

	return renderHistory(cmd.OutOrStdout(), entries)
}

func renderHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprint(w, pterm.Info.Sprintln("No conversions recorded yet"))
		return nil
	}

	data := pterm.TableData{{"When", "Source", "Input", "Hieroglyphs", "Unsupported"}}
	for _, e := range entries {
		data = append(data, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Source,
			e.Input,
			e.Output,
			strings.Join(e.Unsupported, " "),
		})
	}
	return renderTable(w, data)
}
