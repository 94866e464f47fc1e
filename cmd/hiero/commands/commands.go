// Package commands implements the hiero CLI.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/db"
	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/translit"
)

// AddCommands registers every hiero subcommand on root.
func AddCommands(root *cobra.Command) {
	root.AddCommand(
		NewConvertCmd(),
		NewDescribeCmd(),
		NewBatchCmd(),
		NewAlphabetCmd(),
		NewValidateCmd(),
		NewReplCmd(),
		NewDemoCmd(),
		NewHistoryCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewAmCmd(),
		NewVersionCmd(),
	)
}

// verbosity returns the -v count.
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// converter returns an engine that logs replaced characters.
func converter() *translit.Converter {
	return translit.New(logger.ComponentLogger("translit"))
}

// openHistory opens the history store when history is enabled. The returned
// close func is always safe to call.
func openHistory(cfg *am.Config) (*history.Store, func(), error) {
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}
	path := cfg.GetHistoryPath()
	database, err := db.OpenWithMigrations(path, logger.ComponentLogger("db"))
	if err != nil {
		return nil, func() {}, errors.WithHint(
			errors.Wrapf(err, "failed to open history database at %s", path),
			"set history.enabled = false or point history.path somewhere writable",
		)
	}
	return history.NewStore(database, logger.ComponentLogger("history")), func() { closeDB(database) }, nil
}

func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Warnw("Failed to close history database", logger.FieldError, err)
	}
}

// record stores a conversion, logging failures instead of returning them:
// history is never allowed to break a conversion.
func record(ctx context.Context, store *history.Store, input, output, source string, verbosity int) {
	if store == nil {
		return
	}
	id, err := store.Record(ctx, history.NewEntry(input, output, source))
	if err != nil {
		logger.Warnw("Failed to record conversion", logger.FieldError, err)
		return
	}
	if logger.ShouldOutput(verbosity, logger.OutputHistory) {
		logger.Infow("Recorded conversion", "id", id, logger.FieldSource, source)
	}
}

// showBreakdown reports whether text gets a per-character breakdown:
// short text always, long text only from -vv.
func showBreakdown(cfg *am.Config, text string, verbosity int) bool {
	n := utf8.RuneCountInString(text)
	if cfg.Convert.BreakdownMaxChars > 0 && n <= cfg.Convert.BreakdownMaxChars {
		return true
	}
	return logger.ShouldOutput(verbosity, logger.OutputLongBreakdown)
}

func printBreakdown(w io.Writer, trace []translit.TraceEntry) {
	if len(trace) == 0 {
		return
	}
	fmt.Fprintln(w, "Character breakdown:")
	for _, e := range trace {
		fmt.Fprintf(w, "  %s\n", e.Explain())
	}
}

// warnUnsupported prints a warning naming characters that will become the
// placeholder. It reports whether any were found.
func warnUnsupported(w io.Writer, text string) bool {
	ok, unsupported := translit.Validate(text)
	if ok {
		return false
	}
	fmt.Fprint(w, pterm.Warning.Sprintfln("Unsupported characters will be replaced: %s",
		strings.Join(translit.Unsupported(unsupported), " ")))
	return true
}

// printJSON writes v as JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	return display.OutputJSON(cmd.OutOrStdout(), v)
}

// textArg joins positional arguments into one text.
func textArg(args []string) string {
	return strings.Join(args, " ")
}

// renderTable prints a pterm table with a header row.
func renderTable(w io.Writer, data pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	fmt.Fprintln(w, table)
	return nil
}
