package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/translit"
)

const replPrompt = "hiero> "

const replHelp = `Commands:
  help               show this help
  alphabet           show the letter signs
  examples           convert a few sample words
  describe <char>    explain how one character converts
  validate <text>    list characters that have no sign
  history            show recent conversions
  quit, exit, q      leave

Anything else is converted.`

// NewReplCmd creates the repl command
func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"interactive", "i"},
		Short:   "Interactive converter",
		Long: `Convert lines as you type them. Type help for commands.

Changes to the active am.toml are picked up without restarting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			store, closeStore, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			r := NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, store, verbosity(cmd))
			if stop := r.watchConfig(); stop != nil {
				defer stop()
			}
			return r.Run(cmdContext(cmd))
		},
	}
}

// REPL is the interactive converter loop.
type REPL struct {
	in        io.Reader
	out       io.Writer
	cfg       atomic.Pointer[am.Config]
	store     *history.Store // nil when history is disabled
	conv      *translit.Converter
	verbosity int
}

// NewREPL creates a REPL reading commands from in and writing to out.
func NewREPL(in io.Reader, out io.Writer, cfg *am.Config, store *history.Store, verbosity int) *REPL {
	r := &REPL{
		in:        in,
		out:       out,
		store:     store,
		conv:      converter(),
		verbosity: verbosity,
	}
	r.cfg.Store(cfg)
	return r
}

// SetConfig swaps the configuration used for subsequent lines.
func (r *REPL) SetConfig(cfg *am.Config) {
	r.cfg.Store(cfg)
}

// watchConfig reloads the configuration when the file it came from changes.
// Returns nil when no config file is in use.
func (r *REPL) watchConfig() func() {
	path := am.GetViper().ConfigFileUsed()
	if path == "" {
		return nil
	}
	w, err := am.NewConfigWatcher(path)
	if err != nil {
		logger.Warnw("Config changes will not be picked up", logger.FieldFile, path, logger.FieldError, err)
		return nil
	}
	w.OnReload(func(cfg *am.Config) error {
		r.SetConfig(cfg)
		if logger.ShouldOutput(r.verbosity, logger.OutputConfig) {
			logger.Debugw("Configuration reloaded", logger.FieldFile, path)
		}
		return nil
	})
	w.Start()
	am.SetGlobalWatcher(w)
	return func() {
		am.SetGlobalWatcher(nil)
		w.Stop()
	}
}

// Run reads lines until quit, end of input or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, pterm.DefaultHeader.Sprint("hiero - English to Egyptian hieroglyphs"))
	fmt.Fprintln(r.out, "Type help for commands, quit to leave.")

	scanner := bufio.NewScanner(r.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return errors.Wrap(scanner.Err(), "failed to read input")
		}
		if quit := r.Execute(ctx, scanner.Text()); quit {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

// Execute handles one input line and reports whether the REPL should stop.
func (r *REPL) Execute(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	// Bare commands match the whole line so text such as "q is for quail"
	// is converted. describe and validate take the rest of the line.
	switch strings.ToLower(trimmed) {
	case "quit", "exit", "q":
		return true
	case "help":
		fmt.Fprintln(r.out, replHelp)
		return false
	case "alphabet":
		if err := renderTable(r.out, referenceTable("Letter", translit.Alphabet())); err != nil {
			r.printError(err)
		}
		return false
	case "examples":
		for _, word := range translit.Examples {
			fmt.Fprintf(r.out, "  %-12s → %s\n", word, r.conv.Convert(word))
		}
		return false
	case "history":
		r.history(ctx)
		return false
	}

	command := strings.ToLower(strings.Fields(trimmed)[0])
	if command != "describe" && command != "validate" {
		r.convert(ctx, trimmed)
		return false
	}

	args, err := shellquote.Split(trimmed)
	if err != nil {
		r.printError(errors.WithHint(errors.Wrap(err, "could not parse arguments"), `quote a lone quote character, e.g. describe "'"`))
		return false
	}
	arg := textArg(args[1:])
	if command == "describe" {
		fmt.Fprintln(r.out, translit.DescribeCharacter(arg))
	} else {
		r.validate(arg)
	}
	return false
}

func (r *REPL) convert(ctx context.Context, text string) {
	cfg := r.cfg.Load()
	if cfg.Convert.WarnUnsupported {
		warnUnsupported(r.out, text)
	}
	output, trace := r.conv.ConvertWithTrace(text)
	fmt.Fprintf(r.out, "Original:     %s\n", text)
	fmt.Fprintf(r.out, "Hieroglyphic: %s\n", output)
	if showBreakdown(cfg, text, r.verbosity) {
		printBreakdown(r.out, trace)
	}
	record(ctx, r.store, text, output, history.SourceREPL, r.verbosity)
}

func (r *REPL) validate(text string) {
	ok, unsupported := translit.Validate(text)
	if ok {
		fmt.Fprint(r.out, pterm.Success.Sprintln("All characters are supported"))
		return
	}
	fmt.Fprint(r.out, pterm.Warning.Sprintfln("Unsupported characters: %s",
		strings.Join(translit.Unsupported(unsupported), " ")))
}

func (r *REPL) history(ctx context.Context) {
	if r.store == nil {
		fmt.Fprint(r.out, pterm.Info.Sprintln("History is disabled"))
		return
	}
	limit := r.cfg.Load().History.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, err := r.store.Recent(ctx, limit, "")
	if err != nil {
		r.printError(err)
		return
	}
	if err := renderHistory(r.out, entries); err != nil {
		r.printError(err)
	}
}

func (r *REPL) printError(err error) {
	fmt.Fprint(r.out, pterm.Error.Sprintln(errors.UserMessage(err)))
}
