package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/history"
	itesting "github.com/teranos/hiero/internal/testing"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/sym"
)

func testConfig() *am.Config {
	return &am.Config{
		Convert: am.ConvertConfig{BreakdownMaxChars: 20, WarnUnsupported: true},
		History: am.HistoryConfig{Enabled: true, Limit: 20},
	}
}

func newTestREPL(t *testing.T, input string, store *history.Store) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewREPL(strings.NewReader(input), &out, testConfig(), store, logger.VerbosityUser), &out
}

func TestREPLConvertsLines(t *testing.T) {
	r, out := newTestREPL(t, "Ra\n\n   \nquit\nnile\n", nil)
	require.NoError(t, r.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Original:     Ra")
	assert.Contains(t, s, "Hieroglyphic: "+sym.Mouth+sym.Vulture)
	assert.Contains(t, s, "Character breakdown:")
	assert.Contains(t, s, "Goodbye!")
	assert.NotContains(t, s, "nile", "input after quit is not read")
}

func TestREPLEndOfInput(t *testing.T) {
	r, out := newTestREPL(t, "egypt", nil)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "Original:     egypt")
	assert.NotContains(t, out.String(), "Goodbye!")
}

func TestREPLCommands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"help", "Anything else is converted."},
		{"HELP", "describe <char>"},
		{"alphabet", sym.DoorBolt},
		{"examples", "pharaoh"},
		{"describe h", "'h' → " + sym.Shelter},
		{`describe "'"`, "[removed]"},
		{"describe ab", "Please provide a single character"},
		{"validate hello", "All characters are supported"},
		{`validate "a @ b"`, "Unsupported characters: @"},
		{"history", "History is disabled"},
		{`describe "`, "could not parse arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, out := newTestREPL(t, "", nil)
			quit := r.Execute(context.Background(), tt.line)
			assert.False(t, quit)
			assert.Contains(t, out.String(), tt.want)
			assert.NotContains(t, out.String(), "Original:")
		})
	}
}

func TestREPLQuitAliases(t *testing.T) {
	for _, line := range []string{"quit", "exit", "q", "  Q  "} {
		r, _ := newTestREPL(t, "", nil)
		assert.True(t, r.Execute(context.Background(), line), line)
	}
}

func TestREPLCommandWordInsideText(t *testing.T) {
	r, out := newTestREPL(t, "", nil)
	r.Execute(context.Background(), "a help b")
	assert.Contains(t, out.String(), "Original:     a help b")
}

func TestREPLTextStartingWithCommandWord(t *testing.T) {
	for _, line := range []string{"q is for quail", "exit the tomb", "help the pharaoh", "history of egypt", "alphabet soup"} {
		t.Run(line, func(t *testing.T) {
			r, out := newTestREPL(t, "", nil)
			quit := r.Execute(context.Background(), line)
			assert.False(t, quit)
			assert.Contains(t, out.String(), "Original:     "+line)
			assert.NotContains(t, out.String(), "Anything else is converted.")
		})
	}
}

func TestREPLTrimsLine(t *testing.T) {
	store := history.NewStore(itesting.CreateTestDB(t), nil)
	r, out := newTestREPL(t, "", store)

	ctx := context.Background()
	r.Execute(ctx, "   ra  \t")
	assert.Contains(t, out.String(), "Original:     ra\n")
	assert.Contains(t, out.String(), "Hieroglyphic: "+sym.Mouth+sym.Vulture+"\n")

	entries, err := store.Recent(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ra", entries[0].Input)
}

func TestREPLWarnsFromCurrentConfig(t *testing.T) {
	r, out := newTestREPL(t, "", nil)
	r.Execute(context.Background(), "a@")
	assert.Contains(t, out.String(), "Unsupported characters will be replaced: @")

	cfg := testConfig()
	cfg.Convert.WarnUnsupported = false
	cfg.Convert.BreakdownMaxChars = 0
	r.SetConfig(cfg)

	out.Reset()
	r.Execute(context.Background(), "a@")
	assert.NotContains(t, out.String(), "Unsupported characters")
	assert.NotContains(t, out.String(), "Character breakdown:")
	assert.Contains(t, out.String(), "Hieroglyphic: "+sym.Vulture+sym.Placeholder)
}

func TestREPLHistory(t *testing.T) {
	store := history.NewStore(itesting.CreateTestDB(t), nil)
	r, out := newTestREPL(t, "", store)

	ctx := context.Background()
	r.Execute(ctx, "history")
	assert.Contains(t, out.String(), "No conversions recorded yet")

	r.Execute(ctx, "nile")
	out.Reset()
	r.Execute(ctx, "history")
	assert.Contains(t, out.String(), "nile")
	assert.Contains(t, out.String(), history.SourceREPL)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestREPLStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, out := newTestREPL(t, "egypt\n", nil)
	require.NoError(t, r.Run(ctx))
	assert.NotContains(t, out.String(), "Original:")
}
