package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// swapLogger replaces the global logger for the duration of a test.
func swapLogger(t *testing.T, l *zap.SugaredLogger) {
	t.Helper()
	prev, prevJSON := Logger, JSONOutput
	Logger = l
	t.Cleanup(func() {
		Logger, JSONOutput = prev, prevJSON
	})
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{"JSON output mode", true, VerbosityUser},
		{"Console output mode", false, VerbosityInfo},
		{"Console debug mode", false, VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapLogger(t, nil)

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			want := VerbosityToLevel(tt.verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(want))
			if want > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(want-1))
			}
		})
	}
}

func TestInitializeReadsThemeFromEnv(t *testing.T) {
	swapLogger(t, nil)
	prev := Theme()
	t.Cleanup(func() { SetTheme(prev) })

	t.Setenv("HIERO_LOG_THEME", "gruvbox")
	require.NoError(t, Initialize(false, VerbosityUser))
	assert.Equal(t, "gruvbox", Theme())
}

func TestCleanupWithNilLogger(t *testing.T) {
	swapLogger(t, nil)
	assert.NotPanics(t, Cleanup)
	assert.NotPanics(t, func() {
		Infow("test", "key", "value")
		Warnw("test", "key", "value")
		Errorw("test", "key", "value")
		Debugw("test", "key", "value")
		Infof("test %s", "format")
		Debugf("test %s", "format")
	})
}

func TestPackageFunctionsUseGlobalLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	swapLogger(t, zap.New(core).Sugar())

	Infow("converted", FieldCount, 3)
	Warnw("unsupported characters")
	Debugf("took %dms", 4)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "converted", entries[0].Message)
	assert.EqualValues(t, 3, entries[0].ContextMap()[FieldCount])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "took 4ms", entries[2].Message)
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FieldsFromContext(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithRunID(ctx, "run-9")
	ctx = WithComponent(ctx, "server")

	assert.Equal(t, []interface{}{
		FieldRequestID, "req-1",
		FieldRunID, "run-9",
		FieldComponent, "server",
	}, FieldsFromContext(ctx))
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	assert.Same(t, base, FromContext(context.Background(), base))

	ctx := WithRequestID(context.Background(), "abc")
	FromContext(ctx, base).Infow("handled")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()[FieldRequestID])
}

func TestComponentLoggerAndGlyph(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	swapLogger(t, zap.New(core).Sugar())

	WithGlyph(ComponentLogger("translit"), "𓏤").Infow("placeholder used")

	entry := logs.All()[0]
	assert.Equal(t, "translit", entry.LoggerName)
	assert.Equal(t, "𓏤", entry.ContextMap()[FieldGlyph])
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))

	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(9))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{VerbosityUser, OutputResults, true},
		{VerbosityUser, OutputUnsupported, true},
		{VerbosityUser, OutputProgress, false},
		{VerbosityInfo, OutputProgress, true},
		{VerbosityInfo, OutputTiming, false},
		{VerbosityDebug, OutputLongBreakdown, true},
		{VerbosityDebug, OutputSQL, false},
		{VerbosityTrace, OutputSQL, true},
		{VerbosityDebug, OutputCategory(99), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldOutput(tt.verbosity, tt.category),
			"%s at verbosity %d", CategoryName(tt.category), tt.verbosity)
	}
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}
