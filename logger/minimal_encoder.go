package logger

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette is one console color theme.
type palette struct {
	fg      string
	time    string
	id      string
	number  string
	glyph   string
	network string
	life    string
	comp    []string
	warn    string
	warnBg  string
	err     string
	errBg   string
}

var themes = map[string]palette{
	// Everforest Dark: natural greens
	"everforest": {
		fg:      "\x1b[38;5;223m", // #d3c6aa
		time:    "\x1b[38;5;107m", // #83c092
		id:      "\x1b[38;5;109m", // #7fbbb3
		number:  "\x1b[38;5;108m", // #a7c080
		glyph:   "\x1b[38;5;179m", // #dbbc7f
		network: "\x1b[38;5;107m",
		life:    "\x1b[38;5;65m",
		comp:    []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
		warn:    "\x1b[38;5;179m",
		warnBg:  "\x1b[48;5;58m",
		err:     "\x1b[38;5;167m", // #e67e80
		errBg:   "\x1b[48;5;52m",
	},
	// Gruvbox Dark: warm, muted
	"gruvbox": {
		fg:      "\x1b[38;5;223m", // #ebdbb2
		time:    "\x1b[38;5;108m", // #8ec07c
		id:      "\x1b[38;5;109m", // #83a598
		number:  "\x1b[38;5;175m", // #d3869b
		glyph:   "\x1b[38;5;214m", // #fabd2f
		network: "\x1b[38;5;109m",
		life:    "\x1b[38;5;208m",
		comp:    []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
		warn:    "\x1b[38;5;214m",
		warnBg:  "\x1b[48;5;58m",
		err:     "\x1b[38;5;167m", // #fb4934
		errBg:   "\x1b[48;5;88m",
	},
}

// Current active theme (set from server.log_theme or HIERO_LOG_THEME)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output. Unknown names are
// ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

// Theme returns the active theme name.
func Theme() string {
	return currentTheme
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// Themes lists the known theme names in sorted order.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func colors() palette {
	return themes[currentTheme]
}

func colorComponent(name string) string {
	// Hash for consistent color per component
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	comp := colors().comp
	return comp[hash%len(comp)]
}

func colorMessage(msg string) string {
	p := colors()
	lower := strings.ToLower(msg)
	switch {
	case containsAny(lower, "client", "connected", "websocket", "request"):
		return p.network
	case containsAny(lower, "starting", "started", "listening", "shutdown", "config"):
		return p.life
	default:
		return p.fg
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// colorizeGlyphs highlights runs of Egyptian hieroglyphs inside text drawn
// in base.
func colorizeGlyphs(text, base string) string {
	glyph := colors().glyph
	var b strings.Builder
	in := false
	b.WriteString(base)
	for _, r := range text {
		isGlyph := unicode.Is(unicode.Egyptian_Hieroglyphs, r)
		if isGlyph != in {
			if isGlyph {
				b.WriteString(glyph)
			} else {
				b.WriteString(colorReset + base)
			}
			in = isGlyph
		}
		b.WriteRune(r)
	}
	b.WriteString(colorReset)
	return b.String()
}

// minimalEncoder implements a calm, compact console encoder with theme support.
// Format: "13:04:35  s.http  Request handled  POST /api/convert request_id=..."
//
// Context fields added with Logger.With are kept in the embedded
// MapObjectEncoder and printed before the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

var bufferPool = buffer.NewPool()

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	p := colors()
	final := bufferPool.Get()

	final.AppendString(p.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorizeGlyphs(ent.Message, colorMessage(ent.Message)))

	if values := enc.fieldValues(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for the level name
func levelColorString(level zapcore.Level) string {
	p := colors()
	switch level {
	case zapcore.DebugLevel:
		return p.fg + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + p.warnBg + p.warn + "WARN" + colorReset
	default:
		return colorBold + p.errBg + p.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: server.http -> s.http
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

type kv struct {
	key   string
	value interface{}
}

// fieldValues renders every field as key=value. Context fields come first,
// sorted by key, then the entry's fields in call order. No field is ever
// dropped.
func (enc *minimalEncoder) fieldValues(fields []zapcore.Field) string {
	var pairs []kv

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, kv{k, enc.Fields[k]})
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		if v, ok := m.Fields[f.Key]; ok {
			pairs = append(pairs, kv{f.Key, v})
		}
	}

	if len(pairs) == 0 {
		return ""
	}

	p := colors()
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		val := fmt.Sprintf("%v", pair.value)
		switch pair.key {
		case FieldRequestID, FieldRunID:
			val = p.id + val + colorReset
		case FieldCount, FieldSize, FieldBatchSize, FieldStatus:
			val = p.number + val + colorReset
		case FieldDurationMS:
			val = p.number + val + colorReset + "ms"
		case FieldGlyph:
			val = p.glyph + val + colorReset
		case FieldError:
			val = p.err + val + colorReset
		}
		parts = append(parts, p.fg+pair.key+"="+colorReset+val)
	}
	return strings.Join(parts, " ")
}
