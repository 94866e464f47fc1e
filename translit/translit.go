// Package translit converts English text to Egyptian hieroglyphs one
// character at a time.
//
// Every input character is resolved independently, in this fixed order:
//
//  1. letter table      (a–z)
//  2. punctuation table (space, separators, quotes; quotes resolve to "")
//  3. digit table       (0–9)
//  4. any other Unicode whitespace, which becomes a single space
//  5. the placeholder stroke
//
// Earlier tables win on any key overlap. Input is lowercased with
// strings.ToLower before resolution; no other normalisation is applied.
//
// All operations are pure functions over the read-only tables in package
// sym and are safe for concurrent use.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/sym"
)

// TraceEntry records how one input character was converted.
type TraceEntry struct {
	Char     rune
	Token    string
	Category Category
}

// Converter runs conversions and logs what it had to replace.
// The zero value is not usable; use New.
type Converter struct {
	logger *zap.SugaredLogger
}

// New creates a Converter. A nil logger disables logging.
func New(l *zap.SugaredLogger) *Converter {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Converter{logger: l}
}

// std backs the package-level functions.
var std = New(nil)

// Resolve maps a single lowercased character to its output token and the
// category of the rule that matched.
func Resolve(r rune) (string, Category) {
	if g, ok := sym.Letter(r); ok {
		return g, CategoryLetter
	}
	if g, ok := sym.Punctuation(r); ok {
		return g, CategoryPunctuation
	}
	if g, ok := sym.Digit(r); ok {
		return g, CategoryNumeral
	}
	if unicode.IsSpace(r) {
		return sym.Space, CategoryWhitespace
	}
	return sym.Placeholder, CategoryUnsupported
}

// Convert converts text to hieroglyphs. Text that is empty after trimming
// surrounding whitespace converts to "", even if it contained spaces.
func Convert(text string) string {
	return std.Convert(text)
}

// ConvertWithTrace converts text and returns one trace entry per character
// of the lowercased input.
func ConvertWithTrace(text string) (string, []TraceEntry) {
	return std.ConvertWithTrace(text)
}

// Convert converts text to hieroglyphs.
func (c *Converter) Convert(text string) string {
	out, _ := c.run(text, false)
	return out
}

// ConvertWithTrace converts text and records how each character resolved.
// The concatenated trace tokens always equal the returned string.
func (c *Converter) ConvertWithTrace(text string) (string, []TraceEntry) {
	out, trace := c.run(text, true)
	if trace == nil {
		trace = []TraceEntry{}
	}
	return out, trace
}

func (c *Converter) run(text string, withTrace bool) (string, []TraceEntry) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered) * utf8.UTFMax)

	var trace []TraceEntry
	if withTrace {
		trace = make([]TraceEntry, 0, utf8.RuneCountInString(lowered))
	}

	replaced := 0
	for _, r := range lowered {
		token, cat := Resolve(r)
		b.WriteString(token)
		if cat == CategoryUnsupported {
			replaced++
		}
		if withTrace {
			trace = append(trace, TraceEntry{Char: r, Token: token, Category: cat})
		}
	}

	if replaced > 0 {
		logger.WithGlyph(c.logger, sym.Placeholder).Debugw("Replaced unsupported characters",
			logger.FieldCount, replaced,
			logger.FieldSize, len(text))
	}

	return b.String(), trace
}

// Tokens concatenates the tokens of a trace.
func Tokens(trace []TraceEntry) string {
	var b strings.Builder
	for _, e := range trace {
		b.WriteString(e.Token)
	}
	return b.String()
}
