package translit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/sym"
)

// Category names the resolution rule that produced a token.
type Category int

const (
	CategoryUnsupported Category = iota
	CategoryLetter
	CategoryPunctuation
	CategoryNumeral
	CategoryWhitespace
)

var categoryNames = map[Category]string{
	CategoryUnsupported: "unsupported",
	CategoryLetter:      "letter",
	CategoryPunctuation: "punctuation",
	CategoryNumeral:     "numeral",
	CategoryWhitespace:  "whitespace",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, errors.Newf("unknown category %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for cat, name := range categoryNames {
		if name == string(text) {
			*c = cat
			return nil
		}
	}
	return errors.Newf("unknown category %q", string(text))
}

type traceEntryJSON struct {
	Char     string   `json:"char"`
	Token    string   `json:"token"`
	Category Category `json:"category"`
}

// MarshalJSON encodes Char as a one-character string.
func (e TraceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceEntryJSON{
		Char:     string(e.Char),
		Token:    e.Token,
		Category: e.Category,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (e *TraceEntry) UnmarshalJSON(data []byte) error {
	var raw traceEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r, size := utf8.DecodeRuneInString(raw.Char)
	if size == 0 || size != len(raw.Char) {
		return errors.Newf("trace char must be exactly one character, got %q", raw.Char)
	}
	e.Char = r
	e.Token = raw.Token
	e.Category = raw.Category
	return nil
}

// Explain renders the entry as one line of a character breakdown, e.g.
//
//	'a' → 𓄿 (Vulture (Aleph))
func (e TraceEntry) Explain() string {
	char := strconv.QuoteRune(e.Char)
	switch e.Category {
	case CategoryLetter:
		return fmt.Sprintf("%s → %s (%s)", char, e.Token, sym.Label(e.Token))
	case CategoryPunctuation:
		return fmt.Sprintf("%s → %s (punctuation)", char, displayToken(e.Token))
	case CategoryNumeral:
		return fmt.Sprintf("%s → %s (Egyptian numeral)", char, e.Token)
	case CategoryWhitespace:
		return "[space] → [space] (word separator)"
	default:
		return fmt.Sprintf("%s → %s (unsupported → stroke placeholder)", char, e.Token)
	}
}

// displayToken makes invisible tokens readable.
func displayToken(token string) string {
	switch token {
	case "":
		return "[removed]"
	case sym.Space:
		return "[space]"
	default:
		return token
	}
}
