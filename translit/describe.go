package translit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/teranos/hiero/sym"
)

// AlphabetEntry is one row of the alphabet reference.
type AlphabetEntry struct {
	Letter   string `json:"letter"`
	Glyph    string `json:"glyph"`
	Gardiner string `json:"gardiner,omitempty"`
	Label    string `json:"label"`
}

func alphabetEntry(char rune, glyph string) AlphabetEntry {
	e := AlphabetEntry{Letter: string(char), Glyph: glyph, Label: sym.Label(glyph)}
	if sign, ok := sym.Describe(glyph); ok {
		e.Gardiner = sign.Gardiner
	}
	return e
}

// DescribeCharacter explains how a single character converts. Input that is
// not exactly one character yields a diagnostic sentence, never an error.
func DescribeCharacter(char string) string {
	if utf8.RuneCountInString(char) != 1 {
		return "Please provide a single character"
	}

	// strings.ToLower maps rune for rune, so the count is unchanged.
	r, _ := utf8.DecodeRuneInString(strings.ToLower(char))
	quoted := strconv.QuoteRune(r)

	token, cat := Resolve(r)
	switch cat {
	case CategoryLetter:
		return fmt.Sprintf("%s → %s (%s) - Egyptian hieroglyphic letter", quoted, token, sym.Label(token))
	case CategoryPunctuation:
		if token == "" {
			return fmt.Sprintf("%s → [removed] (special character/punctuation, dropped from output)", quoted)
		}
		return fmt.Sprintf("%s → %s (special character/punctuation)", quoted, displayToken(token))
	case CategoryNumeral:
		return fmt.Sprintf("%s → %s (%s) - Egyptian numeral", quoted, token, sym.Label(token))
	case CategoryWhitespace:
		return fmt.Sprintf("%s → [space] (word separator)", quoted)
	default:
		return fmt.Sprintf("%s is not supported and will be replaced with %s (stroke placeholder)", quoted, sym.Placeholder)
	}
}

// AlphabetReference maps each letter to "glyph (label)".
// Callers that need a stable order should use Alphabet.
func AlphabetReference() map[string]string {
	letters := sym.Letters()
	ref := make(map[string]string, len(letters))
	for _, l := range letters {
		glyph, _ := sym.Letter(l)
		ref[string(l)] = fmt.Sprintf("%s (%s)", glyph, sym.Label(glyph))
	}
	return ref
}

// Alphabet lists the letter table in alphabetical order.
func Alphabet() []AlphabetEntry {
	letters := sym.Letters()
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	entries := make([]AlphabetEntry, 0, len(letters))
	for _, l := range letters {
		glyph, _ := sym.Letter(l)
		entries = append(entries, alphabetEntry(l, glyph))
	}
	return entries
}

// Numerals lists the digit table from 0 to 9.
func Numerals() []AlphabetEntry {
	digits := sym.Digits()
	sort.Slice(digits, func(i, j int) bool { return digits[i] < digits[j] })

	entries := make([]AlphabetEntry, 0, len(digits))
	for _, d := range digits {
		glyph, _ := sym.Digit(d)
		entries = append(entries, alphabetEntry(d, glyph))
	}
	return entries
}
