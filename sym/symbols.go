// Package sym defines the Egyptian hieroglyph signs used by hiero and the
// static tables that map English characters onto them.
//
// Signs are drawn from the Unicode Egyptian Hieroglyphs block and named after
// Gardiner's sign list. The tables are a simplified uniliteral alphabet:
// several English letters deliberately share a sign (c/k/x, o/u/w, f/v, e/i,
// a/q) because ancient Egyptian had no separate sound for them.
//
// All tables are built once in init and never mutated afterwards, so they can
// be read from any number of goroutines without locking.
package sym

// TableVersion identifies the content of the tables below. Bump the minor
// version when a sign is added and the major version when an existing
// character is remapped.
const TableVersion = "1.0.0"

// Uniliteral signs used by the letter table.
const (
	Vulture     = "\U0001313F" // G1: aleph
	Foot        = "\U000130C0" // D58: b
	Basket      = "\U000133A1" // V31: k
	Hand        = "\U000130A7" // D46: d
	Reed        = "\U000131CB" // M17: i
	HornedViper = "\U00013191" // I9: f
	JarStand    = "\U000133BC" // W11: g
	Shelter     = "\U00013254" // O4: h
	PalmRib     = "\U000131B3" // M4: stands in for j
	Lion        = "\U000130ED" // E23: rw, used for l
	Owl         = "\U00013153" // G17: m
	WaterRipple = "\U00013216" // N35: n
	QuailChick  = "\U00013171" // G43: w
	Stool       = "\U000132AA" // Q3: p
	Mouth       = "\U0001308B" // D21: r
	FoldedCloth = "\U000132F4" // S29: s
	BreadLoaf   = "\U000133CF" // X1: t
	DoubleReed  = "\U000131CC" // M17a: y
	DoorBolt    = "\U00013283" // O34: z
)

// Separator signs.
const (
	Stroke = "\U000133E4" // Z1: sentence and clause separator
	Space  = " "          // word separator, passed through unchanged
)

// Placeholder is emitted for every character no table recognises.
const Placeholder = Stroke

// Numeral signs. Only single digits are modelled; multi-digit numbers are
// written digit by digit.
const (
	CoilOfRope   = "\U00013362" // V1: stands in for zero
	OneStroke    = "\U000133FA" // Z15
	TwoStrokes   = "\U000133FB" // Z15a
	ThreeStrokes = "\U000133FC" // Z15b
	FourStrokes  = "\U000133FD" // Z15c
	FiveStrokes  = "\U000133FE" // Z15d
	SixStrokes   = "\U000133FF" // Z15e
	SevenStrokes = "\U00013400" // Z15f
	EightStrokes = "\U00013401" // Z15g
	NineStrokes  = "\U00013402" // Z15h
)

// Sign describes one output symbol.
type Sign struct {
	Glyph    string `json:"glyph"`
	Gardiner string `json:"gardiner,omitempty"`
	Label    string `json:"label"`
}

// signs is the description table. Every non-empty value of the letter,
// punctuation and digit tables has exactly one entry here.
var signs = []Sign{
	{Vulture, "G1", "Vulture (Aleph)"},
	{Foot, "D58", "Foot/Leg"},
	{Basket, "V31", "Basket"},
	{Hand, "D46", "Hand"},
	{Reed, "M17", "Reed"},
	{HornedViper, "I9", "Horned Viper"},
	{JarStand, "W11", "Jar Stand"},
	{Shelter, "O4", "Shelter/House"},
	{PalmRib, "M4", "Palm Rib"},
	{Lion, "E23", "Lion"},
	{Owl, "G17", "Owl"},
	{WaterRipple, "N35", "Water Ripple"},
	{QuailChick, "G43", "Quail Chick"},
	{Stool, "Q3", "Stool"},
	{Mouth, "D21", "Mouth"},
	{FoldedCloth, "S29", "Folded Cloth"},
	{BreadLoaf, "X1", "Bread Loaf"},
	{DoubleReed, "M17a", "Double Reed"},
	{DoorBolt, "O34", "Door Bolt"},
	{Stroke, "Z1", "Stroke (separator)"},
	{Space, "", "Space (word separator)"},
	{CoilOfRope, "V1", "Coil of Rope (zero)"},
	{OneStroke, "Z15", "One Stroke"},
	{TwoStrokes, "Z15a", "Two Strokes"},
	{ThreeStrokes, "Z15b", "Three Strokes"},
	{FourStrokes, "Z15c", "Four Strokes"},
	{FiveStrokes, "Z15d", "Five Strokes"},
	{SixStrokes, "Z15e", "Six Strokes"},
	{SevenStrokes, "Z15f", "Seven Strokes"},
	{EightStrokes, "Z15g", "Eight Strokes"},
	{NineStrokes, "Z15h", "Nine Strokes"},
}

// mapping binds one input character to its output token.
type mapping struct {
	char  rune
	glyph string
}

var letterRegistry = []mapping{
	{'a', Vulture},
	{'b', Foot},
	{'c', Basket},
	{'d', Hand},
	{'e', Reed},
	{'f', HornedViper},
	{'g', JarStand},
	{'h', Shelter},
	{'i', Reed},
	{'j', PalmRib},
	{'k', Basket},
	{'l', Lion},
	{'m', Owl},
	{'n', WaterRipple},
	{'o', QuailChick},
	{'p', Stool},
	{'q', Vulture}, // no ancient equivalent
	{'r', Mouth},
	{'s', FoldedCloth},
	{'t', BreadLoaf},
	{'u', QuailChick},
	{'v', HornedViper},
	{'w', QuailChick},
	{'x', Basket},
	{'y', DoubleReed},
	{'z', DoorBolt},
}

// Apostrophes and quotes have no place in hieroglyphic text and are dropped.
var punctuationRegistry = []mapping{
	{' ', Space},
	{'.', Stroke},
	{',', Stroke},
	{'!', Stroke},
	{'?', Stroke},
	{':', Stroke},
	{';', Stroke},
	{'-', Stroke},
	{'\'', ""},
	{'"', ""},
}

var digitRegistry = []mapping{
	{'0', CoilOfRope},
	{'1', OneStroke},
	{'2', TwoStrokes},
	{'3', ThreeStrokes},
	{'4', FourStrokes},
	{'5', FiveStrokes},
	{'6', SixStrokes},
	{'7', SevenStrokes},
	{'8', EightStrokes},
	{'9', NineStrokes},
}

// Lookup tables built from the registries at init time.
var (
	letters     map[rune]string
	punctuation map[rune]string
	digits      map[rune]string
	glyphToSign map[string]Sign
	letterOrder []rune
	punctOrder  []rune
	digitOrder  []rune
)

func init() {
	letters, letterOrder = buildTable(letterRegistry)
	punctuation, punctOrder = buildTable(punctuationRegistry)
	digits, digitOrder = buildTable(digitRegistry)

	glyphToSign = make(map[string]Sign, len(signs))
	for _, s := range signs {
		glyphToSign[s.Glyph] = s
	}
}

func buildTable(registry []mapping) (map[rune]string, []rune) {
	table := make(map[rune]string, len(registry))
	order := make([]rune, 0, len(registry))
	for _, m := range registry {
		table[m.char] = m.glyph
		order = append(order, m.char)
	}
	return table, order
}

// Letter returns the sign for a lowercase letter.
func Letter(r rune) (string, bool) {
	g, ok := letters[r]
	return g, ok
}

// Punctuation returns the token for a punctuation mark. The token may be
// empty: the mark is deleted from the output.
func Punctuation(r rune) (string, bool) {
	g, ok := punctuation[r]
	return g, ok
}

// Digit returns the numeral sign for an ASCII digit.
func Digit(r rune) (string, bool) {
	g, ok := digits[r]
	return g, ok
}

// Describe returns the sign metadata for an output glyph.
func Describe(glyph string) (Sign, bool) {
	s, ok := glyphToSign[glyph]
	return s, ok
}

// Label returns the human-readable label for a glyph, or "Unknown symbol".
func Label(glyph string) string {
	if s, ok := glyphToSign[glyph]; ok {
		return s.Label
	}
	return "Unknown symbol"
}

// Letters returns the letter table keys in alphabetical order.
func Letters() []rune {
	return append([]rune(nil), letterOrder...)
}

// PunctuationMarks returns the punctuation table keys in registry order.
func PunctuationMarks() []rune {
	return append([]rune(nil), punctOrder...)
}

// Digits returns '0' through '9'.
func Digits() []rune {
	return append([]rune(nil), digitOrder...)
}
