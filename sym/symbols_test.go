package sym

import (
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestLetterTableCoversAlphabet(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		if _, ok := Letter(r); !ok {
			t.Errorf("letter table missing %q", r)
		}
	}
	if got := len(Letters()); got != 26 {
		t.Errorf("Letters() has %d entries, want 26", got)
	}
}

func TestLetterTableIsLowercaseOnly(t *testing.T) {
	for r := 'A'; r <= 'Z'; r++ {
		if _, ok := Letter(r); ok {
			t.Errorf("letter table has uppercase key %q", r)
		}
	}
}

func TestLettersAreAlphabetical(t *testing.T) {
	letters := Letters()
	for i := 1; i < len(letters); i++ {
		if letters[i-1] >= letters[i] {
			t.Errorf("Letters() out of order at %d: %q before %q", i, letters[i-1], letters[i])
		}
	}
}

func TestSharedLetterSigns(t *testing.T) {
	groups := [][]rune{
		{'c', 'k', 'x'},
		{'o', 'u', 'w'},
		{'f', 'v'},
		{'e', 'i'},
		{'a', 'q'},
	}
	for _, group := range groups {
		first, _ := Letter(group[0])
		for _, r := range group[1:] {
			if got, _ := Letter(r); got != first {
				t.Errorf("Letter(%q) = %q, want %q shared with %q", r, got, first, group[0])
			}
		}
	}
}

func TestDigitTableIsDistinct(t *testing.T) {
	seen := make(map[string]rune)
	for _, d := range Digits() {
		glyph, ok := Digit(d)
		if !ok {
			t.Fatalf("Digit(%q) missing", d)
		}
		if prev, dup := seen[glyph]; dup {
			t.Errorf("digits %q and %q share sign %q", prev, d, glyph)
		}
		seen[glyph] = d
	}
	if len(seen) != 10 {
		t.Errorf("digit table has %d signs, want 10", len(seen))
	}
}

func TestPunctuationDeletesQuotes(t *testing.T) {
	for _, r := range []rune{'\'', '"'} {
		glyph, ok := Punctuation(r)
		if !ok {
			t.Errorf("Punctuation(%q) missing", r)
			continue
		}
		if glyph != "" {
			t.Errorf("Punctuation(%q) = %q, want empty token", r, glyph)
		}
	}
}

func TestPunctuationSeparatorsUseStroke(t *testing.T) {
	for _, r := range ".,!?:;-" {
		if got, _ := Punctuation(r); got != Stroke {
			t.Errorf("Punctuation(%q) = %q, want stroke", r, got)
		}
	}
	if got, _ := Punctuation(' '); got != Space {
		t.Errorf("Punctuation(' ') = %q, want space", got)
	}
}

func TestTableKeysAreDisjoint(t *testing.T) {
	for _, r := range PunctuationMarks() {
		if _, ok := Letter(r); ok {
			t.Errorf("%q is both a letter and punctuation", r)
		}
		if _, ok := Digit(r); ok {
			t.Errorf("%q is both a digit and punctuation", r)
		}
	}
	for _, r := range Digits() {
		if _, ok := Letter(r); ok {
			t.Errorf("%q is both a letter and a digit", r)
		}
	}
}

func TestEveryTableValueIsDescribed(t *testing.T) {
	check := func(table string, keys []rune, lookup func(rune) (string, bool)) {
		for _, r := range keys {
			glyph, _ := lookup(r)
			if glyph == "" {
				continue
			}
			if _, ok := Describe(glyph); !ok {
				t.Errorf("%s table value %q for %q has no description", table, glyph, r)
			}
		}
	}
	check("letter", Letters(), Letter)
	check("punctuation", PunctuationMarks(), Punctuation)
	check("digit", Digits(), Digit)

	if _, ok := Describe(Placeholder); !ok {
		t.Error("placeholder has no description")
	}
}

func TestNoDuplicateSigns(t *testing.T) {
	seen := make(map[string]string, len(signs))
	for _, s := range signs {
		if prev, ok := seen[s.Glyph]; ok {
			t.Errorf("sign %q described twice: %q and %q", s.Glyph, prev, s.Label)
		}
		seen[s.Glyph] = s.Label
	}
}

func TestSignsAreSingleHieroglyphs(t *testing.T) {
	for _, s := range signs {
		if s.Glyph == Space {
			continue
		}
		if !utf8.ValidString(s.Glyph) {
			t.Errorf("sign %q is not valid UTF-8", s.Label)
		}
		if n := utf8.RuneCountInString(s.Glyph); n != 1 {
			t.Errorf("sign %q has %d code points, want 1", s.Label, n)
		}
		r, _ := utf8.DecodeRuneInString(s.Glyph)
		if !unicode.Is(unicode.Egyptian_Hieroglyphs, r) {
			t.Errorf("sign %q (%U) is outside the Egyptian Hieroglyphs block", s.Label, r)
		}
	}
}

func TestLabelFallback(t *testing.T) {
	if got := Label(Vulture); got != "Vulture (Aleph)" {
		t.Errorf("Label(Vulture) = %q", got)
	}
	if got := Label("x"); got != "Unknown symbol" {
		t.Errorf("Label(x) = %q, want Unknown symbol", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	letters := Letters()
	letters[0] = '!'
	if Letters()[0] != 'a' {
		t.Error("Letters() exposed the backing slice")
	}
}
