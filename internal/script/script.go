package script

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Family is a Unicode-range grouping of characters, used as a proxy for
// language when true language identification is unavailable.
type Family int

const (
	Unknown Family = iota
	Han
	Kana
	Hangul
	Cyrillic
	Arabic
	Devanagari
	Hebrew
	Thai
	Latin
)

// Label returns the fixed script-family string used in output. Unknown has
// no label of its own; callers resolve it from context before emitting.
func (f Family) Label() string {
	switch f {
	case Han:
		return "cjk"
	case Kana:
		return "japanese"
	case Hangul:
		return "korean"
	case Cyrillic:
		return "cyrillic"
	case Arabic:
		return "arabic"
	case Devanagari:
		return "devanagari"
	case Hebrew:
		return "hebrew"
	case Thai:
		return "thai"
	case Latin:
		return "latin"
	default:
		return ""
	}
}

// ranges maps each family to its Unicode range tables. Kana is listed
// before Han so the tie-break order favors it: Japanese text mixes kanji
// with kana, and any kana at all marks the block as Japanese.
var ranges = []struct {
	family Family
	tables []*unicode.RangeTable
}{
	{Kana, []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}},
	{Han, []*unicode.RangeTable{unicode.Han}},
	{Hangul, []*unicode.RangeTable{unicode.Hangul}},
	{Cyrillic, []*unicode.RangeTable{unicode.Cyrillic}},
	{Arabic, []*unicode.RangeTable{unicode.Arabic}},
	{Devanagari, []*unicode.RangeTable{unicode.Devanagari}},
	{Hebrew, []*unicode.RangeTable{unicode.Hebrew}},
	{Thai, []*unicode.RangeTable{unicode.Thai}},
	// Latin last: digits and punctuation are script-neutral, and a block
	// of mostly CJK with a few Latin letters must not resolve to Latin.
	{Latin, []*unicode.RangeTable{unicode.Latin}},
}

// Detect returns the dominant script family of text by counting each
// character's range membership. Ties break by the fixed order above (Latin
// last). Strings with no alphabetic characters return Unknown. Pure
// function: same input, same answer.
func Detect(text string) Family {
	counts := make(map[Family]int, len(ranges))
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, entry := range ranges {
			if unicode.IsOneOf(entry.tables, r) {
				counts[entry.family]++
				break
			}
		}
	}

	best := Unknown
	bestCount := 0
	for _, entry := range ranges {
		if c := counts[entry.family]; c > bestCount {
			best = entry.family
			bestCount = c
		}
	}

	// Any kana present marks the block Japanese even when kanji dominate
	// by count; kanji alone reads as Chinese.
	if best == Han && counts[Kana] > 0 {
		return Kana
	}
	return best
}

// isZeroWidth reports characters that carry no visual width but break
// naive string comparison: ZWSP..RLM, word joiner, BOM.
func isZeroWidth(r rune) bool {
	return (r >= '\u200b' && r <= '\u200f') || r == '\u2060' || r == '\ufeff'
}

// Normalize applies NFC normalization, removes zero-width characters and
// collapses runs of whitespace, so that the same visible text always
// compares equal regardless of how the PDF encoded it.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.Map(func(r rune) rune {
		if isZeroWidth(r) {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
