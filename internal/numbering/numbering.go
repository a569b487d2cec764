// Package numbering recognizes heading-numbering conventions across
// scripts: decimal section numbers, roman numerals, lettered lists, CJK
// ideographic numerals and script-local digit sets. A match is advisory
// only; it refines heading depth but never promotes body text to a heading
// on its own.
package numbering

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the numbering family a prefix matched.
type Kind int

const (
	DecimalDot Kind = iota
	DecimalParen
	RomanUpper
	RomanLower
	LetterUpper
	LetterLower
	ArabicIndic
	DevanagariDigits
	Ideographic
)

func (k Kind) String() string {
	switch k {
	case DecimalDot:
		return "decimal-dot"
	case DecimalParen:
		return "decimal-paren"
	case RomanUpper:
		return "roman-upper"
	case RomanLower:
		return "roman-lower"
	case LetterUpper:
		return "letter-upper"
	case LetterLower:
		return "letter-lower"
	case ArabicIndic:
		return "arabic-indic"
	case DevanagariDigits:
		return "devanagari"
	case Ideographic:
		return "ideographic"
	default:
		return "unknown"
	}
}

// Match is the result of matching a block's leading text against the
// grammar list. Depth counts the numbering segments ("1.2.3" → 3);
// Sequence is the value of the first segment ("IV." → 4, "c)" → 3).
type Match struct {
	Kind     Kind
	Depth    int
	Sequence int
	Prefix   string // the matched numbering text, trailing space trimmed
}

type grammar struct {
	kind Kind
	re   *regexp.Regexp
}

// Ordered: first grammar that matches a prefix wins. Decimal before roman
// before letters, so "1." is decimal and "I." roman rather than a letter.
// All patterns require a trailing delimiter or space so that a bare word
// starting with a capital never matches.
var grammars = []grammar{
	{DecimalDot, regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+`)},
	{DecimalParen, regexp.MustCompile(`^\(?(\d+)\)\s+`)},
	{RomanUpper, regexp.MustCompile(`^([IVXLCDM]+)[.)]\s+`)},
	{RomanLower, regexp.MustCompile(`^([ivxlcdm]+)[.)]\s+`)},
	{LetterUpper, regexp.MustCompile(`^([A-Z])[.)]\s+`)},
	{LetterLower, regexp.MustCompile(`^([a-z])[.)]\s+`)},
	{ArabicIndic, regexp.MustCompile(`^([\x{0660}-\x{0669}]+(?:\.[\x{0660}-\x{0669}]+)*)(?:[.،]\s*|\s+)`)},
	{DevanagariDigits, regexp.MustCompile(`^([\x{0966}-\x{096F}]+(?:\.[\x{0966}-\x{096F}]+)*)(?:\.\s*|\s+)`)},
	// Ideographic numerals carry their own delimiter (、 or a full-width
	// stop) and CJK text has no following space requirement.
	{Ideographic, regexp.MustCompile(`^([一二三四五六七八九十百千]+)[、.．]\s*`)},
}

// Find matches text's whitespace-trimmed prefix against the grammar list
// and returns the first hit, or nil when no grammar matches.
func Find(text string) *Match {
	text = strings.TrimLeft(text, " \t")
	for _, g := range grammars {
		loc := g.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[2]:loc[3]]
		m := &Match{
			Kind:   g.kind,
			Prefix: strings.TrimRight(text[:loc[1]], " \t"),
		}
		switch g.kind {
		case DecimalDot, ArabicIndic, DevanagariDigits:
			segs := strings.Split(body, ".")
			m.Depth = len(segs)
			m.Sequence = digitValue(segs[0])
		case DecimalParen:
			m.Depth = 1
			m.Sequence = digitValue(body)
		case RomanUpper, RomanLower:
			m.Depth = 1
			m.Sequence = romanValue(strings.ToUpper(body))
			if m.Sequence == 0 {
				continue // not a valid roman numeral, try next grammar
			}
		case LetterUpper, LetterLower:
			m.Depth = 1
			c := strings.ToLower(body)[0]
			m.Sequence = int(c-'a') + 1
		case Ideographic:
			m.Depth = 1
			m.Sequence = ideographicValue(body)
		}
		return m
	}
	return nil
}

// digitValue parses one numbering segment in ASCII, Arabic-Indic or
// Devanagari digits.
func digitValue(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	n := 0
	for _, r := range s {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= '٠' && r <= '٩':
			d = int(r - '٠')
		case r >= '०' && r <= '९':
			d = int(r - '०')
		default:
			return 0
		}
		n = n*10 + d
	}
	return n
}

var romanDigits = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// romanValue parses an uppercase roman numeral, 0 if malformed.
func romanValue(s string) int {
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanDigits[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total <= 0 || total > 3999 {
		return 0
	}
	return total
}

var ideographicDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// ideographicValue parses CJK numerals up to the thousands, enough for any
// plausible chapter number.
func ideographicValue(s string) int {
	total := 0
	current := 0
	for _, r := range s {
		switch r {
		case '十':
			if current == 0 {
				current = 1
			}
			total += current * 10
			current = 0
		case '百':
			if current == 0 {
				current = 1
			}
			total += current * 100
			current = 0
		case '千':
			if current == 0 {
				current = 1
			}
			total += current * 1000
			current = 0
		default:
			current = ideographicDigits[r]
		}
	}
	return total + current
}
