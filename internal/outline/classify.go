// Package outline turns a document's text blocks into a leveled outline.
// Classification is two-pass by construction: the font profile is computed
// over the whole document first and frozen, then each block is judged
// against it in reading order. A block's level never depends on whether it
// was seen before or after any other block.
package outline

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/fontstats"
	"github.com/dgallion1/pdfoutline/internal/numbering"
	"github.com/dgallion1/pdfoutline/internal/script"
)

// noisePatterns reject lines that can never be headings: bare page
// numbers, "Page 3", "3 / 12", punctuation runs, URLs, clock times.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^page\s+\d+`),
	regexp.MustCompile(`^\d+\s*/\s*\d+$`),
	regexp.MustCompile(`^[^\p{L}\p{N}]*$`),
	regexp.MustCompile(`^https?://`),
	regexp.MustCompile(`^\d{1,2}:\d{2}`),
}

func isNoise(text string) bool {
	text = strings.TrimSpace(text)
	for _, re := range noisePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify assigns a level to every block of the document. The returned
// slice is parallel to d.Blocks. The profile must be the one computed from
// these same blocks; it is only read here.
func Classify(d *doc.Document, profile fontstats.Profile, params Params) []doc.Level {
	params = params.withDefaults()
	levels := make([]doc.Level, len(d.Blocks))
	if len(d.Blocks) == 0 {
		return levels
	}

	// A uniform document has no font signal at all. Everything is body;
	// the assembler falls back to the first page-1 line for the title.
	if profile.Uniform {
		return levels
	}

	gap := typicalLineGap(d.Blocks, profile)

	for i := range d.Blocks {
		levels[i] = classifyBlock(d, i, profile, params, gap)
	}
	return levels
}

// classifyBlock applies the decision rules in priority order. Every path
// ends in a definite level; there is no error case.
func classifyBlock(d *doc.Document, i int, profile fontstats.Profile, params Params, gap float64) doc.Level {
	b := d.Blocks[i]
	text := strings.TrimSpace(b.Text)
	if text == "" || isNoise(text) {
		return doc.Body
	}

	bucket := profile.Bucket(b.FontSize)
	isolated := isIsolated(d.Blocks, i, gap, params.IsolationFactor)
	short := isShort(b, params)
	match := numbering.Find(text)

	// Rule 1: the visual signal is primary. A heading-bucket font on an
	// isolated, short line is a heading at the bucket's level.
	if bucket > 0 && isolated && short {
		level := bucket
		// Numbering corroborates: when its depth differs from the font
		// bucket by at most one level, the numbering depth wins. This is
		// what separates "2." from "2.1" when both share a font bucket.
		if match != nil && match.Depth != bucket {
			if diff := match.Depth - bucket; diff >= -1 && diff <= 1 {
				level = match.Depth
			}
		}
		if level > 4 {
			level = 4
		}
		return doc.HeadingAt(level)
	}

	// Rule 2: numbering refines depth for heading-or-body-sized text, but
	// can never promote text smaller than body to a heading.
	if match != nil && short && isolated && !belowBody(b.FontSize, profile) {
		// Numbered lines at exactly body size are only headings when
		// something else distinguishes them from a numbered list item.
		if profile.AboveBody(b.FontSize) || b.Weight == doc.Bold {
			return doc.HeadingAt(match.Depth)
		}
		return doc.Body
	}

	// Rule 3: an emphasized line — bold, fractionally larger than body,
	// isolated and short — lands at H4.
	if b.Weight == doc.Bold && b.FontSize > profile.BodySize && isolated && short {
		return doc.H4
	}

	return doc.Body
}

// belowBody compares rounded sizes, mirroring the profile's histogram.
func belowBody(size float64, profile fontstats.Profile) bool {
	return !profile.AboveBody(size) && math.Round(size*2)/2 != profile.BodySize
}

// isShort bounds heading length. Scripts without word spacing are measured
// in runes; everything else in words.
func isShort(b doc.TextBlock, params Params) bool {
	switch b.Script {
	case script.Han, script.Kana, script.Thai:
		return utf8.RuneCountInString(strings.TrimSpace(b.Text)) <= params.MaxHeadingRunes
	default:
		return len(strings.Fields(b.Text)) <= params.MaxHeadingWords
	}
}

// typicalLineGap is the mode of vertical distances between consecutive
// body-sized lines, the document's natural line spacing. Gaps larger than
// IsolationFactor times this mark a block as standing apart.
func typicalLineGap(blocks []doc.TextBlock, profile fontstats.Profile) float64 {
	counts := make(map[int]int)
	for i := 1; i < len(blocks); i++ {
		prev, cur := blocks[i-1], blocks[i]
		if prev.Page != cur.Page {
			continue
		}
		if profile.Bucket(prev.FontSize) != 0 || profile.Bucket(cur.FontSize) != 0 {
			continue
		}
		g := int(math.Round(prev.BBox.Y0 - cur.BBox.Y1))
		if g > 0 && g < 100 {
			counts[g]++
		}
	}
	best, bestCount := 0, 0
	for g, c := range counts {
		if c > bestCount || (c == bestCount && g < best) {
			best, bestCount = g, c
		}
	}
	if best == 0 {
		// No measurable body spacing; fall back to body-size leading.
		if profile.BodySize > 0 {
			return profile.BodySize * 0.4
		}
		return 4
	}
	return float64(best)
}

// isIsolated reports whether block i has clear space above and below it
// exceeding the document-relative threshold. Page edges count as clear.
func isIsolated(blocks []doc.TextBlock, i int, gap, factor float64) bool {
	b := blocks[i]
	threshold := gap * factor

	above := true
	if i > 0 && blocks[i-1].Page == b.Page {
		above = blocks[i-1].BBox.Y0-b.BBox.Y1 > threshold
	}
	below := true
	if i+1 < len(blocks) && blocks[i+1].Page == b.Page {
		below = b.BBox.Y0-blocks[i+1].BBox.Y1 > threshold
	}
	return above && below
}
