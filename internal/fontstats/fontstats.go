// Package fontstats derives document-relative font size thresholds. All
// heading decisions are made against the document's own body size, never
// against absolute point values, so a 10pt slide deck and a 14pt report
// classify the same way.
package fontstats

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/doc"
)

// Profile is the document-scoped font size distribution, computed once
// after the layout pass and immutable afterwards. The classifier only
// reads it, so the second pass needs no locking.
type Profile struct {
	BodySize float64
	Uniform  bool // fewer than 2 distinct sizes in the document

	// buckets maps a rounded size strictly greater than BodySize to its
	// heading depth 1..4 (larger size → smaller depth).
	buckets map[float64]int
}

// MinProseRunes is the default minimum rune count for a block to vote on
// the body size. Short isolated strings (captions, labels, page numbers)
// would otherwise skew the mode.
const MinProseRunes = 25

// roundSize quantizes a font size to half-point steps. Extractors report
// sizes like 11.98 and 12.02 for the same nominal font.
func roundSize(size float64) float64 {
	return math.Round(size*2) / 2
}

// Compute builds the Profile from all blocks of a document. The histogram
// is weighted by character count at each size, not block count, so one
// long body paragraph outweighs many short captions.
func Compute(blocks []doc.TextBlock, minProseRunes int) Profile {
	if minProseRunes <= 0 {
		minProseRunes = MinProseRunes
	}

	weight := make(map[float64]int)      // all blocks
	proseWeight := make(map[float64]int) // prose-length blocks only
	for _, b := range blocks {
		n := utf8.RuneCountInString(b.Text)
		if n == 0 || b.FontSize <= 0 {
			continue
		}
		size := roundSize(b.FontSize)
		weight[size] += n
		if n >= minProseRunes {
			proseWeight[size] += n
		}
	}

	p := Profile{buckets: make(map[float64]int)}
	if len(weight) == 0 {
		p.Uniform = true
		return p
	}

	// Body size: histogram mode among prose-length blocks; if nothing is
	// prose-length, fall back to the mode over everything.
	votes := proseWeight
	if len(votes) == 0 {
		votes = weight
	}
	p.BodySize = mode(votes)

	if len(weight) < 2 {
		p.Uniform = true
		return p
	}

	// Every distinct size strictly above body, descending, maps to depths
	// 1..4. Additional smaller heading sizes collapse into depth 4, which
	// keeps the mapping monotonic: a larger size never maps deeper.
	var larger []float64
	for size := range weight {
		if size > p.BodySize {
			larger = append(larger, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(larger)))
	for i, size := range larger {
		depth := i + 1
		if depth > 4 {
			depth = 4
		}
		p.buckets[size] = depth
	}
	return p
}

// mode returns the key with the largest weight; ties resolve to the larger
// size so repeated runs stay deterministic.
func mode(m map[float64]int) float64 {
	var best float64
	bestW := -1
	for size, w := range m {
		if w > bestW || (w == bestW && size > best) {
			best = size
			bestW = w
		}
	}
	return best
}

// Bucket returns the heading depth 1..4 for a font size, or 0 if the size
// is at or below body text.
func (p Profile) Bucket(size float64) int {
	return p.buckets[roundSize(size)]
}

// AboveBody reports whether size exceeds the document's body size.
func (p Profile) AboveBody(size float64) bool {
	return roundSize(size) > p.BodySize
}
