package outline

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/fontstats"
	"github.com/dgallion1/pdfoutline/internal/script"
)

// Assemble consumes per-block level assignments in reading order and
// produces the final outline plus the title. The returned Title may be
// empty when the document offers no candidate at all; callers fall back to
// the filename.
func Assemble(d *doc.Document, levels []doc.Level, profile fontstats.Profile, params Params) doc.Result {
	params = params.withDefaults()

	artifacts := runningArtifacts(d, params.ArtifactPages)

	type candidate struct {
		idx   int
		depth int
	}
	var cands []candidate
	for i, level := range levels {
		if !level.Heading() {
			continue
		}
		if artifacts[artifactKey(d, i)] {
			continue
		}
		cands = append(cands, candidate{idx: i, depth: level.Depth()})
	}

	title, titleIdx := selectTitle(d, levels, profile)

	// Drop the title block (and any entry repeating the title text) from
	// the outline: the title is never listed inside it.
	titleNorm := script.Normalize(strings.ToLower(title))
	filtered := cands[:0]
	for _, c := range cands {
		if c.idx == titleIdx {
			continue
		}
		if titleNorm != "" && script.Normalize(strings.ToLower(d.Blocks[c.idx].Text)) == titleNorm {
			continue
		}
		filtered = append(filtered, c)
	}
	cands = filtered

	// Hierarchy repair. An outline must never reach depth n before depth
	// n-1 has appeared: the first heading anchors at H1 and later entries
	// keep their relative offset, while any remaining jump is reduced to
	// the deepest level whose parents have all been seen.
	var seen [5]bool
	shift := 0
	for i := range cands {
		depth := cands[i].depth - shift
		if i == 0 && depth > 1 {
			shift += depth - 1
			depth = 1
		}
		if depth < 1 {
			depth = 1
		}
		for depth > 1 && !seen[depth-1] {
			depth--
		}
		seen[depth] = true
		cands[i].depth = depth
	}

	entries := make([]doc.OutlineEntry, 0, len(cands))
	for _, c := range cands {
		b := d.Blocks[c.idx]
		entries = append(entries, doc.OutlineEntry{
			Level:    doc.HeadingAt(c.depth).String(),
			Text:     strings.TrimSpace(b.Text),
			Page:     b.Page,
			Language: languageAt(d.Blocks, c.idx),
		})
	}

	return doc.Result{Title: title, Outline: entries}
}

// selectTitle picks the title among page-1 blocks: largest font bucket
// first, then shortest text, then topmost position. If no page-1 block
// qualifies, the first H1 in the document becomes the title (and its index
// is returned so the caller removes it from the outline). Uniform
// documents fall back to the first non-empty page-1 line.
func selectTitle(d *doc.Document, levels []doc.Level, profile fontstats.Profile) (string, int) {
	best := -1
	bestBucket := 0
	for i, b := range d.Blocks {
		if b.Page != 1 {
			if b.Page > 1 {
				break
			}
			continue
		}
		text := strings.TrimSpace(b.Text)
		if text == "" || isNoise(text) {
			continue
		}
		bucket := profile.Bucket(b.FontSize)
		if bucket == 0 {
			continue
		}
		if best == -1 || better(d.Blocks[i], bucket, d.Blocks[best], bestBucket) {
			best = i
			bestBucket = bucket
		}
	}
	if best >= 0 {
		return strings.TrimSpace(d.Blocks[best].Text), best
	}

	// Cover-less document: the first H1 becomes the title.
	for i, level := range levels {
		if level == doc.H1 {
			return strings.TrimSpace(d.Blocks[i].Text), i
		}
	}

	// No headings at all (uniform document): first non-empty page-1 line.
	for i, b := range d.Blocks {
		if b.Page != 1 {
			break
		}
		if text := strings.TrimSpace(b.Text); text != "" && !isNoise(text) {
			return text, i
		}
	}
	return "", -1
}

// better orders title candidates: larger bucket wins (bucket 1 is the
// largest size), then shorter text, then higher on the page.
func better(b doc.TextBlock, bucket int, cur doc.TextBlock, curBucket int) bool {
	if bucket != curBucket {
		return bucket < curBucket
	}
	bn := utf8.RuneCountInString(strings.TrimSpace(b.Text))
	cn := utf8.RuneCountInString(strings.TrimSpace(cur.Text))
	if bn != cn {
		return bn < cn
	}
	return b.BBox.Y1 > cur.BBox.Y1
}

// runningArtifacts finds lines repeating identically on enough pages at
// the same relative position: running headers and footers. The whole
// document must be scanned before any block can be condemned, so this is
// a post-pass, never a streaming decision.
func runningArtifacts(d *doc.Document, minPages int) map[string]bool {
	pages := make(map[string]map[int]bool)
	for i := range d.Blocks {
		key := artifactKey(d, i)
		if key == "" {
			continue
		}
		if pages[key] == nil {
			pages[key] = make(map[int]bool)
		}
		pages[key][d.Blocks[i].Page] = true
	}

	artifacts := make(map[string]bool)
	for key, onPages := range pages {
		if len(onPages) >= minPages {
			artifacts[key] = true
		}
	}
	return artifacts
}

// artifactKey fingerprints a block by its normalized text and coarse
// relative page position, so "Confidential" at the top of every page
// collides across pages while the same word in running prose does not.
func artifactKey(d *doc.Document, i int) string {
	b := d.Blocks[i]
	text := script.Normalize(strings.ToLower(b.Text))
	if text == "" {
		return ""
	}
	pos := b.BBox.Y1
	if h, ok := d.PageHeights[b.Page]; ok && h > 0 {
		// Bin the relative position in twentieths of the page height.
		return text + "|" + posBin(pos/h*20)
	}
	return text + "|" + posBin(pos/36) // absolute half-inch bins
}

func posBin(v float64) string {
	n := int(math.Round(v)) % 26
	if n < 0 {
		n += 26
	}
	return string(rune('a' + n))
}

// languageAt resolves the output language label for block i. A block whose
// script came back Unknown (digits, symbols) inherits the nearest
// preceding block's known script; with no prior context it falls back to
// "latin".
func languageAt(blocks []doc.TextBlock, i int) string {
	for j := i; j >= 0; j-- {
		if label := blocks[j].Script.Label(); label != "" {
			return label
		}
	}
	return "latin"
}
