// Package layout is the adapter between PDF files and the classification
// core: it turns a page's raw text runs into ordered TextBlock records
// with font metadata. Everything downstream sees only TextBlocks.
package layout

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dgallion1/pdfoutline/internal/doc"
)

// Extraction failure reasons carried by ExtractionError.
const (
	ReasonCorrupt   = "corrupt"
	ReasonEncrypted = "encrypted"
	ReasonNoText    = "no extractable text"
)

// ExtractionError is fatal for one document: the file is unreadable,
// encrypted, or has no extractable text (a pure scanned image). The batch
// boundary catches it, records the filename and moves on.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor supplies ordered TextBlocks per page for one file.
type Extractor interface {
	Extract(path string) (*doc.Document, error)
}

// PDF extracts text blocks with font metadata from PDF files. It reads
// per-run text through ledongthuc/pdf and can optionally fall back to the
// pdftotext binary, which loses font information: fallback blocks come
// back uniform-sized and the core's uniform-document handling applies.
type PDF struct {
	FallbackPdftotext bool

	// fallback overrides the pdftotext invocation in tests.
	fallback func(path string) (*doc.Document, error)
}

// Extract opens the file and returns its blocks in reading order, grouped
// by page. The pdfcpu preflight separates corrupt files from encrypted
// ones before the text pass.
func (p *PDF) Extract(path string) (*doc.Document, error) {
	if n, err := api.PageCountFile(path); err != nil {
		reason := ReasonCorrupt
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			reason = ReasonEncrypted
		}
		return nil, &ExtractionError{Path: path, Reason: reason, Err: err}
	} else if n == 0 {
		return nil, &ExtractionError{Path: path, Reason: ReasonNoText}
	}

	d, err := p.extractRuns(path)
	if err == nil && len(d.Blocks) == 0 {
		// Runs the in-process reader cannot decode count as a failed
		// extraction too, so the fallback gets its chance below.
		err = &ExtractionError{Path: path, Reason: ReasonNoText}
	}
	if err != nil && p.FallbackPdftotext {
		fallback := p.fallback
		if fallback == nil {
			fallback = extractPdftotext
		}
		if fb, fbErr := fallback(path); fbErr == nil {
			return fb, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *PDF) extractRuns(path string) (d *doc.Document, err error) {
	// ledongthuc/pdf panics on malformed content-stream operators instead
	// of returning an error; confine the blast radius to this document.
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = &ExtractionError{Path: path, Reason: ReasonCorrupt, Err: fmt.Errorf("content stream: %v", r)}
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		reason := ReasonCorrupt
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			reason = ReasonEncrypted
		}
		return nil, &ExtractionError{Path: path, Reason: reason, Err: err}
	}
	defer f.Close()

	d = &doc.Document{
		Path:        path,
		PageHeights: make(map[int]float64),
	}

	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		d.PageHeights[pageNum] = pageHeight(page)

		content := page.Content()
		blocks := groupLines(content.Text, pageNum)
		d.Blocks = append(d.Blocks, blocks...)
	}
	return d, nil
}

// pageHeight reads the MediaBox height, walking up the page tree since the
// attribute may be inherited from a parent Pages node.
func pageHeight(page pdflib.Page) float64 {
	v := page.V
	for i := 0; i < 16 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			return box.Index(3).Float64() - box.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return 0
}

// run is one positioned text fragment with font metadata, the unit
// ledongthuc/pdf reports.
type run struct {
	text string
	font string
	size float64
	x, y float64
	w    float64
}

// groupLines assembles raw runs into line-level TextBlocks. Runs sharing a
// baseline (within a size-relative tolerance) form one line; lines are
// ordered top to bottom, runs within a line left to right.
func groupLines(texts []pdflib.Text, page int) []doc.TextBlock {
	runs := make([]run, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		runs = append(runs, run{
			text: t.S,
			font: t.Font,
			size: t.FontSize,
			x:    t.X,
			y:    t.Y,
			w:    t.W,
		})
	}
	if len(runs) == 0 {
		return nil
	}

	// Top of page first (PDF y grows upward), then left to right.
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].y != runs[j].y {
			return runs[i].y > runs[j].y
		}
		return runs[i].x < runs[j].x
	})

	var blocks []doc.TextBlock
	var line []run
	flush := func() {
		if b, ok := buildBlock(line, page); ok {
			blocks = append(blocks, b)
		}
		line = line[:0]
	}

	for _, r := range runs {
		if len(line) > 0 {
			tol := line[0].size * 0.4
			if tol < 2 {
				tol = 2
			}
			if line[0].y-r.y > tol {
				flush()
			}
		}
		line = append(line, r)
	}
	flush()
	return blocks
}

// buildBlock merges one line's runs into a TextBlock. The block's font
// size is the size covering the most characters on the line; the weight is
// bold when bold runs carry the majority of characters.
func buildBlock(line []run, page int) (doc.TextBlock, bool) {
	if len(line) == 0 {
		return doc.TextBlock{}, false
	}
	sort.SliceStable(line, func(i, j int) bool { return line[i].x < line[j].x })

	var sb strings.Builder
	sizeChars := make(map[float64]int)
	boldChars, totalChars := 0, 0
	x0, x1 := line[0].x, line[0].x
	yBase := line[0].y
	maxSize := 0.0

	var prev *run
	for i := range line {
		r := &line[i]
		// PDF content streams frequently omit space glyphs; a horizontal
		// gap wider than a third of the font size is a word break.
		if prev != nil {
			gap := r.x - (prev.x + prev.w)
			if gap > r.size*0.3 && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(r.text)

		n := len(r.text)
		sizeChars[r.size] += n
		totalChars += n
		if boldFont(r.font) {
			boldChars += n
		}
		if r.x < x0 {
			x0 = r.x
		}
		if end := r.x + r.w; end > x1 {
			x1 = end
		}
		if r.size > maxSize {
			maxSize = r.size
		}
		prev = r
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return doc.TextBlock{}, false
	}

	size := 0.0
	best := 0
	for s, n := range sizeChars {
		if n > best || (n == best && s > size) {
			size, best = s, n
		}
	}
	if size <= 0 {
		size = maxSize
	}

	weight := doc.Regular
	if totalChars > 0 && boldChars*2 > totalChars {
		weight = doc.Bold
	}

	return doc.TextBlock{
		Text:     text,
		Page:     page,
		FontSize: size,
		Weight:   weight,
		BBox: doc.BBox{
			X0: x0,
			Y0: yBase - size*0.25,
			X1: x1,
			Y1: yBase + size,
		},
	}, true
}

// boldFont guesses weight from the font's base name; PDF fonts advertise
// weight only through names like "Helvetica-Bold" or "NotoSans-Black".
func boldFont(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "bold") ||
		strings.Contains(name, "black") ||
		strings.Contains(name, "heavy") ||
		strings.Contains(name, "semib")
}
