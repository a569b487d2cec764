package layout

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/doc"
)

// Synthetic geometry for fallback blocks. pdftotext reports no font
// metadata, so every line comes back at the same nominal size and the
// core's uniform-document handling takes over.
const (
	fallbackPageHeight = 792 // US Letter in points
	fallbackFontSize   = 12
	fallbackLeading    = 14
)

// extractPdftotext shells out to pdftotext as a last resort when the
// in-process extractor fails on a file it cannot parse.
func extractPdftotext(path string) (*doc.Document, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	d := &doc.Document{
		Path:        path,
		PageHeights: make(map[int]float64),
	}

	for pageIdx, pageText := range strings.Split(string(out), "\f") {
		page := pageIdx + 1
		d.PageHeights[page] = fallbackPageHeight
		y := fallbackPageHeight - 72.0
		for _, line := range strings.Split(pageText, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				y -= fallbackLeading
				continue
			}
			d.Blocks = append(d.Blocks, doc.TextBlock{
				Text:     line,
				Page:     page,
				FontSize: fallbackFontSize,
				Weight:   doc.Regular,
				BBox: doc.BBox{
					X0: 72,
					Y0: y - fallbackFontSize*0.25,
					X1: 540,
					Y1: y + fallbackFontSize,
				},
			})
			y -= fallbackLeading
		}
	}

	if len(d.Blocks) == 0 {
		return nil, &ExtractionError{Path: path, Reason: ReasonNoText}
	}
	return d, nil
}
