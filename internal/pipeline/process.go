// Package pipeline runs the per-document extraction pipeline and the batch
// orchestration around it. Each document is a single sequential two-pass
// job: layout extraction and font aggregation first, then classification
// and assembly against the frozen profile. Documents share nothing, so the
// batch layer parallelizes freely across them.
package pipeline

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/fontstats"
	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/script"
)

// Processor runs the full pipeline for one file. It is stateless between
// calls: every Process builds and discards its own Document.
type Processor struct {
	Extractor layout.Extractor
	Params    outline.Params
	Log       *slog.Logger
}

// Process extracts, classifies and assembles one PDF. Extraction failures
// return a *layout.ExtractionError; every other degradation (empty
// document, unknown scripts) resolves to a usable Result.
func (p *Processor) Process(path string) (doc.Result, error) {
	log := p.Log.With("file", filepath.Base(path))

	d, err := p.Extractor.Extract(path)
	if err != nil {
		return doc.Result{}, err
	}

	for i := range d.Blocks {
		d.Blocks[i].Script = script.Detect(d.Blocks[i].Text)
	}
	if len(d.Blocks) > 0 && d.Blocks[0].Script == script.Unknown {
		log.Debug("leading block has no detectable script, language defaults to latin")
	}

	profile := fontstats.Compute(d.Blocks, p.Params.MinProseRunes)
	levels := outline.Classify(d, profile, p.Params)
	result := outline.Assemble(d, levels, profile, p.Params)

	if result.Title == "" {
		// Document produced no usable title candidate; fall back to the
		// cleaned filename so the output is still identifiable.
		result.Title = TitleFromFilename(path)
		log.Warn("no title candidate, using filename", "title", result.Title)
	}
	if result.Outline == nil {
		result.Outline = []doc.OutlineEntry{}
	}

	log.Info("document processed",
		"blocks", len(d.Blocks),
		"headings", len(result.Outline),
		"body_size", profile.BodySize,
	)
	return result, nil
}

var (
	msWordPrefix = regexp.MustCompile(`(?i)^microsoft\s+word\s*-\s*`)
	titleCaser   = cases.Title(language.Und)
)

// TitleFromFilename cleans a file name into a presentable fallback title:
// strips the "Microsoft Word -" export prefix, turns separators into
// spaces, and title-cases names that carry no casing of their own.
func TitleFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = msWordPrefix.ReplaceAllString(name, "")
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Document"
	}
	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		name = titleCaser.String(strings.ToLower(name))
	}
	return name
}
