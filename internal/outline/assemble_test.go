package outline

import (
	"testing"

	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/fontstats"
	"github.com/dgallion1/pdfoutline/internal/script"
)

func assembleDoc(blocks []doc.TextBlock, levels []doc.Level) doc.Result {
	heights := make(map[int]float64)
	for _, b := range blocks {
		heights[b.Page] = 792
	}
	d := &doc.Document{Blocks: blocks, PageHeights: heights}
	profile := fontstats.Compute(blocks, fontstats.MinProseRunes)
	return Assemble(d, levels, profile, DefaultParams())
}

func TestAssemble_RunningArtifactsExcluded(t *testing.T) {
	blocks := []doc.TextBlock{
		block("Quarterly Review", 1, 24, doc.Regular, 700),
		block("1. Overview", 1, 16, doc.Bold, 640),
		prose(1, 600),
		block("Confidential", 2, 9, doc.Regular, 760),
		prose(2, 600),
		block("Confidential", 3, 9, doc.Regular, 760),
		prose(3, 600),
		block("Confidential", 4, 9, doc.Regular, 760),
		prose(4, 600),
	}
	levels := []doc.Level{
		doc.H1, doc.H1, doc.Body,
		doc.H4, doc.Body, doc.H4, doc.Body, doc.H4, doc.Body,
	}

	res := assembleDoc(blocks, levels)

	if res.Title != "Quarterly Review" {
		t.Errorf("Title = %q, expected %q", res.Title, "Quarterly Review")
	}
	if len(res.Outline) != 1 {
		t.Fatalf("outline has %d entries, expected 1: %+v", len(res.Outline), res.Outline)
	}
	if res.Outline[0].Text != "1. Overview" || res.Outline[0].Level != "H1" {
		t.Errorf("unexpected entry %+v", res.Outline[0])
	}
	for _, e := range res.Outline {
		if e.Text == "Confidential" {
			t.Error("running footer leaked into the outline")
		}
	}
}

func TestAssemble_HierarchyRepair(t *testing.T) {
	// An excerpt starting mid-document: first heading is H3, then H4, then
	// an H2. The outline must never reach depth n before n-1 appeared.
	blocks := []doc.TextBlock{
		block("2.1.1 Detail", 2, 14, doc.Bold, 700),
		prose(2, 650),
		block("2.1.1.1 Finer point", 2, 12, doc.Bold, 600),
		prose(2, 550),
		block("2.2 Broader topic", 2, 16, doc.Bold, 500),
	}
	levels := []doc.Level{doc.H3, doc.Body, doc.H4, doc.Body, doc.H2}

	res := assembleDoc(blocks, levels)

	if res.Title != "" {
		t.Errorf("Title = %q, expected empty for a coverless excerpt", res.Title)
	}
	got := make([]string, len(res.Outline))
	for i, e := range res.Outline {
		got[i] = e.Level
	}
	want := []string{"H1", "H2", "H1"}
	if len(got) != len(want) {
		t.Fatalf("outline levels %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outline levels %v, expected %v", got, want)
		}
	}
}

func TestAssemble_TitleNotRepeatedInOutline(t *testing.T) {
	blocks := []doc.TextBlock{
		block("Annual Report 2024", 1, 24, doc.Regular, 700),
		prose(1, 600),
		block("1. Introduction", 1, 16, doc.Bold, 520),
		block("Annual Report 2024", 3, 16, doc.Regular, 760),
	}
	levels := []doc.Level{doc.H1, doc.Body, doc.H1, doc.H1}

	res := assembleDoc(blocks, levels)

	if res.Title != "Annual Report 2024" {
		t.Fatalf("Title = %q", res.Title)
	}
	if len(res.Outline) != 1 || res.Outline[0].Text != "1. Introduction" {
		t.Errorf("outline = %+v, expected only the introduction", res.Outline)
	}
}

func TestAssemble_UniformFallsBackToFirstLine(t *testing.T) {
	para := "plain typewritten memorandum text with a single font size"
	blocks := []doc.TextBlock{
		block("3", 1, 12, doc.Regular, 760),
		block("MEMORANDUM", 1, 12, doc.Regular, 700),
		block(para, 1, 12, doc.Regular, 650),
	}
	levels := []doc.Level{doc.Body, doc.Body, doc.Body}

	res := assembleDoc(blocks, levels)

	if res.Title != "MEMORANDUM" {
		t.Errorf("Title = %q, expected first non-noise line", res.Title)
	}
	if len(res.Outline) != 0 {
		t.Errorf("uniform document produced outline entries: %+v", res.Outline)
	}
	if res.Outline == nil {
		t.Error("outline must be an empty slice, not nil, for JSON output")
	}
}

func TestAssemble_LanguageInheritance(t *testing.T) {
	ru := block("Введение в систему и общая постановка задачи", 1, 11, doc.Regular, 700)
	ru.Script = script.Cyrillic
	num := block("2.1", 2, 16, doc.Bold, 640)
	num.Script = script.Unknown

	res := assembleDoc([]doc.TextBlock{ru, num}, []doc.Level{doc.Body, doc.H2})

	if len(res.Outline) != 1 {
		t.Fatalf("outline = %+v, expected one entry", res.Outline)
	}
	if res.Outline[0].Language != "cyrillic" {
		t.Errorf("Language = %q, expected inherited %q", res.Outline[0].Language, "cyrillic")
	}
}

func TestAssemble_LanguageDefaultsToLatin(t *testing.T) {
	a := block("1.2", 2, 16, doc.Regular, 700)
	b := block("3.4", 2, 14, doc.Regular, 640)

	res := assembleDoc([]doc.TextBlock{a, b}, []doc.Level{doc.H1, doc.H2})

	if len(res.Outline) != 1 {
		t.Fatalf("outline = %+v, expected one entry after title removal", res.Outline)
	}
	if res.Outline[0].Language != "latin" {
		t.Errorf("Language = %q, expected fallback %q", res.Outline[0].Language, "latin")
	}
}
