package outline

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/fontstats"
)

// block builds a one-line text block at baseline y using the same bbox
// construction as the layout adapter.
func block(text string, page int, size float64, w doc.Weight, y float64) doc.TextBlock {
	return doc.TextBlock{
		Text:     text,
		Page:     page,
		FontSize: size,
		Weight:   w,
		BBox:     doc.BBox{X0: 72, Y0: y - size*0.25, X1: 400, Y1: y + size},
	}
}

// prose is a body paragraph line, long enough to vote on the body size.
func prose(page int, y float64) doc.TextBlock {
	text := strings.Repeat("quarterly revenue grew across all segments ", 2)
	return block(strings.TrimSpace(text), page, 11, doc.Regular, y)
}

func classifyDoc(blocks ...doc.TextBlock) ([]doc.Level, fontstats.Profile, *doc.Document) {
	d := &doc.Document{Blocks: blocks, PageHeights: map[int]float64{1: 792, 2: 792}}
	profile := fontstats.Compute(d.Blocks, fontstats.MinProseRunes)
	return Classify(d, profile, DefaultParams()), profile, d
}

func TestClassify_ReportScenario(t *testing.T) {
	levels, profile, _ := classifyDoc(
		block("Annual Report 2024", 1, 24, doc.Regular, 700),
		block("1. Introduction", 1, 16, doc.Bold, 640),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("1.1 Background", 1, 14, doc.Bold, 520),
		prose(1, 480),
	)

	if profile.BodySize != 11 {
		t.Fatalf("BodySize = %v, expected 11", profile.BodySize)
	}
	want := []doc.Level{doc.H1, doc.H1, doc.Body, doc.Body, doc.Body, doc.H2, doc.Body}
	for i, lv := range want {
		if levels[i] != lv {
			t.Errorf("block %d: level %v, expected %v", i, levels[i], lv)
		}
	}
}

func TestClassify_NumberingRefinesBucketDepth(t *testing.T) {
	// A depth-3 section number on a depth-2 font bucket: the numbering is
	// within one level of the bucket, so its depth wins.
	levels, _, _ := classifyDoc(
		block("Methods Overview", 1, 24, doc.Regular, 700),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("3.2.1 Sampling procedure", 1, 16, doc.Bold, 520),
		prose(1, 480),
	)
	if levels[4] != doc.H3 {
		t.Errorf("numbered block classified %v, expected H3", levels[4])
	}
}

func TestClassify_NumberedBodySizeNeedsBold(t *testing.T) {
	// Numbered lines at exactly body size are list items unless bold sets
	// them apart.
	levels, _, _ := classifyDoc(
		block("Contract Overview", 1, 16, doc.Regular, 700),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("4. Terms of delivery", 1, 11, doc.Regular, 520),
		prose(2, 600),
		prose(2, 585),
		prose(2, 570),
		block("5. Payment schedule", 2, 11, doc.Bold, 520),
	)
	if levels[4] != doc.Body {
		t.Errorf("regular numbered list item classified %v, expected BODY", levels[4])
	}
	if levels[8] != doc.H1 {
		t.Errorf("bold numbered heading classified %v, expected H1", levels[8])
	}
}

func TestClassify_BoldEmphasisLandsAtH4(t *testing.T) {
	levels, _, _ := classifyDoc(
		block("Service Agreement", 1, 16, doc.Regular, 700),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("Definitions", 1, 11.2, doc.Bold, 520),
		block("Note", 1, 11, doc.Bold, 470),
	)
	if levels[4] != doc.H4 {
		t.Errorf("bold fractionally-larger line classified %v, expected H4", levels[4])
	}
	if levels[5] != doc.Body {
		t.Errorf("bold line at exactly body size classified %v, expected BODY", levels[5])
	}
}

func TestClassify_NoiseNeverHeads(t *testing.T) {
	levels, _, _ := classifyDoc(
		block("Page 3", 1, 24, doc.Regular, 760),
		block("Overview", 1, 24, doc.Regular, 700),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("12", 1, 24, doc.Regular, 520),
		block("3 / 12", 1, 24, doc.Regular, 470),
		block("https://example.com/report", 1, 24, doc.Regular, 420),
		block("14:30", 1, 24, doc.Regular, 370),
	)
	for _, i := range []int{0, 5, 6, 7, 8} {
		if levels[i] != doc.Body {
			t.Errorf("noise block %d classified %v, expected BODY", i, levels[i])
		}
	}
	if levels[1] != doc.H1 {
		t.Errorf("real heading classified %v, expected H1", levels[1])
	}
}

func TestClassify_IsolationRequired(t *testing.T) {
	// A heading-sized line packed tight against body lines is likely an
	// inline pull quote or dropcap artifact, not a heading.
	levels, _, _ := classifyDoc(
		block("Findings", 1, 16, doc.Regular, 700),
		prose(1, 600),
		prose(1, 585),
		prose(1, 570),
		block("Crammed", 1, 16, doc.Regular, 555),
		prose(1, 540),
	)
	if levels[4] != doc.Body {
		t.Errorf("non-isolated large line classified %v, expected BODY", levels[4])
	}
	if levels[0] != doc.H1 {
		t.Errorf("isolated large line classified %v, expected H1", levels[0])
	}
}

func TestClassify_UniformDocument(t *testing.T) {
	para := strings.Repeat("typewritten paragraph text here ", 2)
	levels, profile, _ := classifyDoc(
		block("Everything is twelve point", 1, 12, doc.Regular, 700),
		block(strings.TrimSpace(para), 1, 12, doc.Regular, 600),
		block("Including this line", 1, 12, doc.Bold, 550),
	)
	if !profile.Uniform {
		t.Fatal("expected a uniform profile")
	}
	for i, lv := range levels {
		if lv != doc.Body {
			t.Errorf("uniform doc block %d classified %v, expected BODY", i, lv)
		}
	}
}
