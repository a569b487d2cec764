package doc

import "github.com/dgallion1/pdfoutline/internal/script"

// Weight is the coarse boldness of a text block.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// BBox is a block's bounding box in page coordinates,
// origin at the bottom-left as PDF defines it.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// TextBlock is one visually contiguous line on a page, as produced by the
// layout adapter in reading order.
type TextBlock struct {
	Text     string
	Page     int // 1-based
	FontSize float64
	Weight   Weight
	BBox     BBox
	Script   script.Family
}

// Level is a structural classification of a block. Body is zero so the
// zero value of a classification is "not a heading".
type Level int

const (
	Body Level = iota
	Title
	H1
	H2
	H3
	H4
)

// Heading reports whether the level is one of H1..H4.
func (l Level) Heading() bool { return l >= H1 && l <= H4 }

// Depth returns the numeric depth of a heading level (H1 → 1). Title and
// Body have no depth and return 0.
func (l Level) Depth() int {
	if !l.Heading() {
		return 0
	}
	return int(l - H1 + 1)
}

// HeadingAt returns the heading level for depth n, clamped to H1..H4.
func HeadingAt(n int) Level {
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	return H1 + Level(n-1)
}

func (l Level) String() string {
	switch l {
	case Title:
		return "TITLE"
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	default:
		return "BODY"
	}
}

// OutlineEntry is one row of the final outline. Language is a script-family
// label such as "latin" or "cjk", not an ISO language code: the system
// detects script, not language.
type OutlineEntry struct {
	Level    string `json:"level"`
	Text     string `json:"text"`
	Page     int    `json:"page"`
	Language string `json:"language"`
}

// Result is the JSON projection of a processed document. The title is never
// repeated inside the outline.
type Result struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// Document owns one input file's blocks and derived outline. It is built in
// a single pass per file and discarded after its Result is written; nothing
// persists across documents.
type Document struct {
	Path   string
	Blocks []TextBlock

	PageHeights map[int]float64 // page index → media box height
}
