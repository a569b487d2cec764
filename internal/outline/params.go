package outline

// Params are the heuristic tuning constants of the classifier. They are
// deliberate defaults calibrated by hand, not environment configuration:
// the core stays a pure function of its inputs.
type Params struct {
	// MinProseRunes is the minimum block length, in runes, for a block to
	// vote on the document's body font size.
	MinProseRunes int

	// MaxHeadingWords bounds heading length for scripts that separate
	// words with spaces.
	MaxHeadingWords int

	// MaxHeadingRunes bounds heading length for scripts without word
	// spacing (CJK, Thai).
	MaxHeadingRunes int

	// IsolationFactor is the multiple of the document's typical line gap
	// a block must clear above and below to count as isolated.
	IsolationFactor float64

	// ArtifactPages is how many pages a line must repeat on, at the same
	// relative position, before it is dropped as a running header/footer.
	ArtifactPages int
}

// DefaultParams returns the tuning constants used in production.
func DefaultParams() Params {
	return Params{
		MinProseRunes:   25,
		MaxHeadingWords: 20,
		MaxHeadingRunes: 48,
		IsolationFactor: 1.5,
		ArtifactPages:   3,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MinProseRunes <= 0 {
		p.MinProseRunes = d.MinProseRunes
	}
	if p.MaxHeadingWords <= 0 {
		p.MaxHeadingWords = d.MaxHeadingWords
	}
	if p.MaxHeadingRunes <= 0 {
		p.MaxHeadingRunes = d.MaxHeadingRunes
	}
	if p.IsolationFactor <= 0 {
		p.IsolationFactor = d.IsolationFactor
	}
	if p.ArtifactPages <= 0 {
		p.ArtifactPages = d.ArtifactPages
	}
	return p
}
