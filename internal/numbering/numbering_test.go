package numbering

import "testing"

func TestFind_DecimalDepths(t *testing.T) {
	tests := []struct {
		text  string
		depth int
		seq   int
	}{
		{"1. Introduction", 1, 1},
		{"2 Background", 1, 2},
		{"1.2 Methods", 2, 1},
		{"3.2.1 Sampling", 3, 3},
		{"10.4.2.7 Appendix detail", 4, 10},
	}
	for _, tt := range tests {
		m := Find(tt.text)
		if m == nil {
			t.Errorf("Find(%q) = nil", tt.text)
			continue
		}
		if m.Kind != DecimalDot {
			t.Errorf("Find(%q).Kind = %v, expected decimal-dot", tt.text, m.Kind)
		}
		if m.Depth != tt.depth || m.Sequence != tt.seq {
			t.Errorf("Find(%q) = depth %d seq %d, expected depth %d seq %d",
				tt.text, m.Depth, m.Sequence, tt.depth, tt.seq)
		}
	}
}

func TestFind_DecimalParen(t *testing.T) {
	for _, text := range []string{"(3) Results", "4) Discussion"} {
		m := Find(text)
		if m == nil || m.Kind != DecimalParen || m.Depth != 1 {
			t.Errorf("Find(%q) = %+v, expected depth-1 decimal-paren", text, m)
		}
	}
}

func TestFind_Roman(t *testing.T) {
	m := Find("IV. Experiments")
	if m == nil || m.Kind != RomanUpper || m.Sequence != 4 {
		t.Fatalf("Find(IV.) = %+v, expected roman-upper seq 4", m)
	}
	m = Find("xii) Notes")
	if m == nil || m.Kind != RomanLower || m.Sequence != 12 {
		t.Fatalf("Find(xii)) = %+v, expected roman-lower seq 12", m)
	}
	if m.Depth != 1 {
		t.Errorf("roman numbering is always depth 1, got %d", m.Depth)
	}
}

func TestFind_Letters(t *testing.T) {
	m := Find("C. Related work")
	if m == nil || m.Kind != LetterUpper || m.Sequence != 3 {
		t.Fatalf("Find(C.) = %+v, expected letter-upper seq 3", m)
	}
	m = Find("b) alternative")
	if m == nil || m.Kind != LetterLower || m.Sequence != 2 {
		t.Fatalf("Find(b)) = %+v, expected letter-lower seq 2", m)
	}
}

func TestFind_DecimalBeforeRomanBeforeLetter(t *testing.T) {
	// "1." must be decimal, "I." roman, and only leftovers are letters.
	if m := Find("1. Scope"); m == nil || m.Kind != DecimalDot {
		t.Errorf("1. should match decimal-dot, got %+v", m)
	}
	if m := Find("I. Scope"); m == nil || m.Kind != RomanUpper {
		t.Errorf("I. should match roman-upper, got %+v", m)
	}
	if m := Find("F. Scope"); m == nil || m.Kind != LetterUpper {
		t.Errorf("F. should match letter-upper, got %+v", m)
	}
}

func TestFind_ArabicIndic(t *testing.T) {
	m := Find("١.٢ الخلفية")
	if m == nil {
		t.Fatal("Arabic-Indic section number did not match")
	}
	if m.Kind != ArabicIndic || m.Depth != 2 || m.Sequence != 1 {
		t.Fatalf("got %+v, expected arabic-indic depth 2 seq 1", m)
	}
	m = Find("٣. المقدمة")
	if m == nil || m.Depth != 1 || m.Sequence != 3 {
		t.Fatalf("got %+v, expected arabic-indic depth 1 seq 3", m)
	}
}

func TestFind_DevanagariDigits(t *testing.T) {
	m := Find("१.२ पृष्ठभूमि")
	if m == nil {
		t.Fatal("Devanagari section number did not match")
	}
	if m.Kind != DevanagariDigits || m.Depth != 2 || m.Sequence != 1 {
		t.Fatalf("got %+v, expected devanagari depth 2 seq 1", m)
	}
}

func TestFind_Ideographic(t *testing.T) {
	tests := []struct {
		text string
		seq  int
	}{
		{"一、序論", 1},
		{"三、背景", 3},
		{"十二、付録", 12},
		{"二十一、注釈", 21},
	}
	for _, tt := range tests {
		m := Find(tt.text)
		if m == nil {
			t.Errorf("Find(%q) = nil", tt.text)
			continue
		}
		if m.Kind != Ideographic || m.Depth != 1 || m.Sequence != tt.seq {
			t.Errorf("Find(%q) = %+v, expected ideographic seq %d", tt.text, m, tt.seq)
		}
	}
}

func TestFind_NoMatch(t *testing.T) {
	for _, text := range []string{
		"Introduction",
		"The 3 pillars",
		"VII",           // bare numeral, no delimiter and no following text
		"MMMM. Absurd",  // roman value out of range
		"1.Introduction", // glued, no space after the dot
	} {
		if m := Find(text); m != nil {
			t.Errorf("Find(%q) = %+v, expected no match", text, m)
		}
	}
}

func TestFind_PrefixTrimmed(t *testing.T) {
	m := Find("2.3 Evaluation setup")
	if m == nil {
		t.Fatal("expected match")
	}
	if m.Prefix != "2.3" {
		t.Errorf("Prefix = %q, expected %q", m.Prefix, "2.3")
	}
}

func TestRomanValue(t *testing.T) {
	tests := map[string]int{
		"I": 1, "IV": 4, "IX": 9, "XIV": 14, "XL": 40,
		"MCMXCIV": 1994, "IIII": 4, "VV": 10,
	}
	for s, want := range tests {
		if got := romanValue(s); got != want {
			t.Errorf("romanValue(%q) = %d, expected %d", s, got, want)
		}
	}
	if romanValue("ABC") != 0 {
		t.Error("non-roman input should parse to 0")
	}
}
