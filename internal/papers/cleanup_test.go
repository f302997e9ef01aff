package papers

import "testing"

func TestCleanTextMathTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`resistance \alpha is high`, "resistance α is high"},
		{`\sum of squares`, "Σ of squares"},
		{`a \le b \ge c`, "a ≤ b ≥ c"},
		{`x^2 + y^3`, "x² + y³"},
		{`\( E = mc^2 \)`, "E = mc²"},
		{`f \rightarrow g`, "f → g"},
		{`5 \times 3 \div 2`, "5 × 3 ÷ 2"},
	}

	for _, tt := range tests {
		got, err := CleanText(tt.in)
		if err != nil {
			t.Fatalf("CleanText(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTextTableArtifacts(t *testing.T) {
	in := "| Header A | Header B |\n|---|---|\n| val 1 | val 2 |"
	got, err := CleanText(in)
	if err != nil {
		t.Fatalf("CleanText error: %v", err)
	}
	want := "Header A Header B\n\nval 1 val 2"
	if got != want {
		t.Errorf("CleanText(table) = %q, want %q", got, want)
	}
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got, err := CleanText("a    b\t\tc\n\n\n\n\nd   ")
	if err != nil {
		t.Fatalf("CleanText error: %v", err)
	}
	if got != "a b c\n\nd" {
		t.Errorf("CleanText = %q, want %q", got, "a b c\n\nd")
	}
}

// Re-cleaning already-clean text must be a no-op: the loader may run over
// the same paper any number of times.
func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		`resistance \alpha with | table | cells |`,
		"plain text, nothing to do",
		`\sqrt{x^2}   collapsed`,
	}

	for _, in := range inputs {
		once, err := CleanText(in)
		if err != nil {
			t.Fatalf("CleanText(%q) error: %v", in, err)
		}
		twice, err := CleanText(once)
		if err != nil {
			t.Fatalf("CleanText(clean) error: %v", err)
		}
		if once != twice {
			t.Errorf("CleanText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
