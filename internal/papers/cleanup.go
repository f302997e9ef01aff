package papers

import (
	"fmt"
	"regexp"
	"strings"
)

// Text cleanup for question and answer bodies. The paper files are converted
// from PDF dumps and carry markdown-table debris and raw LaTeX math tokens;
// every transform here is idempotent so re-cleaning an already-clean paper
// changes nothing.

var (
	tableRuleRe   = regexp.MustCompile(`(?m)^\s*\|?[\s:|-]+\|[\s:|-]*$`)
	edgePipeRe    = regexp.MustCompile(`(?m)^\s*\|\s*|\s*\|\s*$`)
	innerPipeRe   = regexp.MustCompile(`\s*\|\s*`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	newlineRunRe  = regexp.MustCompile(`\n{3,}`)
	mathDelimRe   = regexp.MustCompile(`\\[()\[\]]|\$\$?`)
	supDigitRe    = regexp.MustCompile(`\^(\d)`)
)

// mathTokens maps the small set of LaTeX-style tokens that appear in the
// source papers to Unicode equivalents. Longer tokens first so e.g.
// \leftarrow is never half-replaced by \le.
var mathTokens = []struct{ from, to string }{
	{`\rightarrow`, "→"},
	{`\leftarrow`, "←"},
	{`\degree`, "°"},
	{`\lambda`, "λ"},
	{`\infty`, "∞"},
	{`\omega`, "ω"},
	{`\times`, "×"},
	{`\theta`, "θ"},
	{`\alpha`, "α"},
	{`\delta`, "δ"},
	{`\sigma`, "σ"},
	{`\sqrt`, "√"},
	{`\beta`, "β"},
	{`\gamma`, "γ"},
	{`\div`, "÷"},
	{`\sum`, "Σ"},
	{`\neq`, "≠"},
	{`\leq`, "≤"},
	{`\geq`, "≥"},
	{`\le`, "≤"},
	{`\ge`, "≥"},
	{`\ne`, "≠"},
	{`\pm`, "±"},
	{`\mu`, "μ"},
	{`\pi`, "π"},
}

var supDigits = map[string]string{
	"0": "⁰", "1": "¹", "2": "²", "3": "³", "4": "⁴",
	"5": "⁵", "6": "⁶", "7": "⁷", "8": "⁸", "9": "⁹",
}

// CleanText runs the full cleanup pipeline on one text field. A failure is
// reported rather than panicking up through the loader, so one bad question
// never aborts a whole paper.
func CleanText(s string) (cleaned string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup: %v", r)
		}
	}()

	s = stripTableArtifacts(s)
	s = normalizeMathTokens(s)
	s = collapseWhitespace(s)
	return s, nil
}

// stripTableArtifacts removes markdown table rule lines and converts cell
// separators left over from PDF table extraction into plain spacing.
func stripTableArtifacts(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	s = tableRuleRe.ReplaceAllString(s, "")
	s = edgePipeRe.ReplaceAllString(s, "")
	s = innerPipeRe.ReplaceAllString(s, "  ")
	return s
}

func normalizeMathTokens(s string) string {
	if !strings.ContainsAny(s, `\^$`) {
		return s
	}
	s = mathDelimRe.ReplaceAllString(s, "")
	for _, t := range mathTokens {
		s = strings.ReplaceAll(s, t.from, t.to)
	}
	s = supDigitRe.ReplaceAllStringFunc(s, func(m string) string {
		return supDigits[m[1:]]
	})
	return s
}

func collapseWhitespace(s string) string {
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
