package repair

import (
	"strings"

	"github.com/looplj/jsonfixer/internal/pkg/xjson"
)

// Stage is a single text transformation of the repair pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Pipeline applies its stages in order. It holds no mutable state and is safe for
// concurrent use.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(strategy QuoteStrategy) *Pipeline {
	quotes := Stage{Name: "interior_quotes", Apply: escapeInteriorQuotes}
	if strategy == QuoteStrategyPattern {
		quotes = Stage{Name: "interior_quotes_pattern", Apply: escapeInteriorQuotesPattern}
	}

	return &Pipeline{
		stages: []Stage{
			{Name: "de_escape", Apply: deEscape},
			{Name: "typography", Apply: normalizeTypography},
			quotes,
			{Name: "control_characters", Apply: escapeControlCharacters},
			{Name: "trim", Apply: strings.TrimSpace},
			{Name: "boundary", Apply: extractBoundary},
		},
	}
}

func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, st := range p.stages {
		names = append(names, st.Name)
	}

	return names
}

// Run transforms text into the most plausible JSON candidate.
// Blank text short-circuits to an empty object.
func (p *Pipeline) Run(text string) string {
	if strings.TrimSpace(text) == "" {
		return string(xjson.EmptyJSON)
	}

	for _, st := range p.stages {
		text = st.Apply(text)
	}

	return text
}

// deEscapeReplacer collapses sequences escaped one level too many.
var deEscapeReplacer = strings.NewReplacer(
	`\\"`, `\"`,
	`\\n`, "\n",
	`\\r`, "\r",
	`\\t`, "\t",
)

func deEscape(text string) string {
	return deEscapeReplacer.Replace(text)
}

var typographyReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

func normalizeTypography(text string) string {
	return typographyReplacer.Replace(text)
}

// escapeControlCharacters turns literal LF and CR not preceded by a backslash in the
// stage input into their two character escapes. It works on bytes so invalid UTF-8
// passes through untouched.
func escapeControlCharacters(text string) string {
	if !strings.ContainsAny(text, "\n\r") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if (c == '\n' || c == '\r') && (i == 0 || text[i-1] != '\\') {
			b.WriteByte('\\')

			if c == '\n' {
				b.WriteByte('n')
			} else {
				b.WriteByte('r')
			}

			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// extractBoundary slices text to the outermost {...} or [...] span, dropping
// surrounding prose. Text without an opener, or whose last closer precedes the
// first opener, is returned unchanged.
func extractBoundary(text string) string {
	start := firstIndex(strings.IndexByte(text, '{'), strings.IndexByte(text, '['))
	if start == -1 {
		return text
	}

	end := max(strings.LastIndexByte(text, '}'), strings.LastIndexByte(text, ']'))

	if start > 0 || (end != -1 && end < len(text)-1) {
		if end == -1 || start > end {
			return text
		}

		return text[start : end+1]
	}

	return text
}

func firstIndex(a, b int) int {
	switch {
	case a == -1:
		return b
	case b == -1:
		return a
	default:
		return min(a, b)
	}
}
