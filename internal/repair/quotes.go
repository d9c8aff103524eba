package repair

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// QuoteStrategy selects how interior double quotes are detected.
type QuoteStrategy string

const (
	// QuoteStrategyScanner tracks string state explicitly and escapes a quote inside
	// a string unless the next non-whitespace character can follow a closing quote.
	QuoteStrategyScanner QuoteStrategy = "scanner"
	// QuoteStrategyPattern applies the lookaround heuristic. It also escapes the
	// opening quote of every string that starts with a non-structural character,
	// so it only suits inputs made of bare scalars or empty strings.
	QuoteStrategyPattern QuoteStrategy = "pattern"
)

func ParseQuoteStrategy(s string) (QuoteStrategy, error) {
	switch QuoteStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", QuoteStrategyScanner:
		return QuoteStrategyScanner, nil
	case QuoteStrategyPattern:
		return QuoteStrategyPattern, nil
	default:
		return "", fmt.Errorf("unknown quote strategy: %q", s)
	}
}

type scanState int

const (
	stateOutside scanState = iota
	stateInString
	stateInStringEscape
)

// escapeInteriorQuotes escapes quotes that sit inside a string value.
// Structural characters are ASCII, so scanning bytes is safe for UTF-8 text.
func escapeInteriorQuotes(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	state := stateOutside

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch state {
		case stateOutside:
			if c == '"' {
				state = stateInString
			}
		case stateInString:
			switch c {
			case '\\':
				state = stateInStringEscape
			case '"':
				if closesString(text, i+1) {
					state = stateOutside
				} else {
					b.WriteByte('\\')
				}
			}
		case stateInStringEscape:
			state = stateInString
		}

		b.WriteByte(c)
	}

	return b.String()
}

// closesString reports whether a quote followed by text[from:] ends a string.
func closesString(text string, from int) bool {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}

	return true
}

// interiorQuotePattern matches, in one pass over the original text:
//   - a quote not preceded by a backslash whose next character is not whitespace, ',', ':', '}' or ']';
//   - a quote whose previous character is not whitespace, ',', ':', '{', '[' or a backslash
//     and which is followed by optional whitespace and ',', '}' or ']'.
var interiorQuotePattern = regexp2.MustCompile(
	`(?<!\\)"(?=[^\s:,}\]])|(?<=[^\s:,{\[\\])"(?=\s*[,}\]])`,
	regexp2.None,
)

func escapeInteriorQuotesPattern(text string) string {
	out, err := interiorQuotePattern.Replace(text, `\"`, -1, -1)
	if err != nil {
		return text
	}

	return out
}
