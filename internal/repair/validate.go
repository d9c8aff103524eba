package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SyntaxError describes why a candidate is not valid JSON.
// Offset is -1 when the parser did not report a position.
type SyntaxError struct {
	Offset int64
	Line   int
	Column int
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return e.Reason
	}

	return fmt.Sprintf("%s (line %d, column %d, offset %d)", e.Reason, e.Line, e.Column, e.Offset)
}

// Validate strictly parses candidate as a single JSON value of any type.
// A nil result means candidate is accepted verbatim.
func Validate(candidate string) error {
	var raw json.RawMessage

	err := json.Unmarshal([]byte(candidate), &raw)
	if err == nil {
		return nil
	}

	return newSyntaxError(candidate, err)
}

func newSyntaxError(candidate string, err error) *SyntaxError {
	var jsonErr *json.SyntaxError
	if !errors.As(err, &jsonErr) {
		return &SyntaxError{Offset: -1, Reason: err.Error()}
	}

	line, column := position(candidate, jsonErr.Offset)

	return &SyntaxError{
		Offset: jsonErr.Offset,
		Line:   line,
		Column: column,
		Reason: jsonErr.Error(),
	}
}

// position converts a parser offset into the 1-based line and rune column of the
// last byte read, which is the offending one.
func position(text string, offset int64) (int, int) {
	end := min(max(offset-1, 0), int64(len(text)))

	prefix := text[:end]
	line := strings.Count(prefix, "\n") + 1

	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	return line, utf8.RuneCountInString(prefix[lineStart:]) + 1
}
