package repair

// Kind tags the variant of an Outcome.
type Kind string

const (
	// KindUnchanged means the input was already valid JSON and is returned verbatim.
	KindUnchanged Kind = "unchanged"
	// KindRepaired means the pipeline produced text that parses.
	KindRepaired Kind = "repaired"
	// KindFailed means the pipeline output still does not parse.
	KindFailed Kind = "failed"
)

// Outcome is the tagged result of a repair attempt.
//
// Text is set for KindUnchanged and KindRepaired and always parses as JSON.
// OriginalInput, AttemptedFix and Details are set for KindFailed only; AttemptedFix
// is informational and may itself be malformed.
type Outcome struct {
	Kind          Kind   `json:"kind"`
	Text          string `json:"text,omitempty"`
	OriginalInput string `json:"original_input,omitempty"`
	AttemptedFix  string `json:"attempted_fix,omitempty"`
	Details       string `json:"details,omitempty"`
}

func Unchanged(text string) Outcome {
	return Outcome{Kind: KindUnchanged, Text: text}
}

func Repaired(text string) Outcome {
	return Outcome{Kind: KindRepaired, Text: text}
}

func Failed(originalInput, attemptedFix, details string) Outcome {
	return Outcome{
		Kind:          KindFailed,
		OriginalInput: originalInput,
		AttemptedFix:  attemptedFix,
		Details:       details,
	}
}

// OK reports whether the outcome carries valid JSON.
func (o Outcome) OK() bool {
	return o.Kind == KindUnchanged || o.Kind == KindRepaired
}
