package repair

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Repairer runs the validate-first repair flow. It is stateless after construction
// and safe for concurrent use.
type Repairer struct {
	pipeline      *Pipeline
	strategy      QuoteStrategy
	envelopeField string
	fallback      bool
}

func New(config Config) (*Repairer, error) {
	strategy, err := ParseQuoteStrategy(config.QuoteStrategy)
	if err != nil {
		return nil, err
	}

	return &Repairer{
		pipeline:      NewPipeline(strategy),
		strategy:      strategy,
		envelopeField: config.EnvelopeField,
		fallback:      config.FallbackRepairer,
	}, nil
}

func (r *Repairer) Strategy() QuoteStrategy {
	return r.strategy
}

// Fingerprint identifies the settings that influence an outcome, for cache keys.
func (r *Repairer) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%t", r.envelopeField, r.strategy, r.fallback)
}

// Repair coerces raw into valid JSON.
//
// Valid input is returned as Unchanged, except for a valid envelope whose payload is a
// JSON object or array that is valid or can be repaired, which is returned as Repaired. Invalid input is
// unwrapped when possible, run through the pipeline and validated. Any panic raised by
// a stage is reported as Failed.
func (r *Repairer) Repair(raw string) (outcome Outcome) {
	attempted := raw

	defer func() {
		if p := recover(); p != nil {
			outcome = Failed(raw, attempted, fmt.Sprintf("internal error during JSON repair: %v", p))
		}
	}()

	rawErr := Validate(raw)
	working, unwrapped := Unwrap(raw, r.envelopeField)

	if rawErr == nil {
		if !unwrapped || !isContainer(working) {
			return Unchanged(raw)
		}

		if Validate(working) == nil {
			return Repaired(working)
		}

		// A damaged payload inside a valid envelope is repaired when possible, but the
		// valid envelope itself is never reported as a failure.
		attempted = r.pipeline.Run(working)
		if Validate(attempted) == nil {
			return Repaired(attempted)
		}

		return Unchanged(raw)
	}

	attempted = r.pipeline.Run(working)

	err := Validate(attempted)
	if err == nil {
		return Repaired(attempted)
	}

	if r.fallback {
		if fixed, ok := secondChance(working); ok {
			return Repaired(fixed)
		}
	}

	return Failed(raw, attempted, err.Error())
}

func secondChance(text string) (string, bool) {
	fixed, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return "", false
	}

	if Validate(fixed) != nil {
		return "", false
	}

	return fixed, true
}

func isContainer(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[")
}
