package repair

type Config struct {
	// EnvelopeField is the member name of the double-encoding envelope. Empty disables unwrapping.
	EnvelopeField string `conf:"envelope_field" yaml:"envelope_field" json:"envelope_field"`

	// QuoteStrategy is "scanner" (default) or "pattern".
	QuoteStrategy string `conf:"quote_strategy" yaml:"quote_strategy" json:"quote_strategy"`

	// FallbackRepairer gives failed candidates a second chance through jsonrepair.
	FallbackRepairer bool `conf:"fallback_repairer" yaml:"fallback_repairer" json:"fallback_repairer"`
}

func DefaultConfig() Config {
	return Config{
		EnvelopeField: DefaultEnvelopeField,
		QuoteStrategy: string(QuoteStrategyScanner),
	}
}
