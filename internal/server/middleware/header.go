package middleware

import (
	"errors"
	"net/http"
	"strings"
)

// APIKeyConfig controls where the API key is looked up.
type APIKeyConfig struct {
	// Headers are checked in order; the first non-empty one wins.
	Headers []string
	// AllowedPrefixes are stripped from the header value, e.g. "Bearer ".
	AllowedPrefixes []string
}

var DefaultAPIKeyConfig = &APIKeyConfig{
	Headers:         []string{"X-API-Key"},
	AllowedPrefixes: []string{"Bearer ", "Token "},
}

var (
	ErrAPIKeyMissing = errors.New("API key not found in any of the supported headers")
	ErrAPIKeyEmpty   = errors.New("API key is required")
)

// NewAPIKeyConfig returns the default config with headers replaced when given.
func NewAPIKeyConfig(headers []string) *APIKeyConfig {
	if len(headers) == 0 {
		return DefaultAPIKeyConfig
	}

	return &APIKeyConfig{
		Headers:         headers,
		AllowedPrefixes: DefaultAPIKeyConfig.AllowedPrefixes,
	}
}

// ExtractAPIKeyFromRequest returns the API key carried by r. Header names are case-insensitive.
func ExtractAPIKeyFromRequest(r *http.Request, config *APIKeyConfig) (string, error) {
	if config == nil {
		config = DefaultAPIKeyConfig
	}

	var lastError error

	for _, headerName := range config.Headers {
		value := r.Header.Get(headerName)
		if value == "" {
			continue
		}

		for _, prefix := range config.AllowedPrefixes {
			if strings.HasPrefix(value, prefix) {
				value = strings.TrimPrefix(value, prefix)
				break
			}
		}

		value = strings.TrimSpace(value)
		if value == "" {
			lastError = ErrAPIKeyEmpty
			continue
		}

		return value, nil
	}

	if lastError != nil {
		return "", lastError
	}

	return "", ErrAPIKeyMissing
}
