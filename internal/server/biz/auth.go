package biz

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/samber/lo"

	"github.com/looplj/jsonfixer/internal/log"
)

const defaultKeyName = "default"

type AuthService struct {
	disabled bool
	keys     []APIKey
}

func NewAuthService(config AuthConfig) (*AuthService, error) {
	keys := lo.Filter(config.APIKeys, func(k APIKey, _ int) bool {
		return k.Key != ""
	})

	if config.APIKey != "" {
		keys = append(keys, APIKey{Name: defaultKeyName, Key: config.APIKey})
	}

	keys = lo.Map(keys, func(k APIKey, _ int) APIKey {
		if k.Name == "" {
			k.Name = defaultKeyName
		}

		return k
	})

	if len(lo.UniqBy(keys, func(k APIKey) string { return k.Key })) != len(keys) {
		return nil, errors.New("duplicate api keys configured")
	}

	switch {
	case config.Disabled:
		log.Warn(context.Background(), "api key authentication is disabled")
	case len(keys) == 0:
		log.Warn(context.Background(), "no api keys configured, every repair request will be rejected")
	}

	return &AuthService{
		disabled: config.Disabled,
		keys:     keys,
	}, nil
}

// Disabled reports whether API key checks are turned off.
func (s *AuthService) Disabled() bool {
	return s.disabled
}

// AuthenticateAPIKey returns the name of the configured key matching key.
// Every configured key is compared so the timing does not depend on which one matches.
func (s *AuthService) AuthenticateAPIKey(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidAPIKey
	}

	var name string

	for _, k := range s.keys {
		if subtle.ConstantTimeCompare([]byte(k.Key), []byte(key)) == 1 {
			name = k.Name
		}
	}

	if name == "" {
		log.Debug(ctx, "api key rejected")
		return "", ErrInvalidAPIKey
	}

	return name, nil
}
