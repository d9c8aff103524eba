package biz

// AuthConfig configures API key gating of the repair endpoint.
type AuthConfig struct {
	// Disabled turns API key checks off. Only meant for local use.
	Disabled bool `conf:"disabled" yaml:"disabled" json:"disabled"`

	// APIKey is a single unnamed key, convenient to set from the environment.
	APIKey string `conf:"api_key" yaml:"api_key" json:"api_key"`

	APIKeys []APIKey `conf:"api_keys" yaml:"api_keys" json:"api_keys"`

	// Headers lists the request headers searched for the key, in order.
	Headers []string `conf:"headers" yaml:"headers" json:"headers"`
}

type APIKey struct {
	Name string `conf:"name" yaml:"name" json:"name"`
	Key  string `conf:"key" yaml:"key" json:"key"`
}

// StatsConfig configures the periodic repair statistics log.
type StatsConfig struct {
	// Cron is the schedule of the summary log line; empty disables it.
	Cron string `conf:"cron" yaml:"cron" json:"cron"`
}
