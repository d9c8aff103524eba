package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/metrics"
	"github.com/looplj/jsonfixer/internal/pkg/xcache"
	"github.com/looplj/jsonfixer/internal/repair"
	"github.com/looplj/jsonfixer/internal/server"
	"github.com/looplj/jsonfixer/internal/server/biz"
)

const (
	EnvPrefix = "JSONFIXER"

	// ConfigFileEnv points at an explicit config file and skips the search paths.
	ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"
)

type Config struct {
	fx.Out `conf:"-" yaml:"-" json:"-"`

	APIServer server.Config   `conf:"server" yaml:"server" json:"server"`
	Log       log.Config      `conf:"log" yaml:"log" json:"log"`
	Auth      biz.AuthConfig  `conf:"auth" yaml:"auth" json:"auth"`
	Repair    repair.Config   `conf:"repair" yaml:"repair" json:"repair"`
	Stats     biz.StatsConfig `conf:"stats" yaml:"stats" json:"stats"`
	Cache     xcache.Config   `conf:"cache" yaml:"cache" json:"cache"`
	Metrics   metrics.Config  `conf:"metrics" yaml:"metrics" json:"metrics"`
}

// Load reads config.yml from the working directory, ./conf or /etc/jsonfixer, then applies
// JSONFIXER_* environment overrides. A missing config file is not an error.
func Load() (Config, error) {
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile is Load with an explicit config file; an empty path searches the default locations.
func LoadFile(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}

	var config Config

	err = v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return config, nil
}

// Get returns the raw value of a dotted key, e.g. "server.port".
func Get(key string) (any, error) {
	v, err := newViper(os.Getenv(ConfigFileEnv))
	if err != nil {
		return nil, err
	}

	if !v.IsSet(key) {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}

	return v.Get(key), nil
}

func newViper(path string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./conf")
		v.AddConfigPath("/etc/jsonfixer/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.name", "jsonfixer")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.max_body_size", 10<<20)
	v.SetDefault("server.repair_path", server.DefaultRepairPath)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.trace.trace_header", "JF-Trace-Id")
	v.SetDefault("server.trace.request_header", "JF-Request-Id")
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("server.cors.max_age", 12*time.Hour)

	v.SetDefault("log.name", "jsonfixer")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.encoding", log.EncodingJSON)
	v.SetDefault("log.output", log.OutputStdio)
	v.SetDefault("log.log_payloads", false)
	v.SetDefault("log.file.path", "logs/jsonfixer.log")
	v.SetDefault("log.file.max_size", 100)
	v.SetDefault("log.file.max_age", 30)
	v.SetDefault("log.file.max_backups", 10)
	v.SetDefault("log.file.local_time", true)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("auth.disabled", false)
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.headers", []string{"X-API-Key"})

	v.SetDefault("repair.envelope_field", repair.DefaultEnvelopeField)
	v.SetDefault("repair.quote_strategy", string(repair.QuoteStrategyScanner))
	v.SetDefault("repair.fallback_repairer", false)

	v.SetDefault("stats.cron", "")

	v.SetDefault("cache.mode", "")
	v.SetDefault("cache.memory.expiration", 5*time.Minute)
	v.SetDefault("cache.memory.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.redis.addr", "")
	v.SetDefault("cache.redis.url", "")
	v.SetDefault("cache.redis.username", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.tls", false)
	v.SetDefault("cache.redis.tls_insecure_skip_verify", false)
	v.SetDefault("cache.redis.expiration", 30*time.Minute)
	v.SetDefault("cache.redis.key_prefix", xcache.DefaultKeyPrefix)
	_ = v.BindEnv("cache.redis.db")

	v.SetDefault("metrics.exporter", "")
	v.SetDefault("metrics.endpoint", "")
	v.SetDefault("metrics.insecure", false)
	v.SetDefault("metrics.interval", time.Minute)
}

// Validate reports every problem found in config.
func Validate(config Config) []string {
	var problems []string

	if config.APIServer.Port <= 0 || config.APIServer.Port > 65535 {
		problems = append(problems, "server.port must be between 1 and 65535")
	}

	if config.APIServer.MaxBodySize <= 0 {
		problems = append(problems, "server.max_body_size must be positive")
	}

	if !strings.HasPrefix(config.APIServer.RepairPath, "/") {
		problems = append(problems, "server.repair_path must start with /")
	}

	if config.Log.Name == "" {
		problems = append(problems, "log.name cannot be empty")
	}

	if config.Log.Encoding != log.EncodingJSON && config.Log.Encoding != log.EncodingConsole {
		problems = append(problems, "log.encoding must be json or console")
	}

	if !config.Auth.Disabled && config.Auth.APIKey == "" && len(config.Auth.APIKeys) == 0 {
		problems = append(problems, "auth.api_key or auth.api_keys is required unless auth.disabled is set")
	}

	if _, err := repair.ParseQuoteStrategy(config.Repair.QuoteStrategy); err != nil {
		problems = append(problems, fmt.Sprintf("repair.quote_strategy: %v", err))
	}

	switch config.Cache.Mode {
	case "", xcache.ModeMemory:
	case xcache.ModeRedis, xcache.ModeTwoLevel:
		if config.Cache.Redis.Addr == "" && config.Cache.Redis.URL == "" {
			problems = append(problems, "cache.redis.addr or cache.redis.url is required for cache.mode "+config.Cache.Mode)
		}
	default:
		problems = append(problems, "cache.mode must be one of memory, redis, two-level")
	}

	switch config.Metrics.Exporter {
	case "", metrics.ExporterStdout, metrics.ExporterOTLPHTTP, metrics.ExporterOTLPGRPC:
	default:
		problems = append(problems, "metrics.exporter must be one of stdout, otlphttp, otlpgrpc")
	}

	return problems
}
