package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/jsonfixer/internal/server/biz"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 8080, config.APIServer.Port)
	assert.Equal(t, "/fix-json", config.APIServer.RepairPath)
	assert.Equal(t, int64(10<<20), config.APIServer.MaxBodySize)
	assert.Equal(t, 30*time.Second, config.APIServer.RequestTimeout)
	assert.Equal(t, "JF-Trace-Id", config.APIServer.Trace.TraceHeader)
	assert.Equal(t, "jsonfixer", config.Log.Name)
	assert.Equal(t, "data", config.Repair.EnvelopeField)
	assert.Equal(t, "scanner", config.Repair.QuoteStrategy)
	assert.False(t, config.Repair.FallbackRepairer)
	assert.Equal(t, []string{"X-API-Key"}, config.Auth.Headers)
	assert.Empty(t, config.Cache.Mode)
	assert.Nil(t, config.Cache.Redis.DB)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  request_timeout: 5s
  repair_path: /v1/fix
log:
  level: debug
  log_payloads: true
auth:
  api_keys:
    - name: ci
      key: ci-secret
repair:
  envelope_field: payload
  quote_strategy: pattern
  fallback_repairer: true
stats:
  cron: "*/5 * * * *"
cache:
  mode: two-level
  redis:
    addr: 127.0.0.1:6379
    db: 0
metrics:
  exporter: stdout
  interval: 15s
`)

	config, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.APIServer.Port)
	assert.Equal(t, 5*time.Second, config.APIServer.RequestTimeout)
	assert.Equal(t, "/v1/fix", config.APIServer.RepairPath)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.Log.LogPayloads)
	assert.Equal(t, []biz.APIKey{{Name: "ci", Key: "ci-secret"}}, config.Auth.APIKeys)
	assert.Equal(t, "payload", config.Repair.EnvelopeField)
	assert.Equal(t, "pattern", config.Repair.QuoteStrategy)
	assert.True(t, config.Repair.FallbackRepairer)
	assert.Equal(t, "*/5 * * * *", config.Stats.Cron)
	assert.Equal(t, "two-level", config.Cache.Mode)
	require.NotNil(t, config.Cache.Redis.DB)
	assert.Equal(t, 0, *config.Cache.Redis.DB)
	assert.Equal(t, "stdout", config.Metrics.Exporter)
	assert.Equal(t, 15*time.Second, config.Metrics.Interval)

	assert.Empty(t, Validate(config))
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	t.Setenv("JSONFIXER_SERVER_PORT", "7070")
	t.Setenv("JSONFIXER_AUTH_API_KEY", "env-secret")
	t.Setenv("JSONFIXER_AUTH_HEADERS", "X-API-Key,Authorization")
	t.Setenv("JSONFIXER_REPAIR_FALLBACK_REPAIRER", "true")
	t.Setenv("JSONFIXER_SERVER_READ_TIMEOUT", "2s")

	config, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, config.APIServer.Port)
	assert.Equal(t, "env-secret", config.Auth.APIKey)
	assert.Equal(t, []string{"X-API-Key", "Authorization"}, config.Auth.Headers)
	assert.True(t, config.Repair.FallbackRepairer)
	assert.Equal(t, 2*time.Second, config.APIServer.ReadTimeout)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	_, err = LoadFile(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
}

func TestLoadUsesConfigFileEnv(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeConfig(t, "log:\n  name: from-env-file\n"))

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", config.Log.Name)
}

func TestGet(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeConfig(t, "server:\n  name: fixer\n"))

	value, err := Get("server.name")
	require.NoError(t, err)
	assert.Equal(t, "fixer", value)

	_, err = Get("server.nope")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadFile("")
	require.NoError(t, err)

	problems := Validate(config)
	assert.Equal(t, []string{"auth.api_key or auth.api_keys is required unless auth.disabled is set"}, problems)

	config.Auth.Disabled = true
	config.APIServer.Port = 0
	config.APIServer.RepairPath = "fix"
	config.Repair.QuoteStrategy = "magic"
	config.Cache.Mode = "redis"
	config.Metrics.Exporter = "prometheus"

	problems = Validate(config)
	assert.Len(t, problems, 5)
	assert.Contains(t, problems, "server.port must be between 1 and 65535")
	assert.Contains(t, problems, "server.repair_path must start with /")
	assert.Contains(t, problems, "cache.redis.addr or cache.redis.url is required for cache.mode redis")
	assert.Contains(t, problems, "metrics.exporter must be one of stdout, otlphttp, otlpgrpc")
}
