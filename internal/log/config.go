package log

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	EncodingJSON    = "json"
	EncodingConsole = "console"

	OutputStdio = "stdio"
	OutputFile  = "file"
)

type Config struct {
	Name     string `conf:"name" yaml:"name" json:"name"`
	Level    string `conf:"level" yaml:"level" json:"level"`
	Debug    bool   `conf:"debug" yaml:"debug" json:"debug"`
	Encoding string `conf:"encoding" yaml:"encoding" json:"encoding"`
	Output   string `conf:"output" yaml:"output" json:"output"`

	// LogPayloads enables logging of raw request and repaired bodies.
	LogPayloads bool `conf:"log_payloads" yaml:"log_payloads" json:"log_payloads"`

	File FileConfig `conf:"file" yaml:"file" json:"file"`
}

// FileConfig controls the lumberjack rotation when Output is "file".
type FileConfig struct {
	Path       string `conf:"path" yaml:"path" json:"path"`
	MaxSize    int    `conf:"max_size" yaml:"max_size" json:"max_size"`
	MaxAge     int    `conf:"max_age" yaml:"max_age" json:"max_age"`
	MaxBackups int    `conf:"max_backups" yaml:"max_backups" json:"max_backups"`
	LocalTime  bool   `conf:"local_time" yaml:"local_time" json:"local_time"`
	Compress   bool   `conf:"compress" yaml:"compress" json:"compress"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "jsonfixer",
		Level:    "info",
		Encoding: EncodingJSON,
		Output:   OutputStdio,
		File: FileConfig{
			Path:       "logs/jsonfixer.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
		},
	}
}

func (c Config) zapLevel() zapcore.Level {
	if c.Debug {
		return zapcore.DebugLevel
	}

	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(c.Level)))
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}
