package log

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	zl     *zap.Logger
	config Config

	mu    sync.RWMutex
	hooks []Hook
}

func New(config Config) *Logger {
	return newWithWriter(config, openWriter(config))
}

func newWithWriter(config Config, w io.Writer) *Logger {
	var encoderConfig zapcore.EncoderConfig
	if config.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if config.Encoding == EncodingConsole {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(config.zapLevel()))

	// Skip the package level helpers so the caller points at application code.
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(3))
	if config.Name != "" {
		zl = zl.Named(config.Name)
	}

	return &Logger{
		zl:     zl,
		config: config,
	}
}

func openWriter(config Config) io.Writer {
	if config.Output != OutputFile || config.File.Path == "" {
		return os.Stdout
	}

	return &lumberjack.Logger{
		Filename:   config.File.Path,
		MaxSize:    config.File.MaxSize,
		MaxAge:     config.File.MaxAge,
		MaxBackups: config.File.MaxBackups,
		LocalTime:  config.File.LocalTime,
		Compress:   config.File.Compress,
	}
}

func (l *Logger) AddHook(hook Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hooks = append(l.hooks, hook)
}

func (l *Logger) Config() Config {
	return l.config
}

// Zap exposes the underlying zap logger for libraries that need it.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.zl.Core().Enabled(level)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields)
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, fields []Field) {
	ce := l.zl.Check(level, msg)
	if ce == nil {
		return
	}

	l.mu.RLock()
	hooks := l.hooks
	l.mu.RUnlock()

	for _, hook := range hooks {
		fields = hook.Apply(ctx, msg, fields...)
	}

	ce.Write(fields...)
}

var globalLogger atomic.Pointer[Logger]

//nolint:gochecknoinits // default logger before config is loaded.
func init() {
	globalLogger.Store(New(DefaultConfig()))
}

// SetGlobalLogger replaces the logger behind the package level helpers.
func SetGlobalLogger(logger *Logger) {
	globalLogger.Store(logger)
}

func GetGlobalLogger() *Logger {
	return globalLogger.Load()
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().Error(ctx, msg, fields...)
}
