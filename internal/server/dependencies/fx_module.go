package dependencies

import (
	"context"
	"log/slog"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/metrics"
	"github.com/looplj/jsonfixer/internal/pkg/xcache"
	"github.com/looplj/jsonfixer/internal/repair"
	"github.com/looplj/jsonfixer/internal/tracing"
)

var Module = fx.Module("dependencies",
	fx.Provide(NewLogger),
	fx.Provide(NewOutcomeCache),
	fx.Provide(metrics.NewRecorder),
	fx.Provide(NewExecutors),
	fx.Invoke(func(lc fx.Lifecycle, logger *log.Logger, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				err := executor.Shutdown(ctx)
				_ = logger.Sync()

				return err
			},
		})
	}),
)

// NewLogger builds the process logger and installs it as the global and slog default.
// Only one logger may own the configured output.
func NewLogger(config log.Config) *log.Logger {
	logger := log.New(config)
	tracing.SetupLogger(logger)

	log.SetGlobalLogger(logger)
	slog.SetDefault(logger.AsSlog())

	return logger
}

// NewOutcomeCache takes the logger so the cache is built after logging is configured.
func NewOutcomeCache(config xcache.Config, logger *log.Logger) (xcache.Cache[repair.Outcome], error) {
	cache, err := xcache.NewFromConfig[repair.Outcome](config)
	if err != nil {
		return nil, err
	}

	logger.Debug(context.Background(), "outcome cache ready", log.String("mode", config.Mode))

	return cache, nil
}
