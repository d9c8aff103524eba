package biz

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/metrics"
	"github.com/looplj/jsonfixer/internal/objects"
	"github.com/looplj/jsonfixer/internal/pkg/xcache"
	"github.com/looplj/jsonfixer/internal/pkg/xcontext"
	"github.com/looplj/jsonfixer/internal/repair"
)

const cacheWriteTimeout = 2 * time.Second

type RepairServiceParams struct {
	fx.In

	Config    repair.Config
	Stats     StatsConfig
	LogConfig log.Config
	Cache     xcache.Cache[repair.Outcome]
	Recorder  *metrics.Recorder
	Executor  executors.ScheduledExecutor
}

// RepairService runs the repairer behind the outcome cache and records what it did.
type RepairService struct {
	repairer    *repair.Repairer
	cache       xcache.Cache[repair.Outcome]
	recorder    *metrics.Recorder
	executor    executors.ScheduledExecutor
	statsCron   string
	logPayloads bool

	unchanged atomic.Int64
	repaired  atomic.Int64
	failed    atomic.Int64
	cacheHits atomic.Int64
}

func NewRepairService(params RepairServiceParams) (*RepairService, error) {
	repairer, err := repair.New(params.Config)
	if err != nil {
		return nil, err
	}

	return &RepairService{
		repairer:    repairer,
		cache:       params.Cache,
		recorder:    params.Recorder,
		executor:    params.Executor,
		statsCron:   params.Stats.Cron,
		logPayloads: params.LogConfig.LogPayloads,
	}, nil
}

// Start schedules the periodic statistics log when a cron rule is configured.
func (s *RepairService) Start(ctx context.Context) error {
	if s.statsCron == "" || s.executor == nil {
		return nil
	}

	_, err := s.executor.ScheduleFuncAtCronRate(s.logStats, executors.CRONRule{Expr: s.statsCron})
	if err != nil {
		return fmt.Errorf("schedule repair stats: %w", err)
	}

	log.Info(ctx, "repair stats scheduled", log.String("cron", s.statsCron))

	return nil
}

// Repair returns the outcome for raw, served from the cache when the same input was seen before.
func (s *RepairService) Repair(ctx context.Context, raw string) repair.Outcome {
	start := time.Now()
	key := s.cacheKey(raw)

	outcome, err := s.cache.Get(ctx, key)
	if err == nil {
		if outcome.Kind == repair.KindFailed {
			outcome.OriginalInput = raw
		}

		s.cacheHits.Add(1)
		s.observe(ctx, raw, outcome, true, time.Since(start))

		return outcome
	}

	if !xcache.IsNotFound(err) {
		log.Warn(ctx, "outcome cache read failed", log.Cause(err))
	}

	outcome = s.repairer.Repair(raw)
	s.store(ctx, key, outcome)

	s.observe(ctx, raw, outcome, false, time.Since(start))

	return outcome
}

// store caches outcome without the raw input; a hit already has it.
func (s *RepairService) store(ctx context.Context, key string, outcome repair.Outcome) {
	outcome.OriginalInput = ""

	ctx, cancel := xcontext.DetachWithTimeout(ctx, cacheWriteTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, key, outcome); err != nil {
		log.Warn(ctx, "outcome cache write failed", log.Cause(err))
	}
}

func (s *RepairService) Stats() objects.RepairStats {
	return objects.RepairStats{
		Unchanged: s.unchanged.Load(),
		Repaired:  s.repaired.Load(),
		Failed:    s.failed.Load(),
		CacheHits: s.cacheHits.Load(),
	}
}

// cacheKey covers the repairer settings so a config change never serves stale outcomes.
func (s *RepairService) cacheKey(raw string) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(s.repairer.Fingerprint())
	_, _ = digest.WriteString("\x00")
	_, _ = digest.WriteString(raw)

	return fmt.Sprintf("outcome:%016x", digest.Sum64())
}

func (s *RepairService) observe(ctx context.Context, raw string, outcome repair.Outcome, cached bool, elapsed time.Duration) {
	s.recorder.RecordOutcome(ctx, string(outcome.Kind), cached, elapsed)

	fields := []log.Field{
		log.String("outcome", string(outcome.Kind)),
		log.Bool("cached", cached),
		log.Int("input_bytes", len(raw)),
		log.Duration("elapsed", elapsed),
	}

	if s.logPayloads {
		fields = append(fields, log.String("input", raw))
	}

	switch outcome.Kind {
	case repair.KindUnchanged:
		s.unchanged.Add(1)
		log.Debug(ctx, "input already valid json", fields...)
	case repair.KindRepaired:
		s.repaired.Add(1)

		if s.logPayloads {
			fields = append(fields, log.String("output", outcome.Text))
		}

		log.Info(ctx, "input repaired", fields...)
	case repair.KindFailed:
		s.failed.Add(1)

		fields = append(fields, log.String("details", outcome.Details))
		if s.logPayloads {
			fields = append(fields, log.String("attempted_fix", outcome.AttemptedFix))
		}

		log.Warn(ctx, "input could not be repaired", fields...)
	}
}

func (s *RepairService) logStats(ctx context.Context) {
	stats := s.Stats()

	log.Info(ctx, "repair stats",
		log.Int64("unchanged", stats.Unchanged),
		log.Int64("repaired", stats.Repaired),
		log.Int64("failed", stats.Failed),
		log.Int64("cache_hits", stats.CacheHits),
	)
}
