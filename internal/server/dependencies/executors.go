package dependencies

import (
	"context"
	"reflect"

	"github.com/zhenzou/executors"

	"github.com/looplj/jsonfixer/internal/log"
)

type ErrorHandler struct{}

func (h *ErrorHandler) CatchError(runnable executors.Runnable, err error) {
	log.Error(context.Background(), "scheduled job failed", log.Cause(err))
}

type RejectionHandler struct{}

func (h *RejectionHandler) RejectExecution(runnable executors.Runnable, e executors.Executor) error {
	log.Warn(context.Background(), "scheduled job rejected", log.String("runnable", reflect.ValueOf(runnable).String()))
	return nil
}

// NewExecutors runs the background jobs; they are few and short, so one worker suffices.
func NewExecutors(logger *log.Logger) executors.ScheduledExecutor {
	return executors.NewPoolScheduleExecutor(
		executors.WithMaxConcurrent(1),
		executors.WithMaxBlockingTasks(16),
		executors.WithErrorHandler(&ErrorHandler{}),
		executors.WithRejectionHandler(&RejectionHandler{}),
		executors.WithLogger(logger.AsSlog()),
	)
}
