package services

import (
	"context"

	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// SagaStep is one unit of a multi-collection write. Compensate undoes Run
// and may be nil for steps that need no rollback.
type SagaStep struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// RunSaga executes the steps in order. If a step fails, the compensations of
// every previously completed step run in reverse order and the original error
// is returned. Compensation failures are logged and swallowed; there is
// nothing further to unwind, and the reconcile-on-read path repairs whatever
// the rollback could not.
func RunSaga(ctx context.Context, steps []SagaStep) error {
	done := make([]SagaStep, 0, len(steps))
	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				prev := done[i]
				if prev.Compensate == nil {
					continue
				}
				if cerr := prev.Compensate(ctx); cerr != nil {
					logger.Error().
						Err(cerr).
						Str("step", prev.Name).
						Str("failed_step", step.Name).
						Msg("saga compensation failed")
				}
			}
			return err
		}
		done = append(done, step)
	}
	return nil
}
