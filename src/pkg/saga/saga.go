package saga

import (
	"context"
	"fmt"

	"load-tracking-service/src/pkg/log"
)

// Step pairs an action with the compensation that undoes it.
// Compensate may be nil when a step has nothing to roll back.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga executes steps in order. When a step fails, compensations of the
// already completed steps run in reverse order. Compensation failures are
// logged and never mask the original error.
type Saga struct {
	Log   log.Log
	steps []Step
}

func New(logger log.Log) *Saga {
	return &Saga{Log: logger}
}

func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// StepError reports which step failed so operators can tell how far the
// pipeline got before rolling back.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func (s *Saga) Execute(ctx context.Context) error {
	var completed []Step

	for _, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.Log.Error("saga", fmt.Sprintf("step %s failed, compensating %d completed steps: %v",
				step.Name, len(completed), err), "Execute", "")
			s.compensate(ctx, completed)
			return &StepError{Step: step.Name, Err: err}
		}
		completed = append(completed, step)
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.Log.Error("saga", fmt.Sprintf("compensation for step %s failed: %v", step.Name, err),
				"compensate", "")
		}
	}
}
