package saga

import (
	"context"
	"errors"
	"testing"

	"load-tracking-service/src/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(name string, trace *[]string, runErr error, compErr error) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			if runErr != nil {
				return runErr
			}
			*trace = append(*trace, "run:"+name)
			return nil
		},
		Compensate: func(ctx context.Context) error {
			*trace = append(*trace, "undo:"+name)
			return compErr
		},
	}
}

func TestExecuteAllStepsSucceed(t *testing.T) {
	var trace []string
	s := New(log.Log{}).
		AddStep(step("a", &trace, nil, nil)).
		AddStep(step("b", &trace, nil, nil)).
		AddStep(step("c", &trace, nil, nil))

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"run:a", "run:b", "run:c"}, trace)
}

func TestExecuteCompensatesInReverseOrder(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	s := New(log.Log{}).
		AddStep(step("a", &trace, nil, nil)).
		AddStep(step("b", &trace, nil, nil)).
		AddStep(step("c", &trace, boom, nil))

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "c", stepErr.Step)

	assert.Equal(t, []string{"run:a", "run:b", "undo:b", "undo:a"}, trace)
}

func TestExecuteFailureAtEachStepLeavesNothingBehind(t *testing.T) {
	boom := errors.New("boom")
	for fail := 0; fail < 4; fail++ {
		var trace []string
		s := New(log.Log{})
		for i := 0; i < 4; i++ {
			name := string(rune('a' + i))
			var runErr error
			if i == fail {
				runErr = boom
			}
			s.AddStep(step(name, &trace, runErr, nil))
		}

		require.Error(t, s.Execute(context.Background()))

		// every recorded run must be matched by an undo
		runs := 0
		undos := 0
		for _, entry := range trace {
			if entry[:4] == "run:" {
				runs++
			} else {
				undos++
			}
		}
		assert.Equal(t, runs, undos, "failure at step %d must undo every completed step", fail)
	}
}

func TestCompensationFailureDoesNotMaskOriginalError(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	s := New(log.Log{}).
		AddStep(step("a", &trace, nil, errors.New("undo failed"))).
		AddStep(step("b", &trace, boom, nil))

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, trace, "undo:a")
}

func TestNilCompensationIsSkipped(t *testing.T) {
	var trace []string
	s := New(log.Log{}).
		AddStep(Step{Name: "a", Run: func(ctx context.Context) error {
			trace = append(trace, "run:a")
			return nil
		}}).
		AddStep(step("b", &trace, errors.New("boom"), nil))

	require.Error(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"run:a"}, trace)
}
