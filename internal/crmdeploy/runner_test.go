package crmdeploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStepsFailFast(t *testing.T) {
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := RunSteps(context.Background(), []Step{
		step("one", nil),
		step("two", errors.New("boom")),
		step("three", nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two")
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRunStepsToleratedContinues(t *testing.T) {
	var ran []string
	steps := []Step{
		{Name: "optional", Tolerated: true, Run: func(context.Context) error {
			ran = append(ran, "optional")
			return errors.New("ignored")
		}},
		{Name: "required", Run: func(context.Context) error {
			ran = append(ran, "required")
			return nil
		}},
	}

	require.NoError(t, RunSteps(context.Background(), steps))
	assert.Equal(t, []string{"optional", "required"}, ran)
}

func TestRunStepsHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := RunSteps(ctx, []Step{
		{Name: "never", Run: func(context.Context) error {
			ran = true
			return nil
		}},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}
