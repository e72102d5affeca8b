package crmdeploy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Step is one action in the deploy sequence. Steps must be idempotent: if
// their target already exists they skip or ask before overwriting.
type Step struct {
	Name string
	Run  func(ctx context.Context) error

	// Tolerated steps log their failure and let the run continue
	// (superuser creation, fixture loads, pre-migration dump).
	Tolerated bool
}

// RunSteps executes steps in order, fail-fast on the first non-tolerated
// error. There is no rollback: a failed run leaves completed steps in place.
func RunSteps(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Info().Int("step", i+1).Int("of", len(steps)).Msg(step.Name)
		if err := step.Run(ctx); err != nil {
			if step.Tolerated {
				log.Warn().Err(err).Msgf("%s failed, continuing", step.Name)
				continue
			}
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}
