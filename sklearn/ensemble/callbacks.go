package ensemble

import (
	"time"

	"github.com/YuminosukeSato/gboost/pkg/log"
)

// CallbackEnv describes the stage that was just added.
type CallbackEnv struct {
	Iteration    int // 1-based
	Step         float64
	TrainingLoss float64 // squared loss of the ensemble after this stage
	Stage        Stage
	Elapsed      time.Duration // since Train started
}

// Callback is invoked by the trainer after every iteration. Returning an
// error aborts training.
type Callback func(env *CallbackEnv) error

// RecordLoss appends the training loss of every iteration to history.
func RecordLoss(history *[]float64) Callback {
	return func(env *CallbackEnv) error {
		*history = append(*history, env.TrainingLoss)
		return nil
	}
}

// RecordSteps appends the step of every iteration to steps.
func RecordSteps(steps *[]float64) Callback {
	return func(env *CallbackEnv) error {
		*steps = append(*steps, env.Step)
		return nil
	}
}

// LogEvaluation logs the loss every period iterations at info level.
func LogEvaluation(logger log.Logger, period int) Callback {
	if period < 1 {
		period = 1
	}
	return func(env *CallbackEnv) error {
		if env.Iteration%period == 0 {
			logger.Info("evaluation",
				log.IterationKey, env.Iteration,
				log.StepKey, env.Step,
				log.LossKey, env.TrainingLoss,
			)
		}
		return nil
	}
}
