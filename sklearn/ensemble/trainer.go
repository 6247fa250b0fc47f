// Package ensemble implements residual boosting: each stage fits a weak
// regressor to y − F and adds it with a line-searched step.
package ensemble

import (
	"context"
	"time"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
	"github.com/YuminosukeSato/gboost/sklearn/tree"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Iteration phases reported by IterationError.
const (
	PhaseFit      = "fit"
	PhasePredict  = "predict"
	PhaseStep     = "step"
	PhaseCallback = "callback"
)

// Trainer runs the boosting loop. A Trainer holds no per-run state and may
// be reused.
type Trainer struct {
	params    Params
	factory   LearnerFactory
	searcher  StepSearcher
	logger    log.Logger
	callbacks []Callback
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithLearnerFactory replaces the default regression tree learner.
func WithLearnerFactory(f LearnerFactory) TrainerOption {
	return func(t *Trainer) {
		t.factory = f
	}
}

// WithStepSearcher overrides the strategy selected by Params.StepMethod.
func WithStepSearcher(s StepSearcher) TrainerOption {
	return func(t *Trainer) {
		t.searcher = s
	}
}

// WithLogger sets the logger. The default is the "ensemble.trainer" component logger.
func WithLogger(l log.Logger) TrainerOption {
	return func(t *Trainer) {
		t.logger = l
	}
}

// WithCallbacks appends per-iteration callbacks.
func WithCallbacks(cbs ...Callback) TrainerOption {
	return func(t *Trainer) {
		t.callbacks = append(t.callbacks, cbs...)
	}
}

// NewTrainer creates a trainer. Params are validated by Train.
func NewTrainer(params Params, opts ...TrainerOption) *Trainer {
	t := &Trainer{params: params}
	for _, opt := range opts {
		opt(t)
	}
	if t.factory == nil {
		t.factory = TreeLearnerFactory(params)
	}
	if t.searcher == nil {
		t.searcher = params.StepSearcher()
	}
	if t.logger == nil {
		t.logger = log.GetLoggerWithName("ensemble.trainer")
	}
	return t
}

// TreeLearnerFactory builds regression trees with the depth, leaf size and
// NJobs of p. It is the trainer's default factory.
func TreeLearnerFactory(p Params) LearnerFactory {
	return func() WeakLearner {
		return tree.NewDecisionTreeRegressor(
			tree.WithMaxDepth(p.MaxDepth),
			tree.WithMinSamplesLeaf(p.MinSamplesLeaf),
			tree.WithNJobs(p.NJobs),
		)
	}
}

// Train fits nIter stages on X (n×d) and y (n×1).
//
// Collaborator failures are returned as *errors.IterationError carrying the
// iteration number and phase; the original error stays reachable through
// errors.Is and errors.As.
func (t *Trainer) Train(X, y mat.Matrix, nIter int) (ens *Ensemble, err error) {
	defer errors.Recover(&err, "Trainer.Train")

	if err := t.params.Validate(); err != nil {
		return nil, err
	}
	target, err := validateTrainInput(X, y, nIter)
	if err != nil {
		return nil, err
	}
	rows, cols := X.Dims()

	start := time.Now()
	t.logger.Info("training started",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.IterationsKey, nIter,
		log.StepMethodKey, t.searcher.Name(),
	)

	ens = &Ensemble{Stages: make([]Stage, 0, nIter), NFeatures: cols, NJobs: t.params.NJobs}
	acc := make([]float64, rows)
	h := make([]float64, rows)
	loss := SquaredLoss(target, acc, h, 0)

	for iter := 1; iter <= nIter; iter++ {
		residual := make([]float64, rows)
		floats.SubTo(residual, target, acc)

		learner := t.factory()
		if err := learner.Fit(X, mat.NewVecDense(rows, residual)); err != nil {
			return nil, errors.NewIterationError(iter, PhaseFit, err)
		}

		pred, err := learner.Predict(X)
		if err == nil {
			err = checkPrediction("Trainer.Train", pred, rows)
		}
		if err != nil {
			return nil, errors.NewIterationError(iter, PhasePredict, err)
		}
		for i := range h {
			h[i] = pred.At(i, 0)
		}

		step, err := t.searcher.Step(target, acc, h)
		if err == nil {
			err = errors.CheckScalar("Trainer.Train step", step, iter)
		}
		if err != nil {
			return nil, errors.NewIterationError(iter, PhaseStep, err)
		}
		if step == 0 {
			if r2 := floats.Dot(residual, residual); r2 > 0 {
				errors.Warn(errors.NewDegenerateStepWarning(iter, r2))
			}
		}

		floats.AddScaled(acc, step, h)
		stage := Stage{Step: step, Learner: learner}
		ens.Stages = append(ens.Stages, stage)
		loss = SquaredLoss(target, acc, h, 0)

		t.logIteration(iter, step, loss)

		env := &CallbackEnv{
			Iteration:    iter,
			Step:         step,
			TrainingLoss: loss,
			Stage:        stage,
			Elapsed:      time.Since(start),
		}
		for _, cb := range t.callbacks {
			if err := cb(env); err != nil {
				return nil, errors.NewIterationError(iter, PhaseCallback, err)
			}
		}
	}

	t.logger.Info("training completed",
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.LossKey, loss,
		log.IterationsKey, ens.Len(),
	)
	return ens, nil
}

func (t *Trainer) logIteration(iter int, step, loss float64) {
	if t.params.Verbosity > 0 {
		t.logger.Info("boosting iteration", log.IterationKey, iter, log.StepKey, step, log.LossKey, loss)
		return
	}
	if t.logger.Enabled(context.Background(), log.LevelDebug) {
		t.logger.Debug("boosting iteration", log.IterationKey, iter, log.StepKey, step, log.LossKey, loss)
	}
}

// validateTrainInput checks shapes and finiteness and returns y as a slice.
func validateTrainInput(X, y mat.Matrix, nIter int) ([]float64, error) {
	const op = "Trainer.Train"
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	switch {
	case nIter < 1:
		return nil, errors.NewInvalidInputError(op, "n_iter", "must be at least 1", nIter)
	case rows == 0:
		return nil, errors.NewInvalidInputError(op, "X", "no samples", rows)
	case cols == 0:
		return nil, errors.NewInvalidInputError(op, "X", "no features", cols)
	case yRows != rows || yCols != 1:
		return nil, errors.NewInvalidInputError(op, "y", "must be an n×1 column aligned with X", [2]int{yRows, yCols})
	}
	if err := errors.CheckMatrix(op, "X", X); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix(op, "y", y); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, y), nil
}
