package ensemble

import (
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// ToMap returns the parameters keyed by their JSON names.
func (p Params) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":         p.NEstimators,
		"max_depth":            p.MaxDepth,
		"min_samples_leaf":     p.MinSamplesLeaf,
		"step_method":          p.StepMethod,
		"line_search_tol":      p.LineSearchTol,
		"line_search_max_iter": p.LineSearchMaxIter,
		"n_jobs":               p.NJobs,
		"verbosity":            p.Verbosity,
	}
}

// WithMap returns a copy of p with the given keys replaced. Unknown keys and
// values of the wrong type are rejected, and the result is validated.
func (p Params) WithMap(params map[string]interface{}) (Params, error) {
	const op = "SetParams"
	for key, value := range params {
		var err error
		switch key {
		case "n_estimators":
			p.NEstimators, err = intParam(op, key, value)
		case "max_depth":
			p.MaxDepth, err = intParam(op, key, value)
		case "min_samples_leaf":
			p.MinSamplesLeaf, err = intParam(op, key, value)
		case "line_search_max_iter":
			p.LineSearchMaxIter, err = intParam(op, key, value)
		case "n_jobs":
			p.NJobs, err = intParam(op, key, value)
		case "verbosity":
			p.Verbosity, err = intParam(op, key, value)
		case "line_search_tol":
			v, ok := value.(float64)
			if !ok {
				err = errors.NewInvalidInputError(op, key, "must be a float64", value)
			}
			p.LineSearchTol = v
		case "step_method":
			v, ok := value.(string)
			if !ok {
				err = errors.NewInvalidInputError(op, key, "must be a string", value)
			}
			p.StepMethod = v
		default:
			err = errors.NewInvalidInputError(op, key, "unknown parameter", value)
		}
		if err != nil {
			return Params{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// intParam accepts ints and integral float64 values (as decoded from JSON).
func intParam(op, key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, errors.NewInvalidInputError(op, key, "must be an integer", value)
}

// fitEnsemble trains Params.NEstimators stages for an estimator.
func fitEnsemble(name string, p Params, logger log.Logger, callbacks []Callback, X, y mat.Matrix) (*Ensemble, error) {
	if logger == nil {
		logger = log.GetLoggerWithName("ensemble.trainer")
	}
	trainer := NewTrainer(p,
		WithLogger(logger.With(log.ModelNameKey, name)),
		WithCallbacks(callbacks...),
	)
	return trainer.Train(X, y, p.NEstimators)
}
