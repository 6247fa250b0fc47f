package ensemble

import (
	"github.com/YuminosukeSato/gboost/core/model"
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// BoostingRegressor predicts the raw additive score of a residual boosting ensemble.
type BoostingRegressor struct {
	model.BaseEstimator
	Params

	// Model is the fitted ensemble
	Model *Ensemble

	logger    log.Logger
	callbacks []Callback
}

// NewBoostingRegressor creates a regressor with DefaultParams.
func NewBoostingRegressor() *BoostingRegressor {
	return &BoostingRegressor{Params: DefaultParams()}
}

// WithNEstimators sets the number of boosting stages
func (r *BoostingRegressor) WithNEstimators(n int) *BoostingRegressor {
	r.NEstimators = n
	return r
}

// WithMaxDepth sets the depth of each tree
func (r *BoostingRegressor) WithMaxDepth(d int) *BoostingRegressor {
	r.MaxDepth = d
	return r
}

// WithStepMethod selects "closed_form" or "golden_section"
func (r *BoostingRegressor) WithStepMethod(method string) *BoostingRegressor {
	r.StepMethod = method
	return r
}

// WithLogger sets the training logger
func (r *BoostingRegressor) WithLogger(l log.Logger) *BoostingRegressor {
	r.logger = l
	return r
}

// WithCallbacks adds per-iteration callbacks
func (r *BoostingRegressor) WithCallbacks(cbs ...Callback) *BoostingRegressor {
	r.callbacks = append(r.callbacks, cbs...)
	return r
}

// Fit trains the ensemble on X (n×d) and y (n×1).
func (r *BoostingRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "BoostingRegressor.Fit")

	r.Reset()
	r.Model = nil
	ens, err := fitEnsemble("BoostingRegressor", r.Params, r.logger, r.callbacks, X, y)
	if err != nil {
		return err
	}
	r.Model = ens
	r.SetFitted()
	return nil
}

// Predict returns the raw scores as an n×1 matrix.
func (r *BoostingRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("BoostingRegressor", "Predict")
	}
	out, err := r.Model.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (r *BoostingRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError("BoostingRegressor", "Score")
	}
	pred, err := r.Model.DecisionFunction(X)
	if err != nil {
		return 0, err
	}
	yVec, err := metrics.ColumnVector("BoostingRegressor.Score", y)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yVec, pred)
}

// Ensemble returns the fitted ensemble, or nil before Fit.
func (r *BoostingRegressor) Ensemble() *Ensemble {
	return r.Model
}

// GetParams returns the hyperparameters
func (r *BoostingRegressor) GetParams() map[string]interface{} {
	return r.Params.ToMap()
}

// SetParams updates hyperparameters. Nothing changes if any value is invalid.
func (r *BoostingRegressor) SetParams(params map[string]interface{}) error {
	p, err := r.Params.WithMap(params)
	if err != nil {
		return err
	}
	r.Params = p
	return nil
}
