package ensemble

import (
	"github.com/YuminosukeSato/gboost/core/model"
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// BoostingClassifier is a binary classifier over labels {-1, +1}. The
// ensemble regresses the labels and Predict returns the sign of the raw score.
// A raw score of exactly 0 is predicted as 0, which never matches a label.
type BoostingClassifier struct {
	model.BaseEstimator
	Params

	// Model is the fitted ensemble
	Model *Ensemble

	logger    log.Logger
	callbacks []Callback
}

// NewBoostingClassifier creates a classifier with DefaultParams.
func NewBoostingClassifier() *BoostingClassifier {
	return &BoostingClassifier{Params: DefaultParams()}
}

// WithNEstimators sets the number of boosting stages
func (c *BoostingClassifier) WithNEstimators(n int) *BoostingClassifier {
	c.NEstimators = n
	return c
}

// WithMaxDepth sets the depth of each tree
func (c *BoostingClassifier) WithMaxDepth(d int) *BoostingClassifier {
	c.MaxDepth = d
	return c
}

// WithStepMethod selects "closed_form" or "golden_section"
func (c *BoostingClassifier) WithStepMethod(method string) *BoostingClassifier {
	c.StepMethod = method
	return c
}

// WithLogger sets the training logger
func (c *BoostingClassifier) WithLogger(l log.Logger) *BoostingClassifier {
	c.logger = l
	return c
}

// WithCallbacks adds per-iteration callbacks
func (c *BoostingClassifier) WithCallbacks(cbs ...Callback) *BoostingClassifier {
	c.callbacks = append(c.callbacks, cbs...)
	return c
}

// Classes returns the labels the classifier predicts, in ascending order.
func (c *BoostingClassifier) Classes() []float64 {
	return []float64{-1, 1}
}

// Fit trains on X (n×d) and labels y (n×1) in {-1, +1}.
func (c *BoostingClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "BoostingClassifier.Fit")

	c.Reset()
	c.Model = nil
	if err := checkLabels(y); err != nil {
		return err
	}
	ens, err := fitEnsemble("BoostingClassifier", c.Params, c.logger, c.callbacks, X, y)
	if err != nil {
		return err
	}
	c.Model = ens
	c.SetFitted()
	return nil
}

func checkLabels(y mat.Matrix) error {
	rows, cols := y.Dims()
	if cols != 1 {
		return nil // shape errors are reported by the trainer
	}
	for i := 0; i < rows; i++ {
		if v := y.At(i, 0); v != -1 && v != 1 {
			return errors.NewInvalidInputError("BoostingClassifier.Fit", "y", "labels must be -1 or +1", v)
		}
	}
	return nil
}

// Predict returns Sign of the raw score, in {-1, 0, +1}, as an n×1 matrix.
func (c *BoostingClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("BoostingClassifier", "Predict")
	}
	out, err := c.Model.PredictSign(X)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecisionFunction returns the raw additive score of every row.
func (c *BoostingClassifier) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("BoostingClassifier", "DecisionFunction")
	}
	return c.Model.DecisionFunction(X)
}

// Score returns the accuracy on (X, y).
func (c *BoostingClassifier) Score(X, y mat.Matrix) (float64, error) {
	if !c.IsFitted() {
		return 0, errors.NewNotFittedError("BoostingClassifier", "Score")
	}
	pred, err := c.Model.PredictSign(X)
	if err != nil {
		return 0, err
	}
	yVec, err := metrics.ColumnVector("BoostingClassifier.Score", y)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(yVec, pred)
}

// Ensemble returns the fitted ensemble, or nil before Fit.
func (c *BoostingClassifier) Ensemble() *Ensemble {
	return c.Model
}

// GetParams returns the hyperparameters
func (c *BoostingClassifier) GetParams() map[string]interface{} {
	return c.Params.ToMap()
}

// SetParams updates hyperparameters. Nothing changes if any value is invalid.
func (c *BoostingClassifier) SetParams(params map[string]interface{}) error {
	p, err := c.Params.WithMap(params)
	if err != nil {
		return err
	}
	c.Params = p
	return nil
}
