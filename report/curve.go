// Package report turns training runs into artifacts: per-iteration curves,
// gonum/plot charts, .npy dumps and graphviz pictures of the fitted trees.
//
// Nothing here is called by the trainer itself. Curves are collected through
// ensemble callbacks or computed afterwards from a fitted ensemble.
package report

import (
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/sklearn/ensemble"
	"gonum.org/v1/gonum/mat"
)

// LearningCurve records the training loss and step of every iteration.
type LearningCurve struct {
	Loss  []float64
	Steps []float64
}

// Callback returns an ensemble callback that appends to the curve.
func (c *LearningCurve) Callback() ensemble.Callback {
	return func(env *ensemble.CallbackEnv) error {
		c.Loss = append(c.Loss, env.TrainingLoss)
		c.Steps = append(c.Steps, env.Step)
		return nil
	}
}

// Series is a named sequence of per-iteration values.
type Series struct {
	Name   string
	Values []float64
}

// StagedMetric evaluates metric on the running raw score after every stage
// of ens. The result has one value per stage.
func StagedMetric(ens *ensemble.Ensemble, X, y mat.Matrix, metric func(yTrue, raw *mat.VecDense) (float64, error)) ([]float64, error) {
	yVec, err := metrics.ColumnVector("report.StagedMetric", y)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, ens.Len())
	err = ens.StagedDecisionFunction(X, func(_ int, raw *mat.VecDense) error {
		v, err := metric(yVec, raw)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ErrorCurve is the classification error rate of Sign(raw) after each stage.
func ErrorCurve(ens *ensemble.Ensemble, X, y mat.Matrix) ([]float64, error) {
	return StagedMetric(ens, X, y, func(yTrue, raw *mat.VecDense) (float64, error) {
		signs := mat.NewVecDense(raw.Len(), nil)
		for i := 0; i < raw.Len(); i++ {
			signs.SetVec(i, ensemble.Sign(raw.AtVec(i)))
		}
		return metrics.ErrorRate(yTrue, signs)
	})
}

// MSECurve is the mean squared error of the raw score after each stage.
func MSECurve(ens *ensemble.Ensemble, X, y mat.Matrix) ([]float64, error) {
	return StagedMetric(ens, X, y, metrics.MSE)
}
