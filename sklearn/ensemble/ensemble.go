package ensemble

import (
	"io"

	"github.com/YuminosukeSato/gboost/core/model"
	"github.com/YuminosukeSato/gboost/core/parallel"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// rows are scored in parallel chunks above this count
const parallelRows = 4096

// WeakLearner is a regressor: Fit on (X, residual), Predict an n×1 output.
type WeakLearner = model.Model

// LearnerFactory returns a fresh, unfitted weak learner.
type LearnerFactory func() WeakLearner

// Stage is one (step, learner) term of the additive model.
type Stage struct {
	Step    float64
	Learner WeakLearner
}

// Ensemble is the ordered sum Σ Step·Learner(x). The zero value is an empty
// ensemble that scores every row as 0.
type Ensemble struct {
	Stages    []Stage
	NFeatures int
	NJobs     int
}

// Len returns the number of stages.
func (e *Ensemble) Len() int {
	return len(e.Stages)
}

func (e *Ensemble) checkInput(op string, X mat.Matrix) (int, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, errors.NewInvalidInputError(op, "X", "no samples", rows)
	}
	if e.NFeatures != 0 && cols != e.NFeatures {
		return 0, errors.NewDimensionError(op, e.NFeatures, cols, 1)
	}
	return rows, nil
}

// DecisionFunction returns the raw additive score of every row of X.
func (e *Ensemble) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	rows, err := e.checkInput("Ensemble.DecisionFunction", X)
	if err != nil {
		return nil, err
	}
	raw := make([]float64, rows)
	if len(e.Stages) == 0 {
		return mat.NewVecDense(rows, raw), nil
	}

	errs := make([]error, rows)
	parallel.ParallelizeWithThreshold(rows, parallelRows, e.NJobs, func(start, end int) {
		sub := rowRange{m: X, offset: start, rows: end - start}
		for s, stage := range e.Stages {
			h, err := stage.Learner.Predict(sub)
			if err == nil {
				err = checkPrediction("Ensemble.DecisionFunction", h, end-start)
			}
			if err != nil {
				errs[start] = errors.Wrapf(err, "stage %d", s+1)
				return
			}
			for i := start; i < end; i++ {
				raw[i] += stage.Step * h.At(i-start, 0)
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return mat.NewVecDense(rows, raw), nil
}

// PredictSign returns Sign of the raw score of every row, in {-1, 0, +1}.
func (e *Ensemble) PredictSign(X mat.Matrix) (*mat.VecDense, error) {
	raw, err := e.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	for i := 0; i < raw.Len(); i++ {
		raw.SetVec(i, Sign(raw.AtVec(i)))
	}
	return raw, nil
}

// StagedDecisionFunction calls fn after adding each stage, with the running
// raw score of every row. Stages are numbered from 1. raw is reused between
// calls; copy it to keep it. A non-nil error from fn stops the walk and is returned.
func (e *Ensemble) StagedDecisionFunction(X mat.Matrix, fn func(stage int, raw *mat.VecDense) error) error {
	rows, err := e.checkInput("Ensemble.StagedDecisionFunction", X)
	if err != nil {
		return err
	}
	raw := mat.NewVecDense(rows, nil)
	for s, stage := range e.Stages {
		h, err := stage.Learner.Predict(X)
		if err == nil {
			err = checkPrediction("Ensemble.StagedDecisionFunction", h, rows)
		}
		if err != nil {
			return errors.Wrapf(err, "stage %d", s+1)
		}
		for i := 0; i < rows; i++ {
			raw.SetVec(i, raw.AtVec(i)+stage.Step*h.At(i, 0))
		}
		if err := fn(s+1, raw); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the ensemble with encoding/gob. Learner types must be registered with gob.
func (e *Ensemble) Save(w io.Writer) error {
	return model.SaveModelToWriter(e, w)
}

// LoadEnsemble reads an ensemble written by Save.
func LoadEnsemble(r io.Reader) (*Ensemble, error) {
	e := &Ensemble{}
	if err := model.LoadModelFromReader(e, r); err != nil {
		return nil, err
	}
	return e, nil
}

// Sign maps v to -1, 0 or +1. An exact zero stays 0.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func checkPrediction(op string, h mat.Matrix, rows int) error {
	r, c := h.Dims()
	if r != rows {
		return errors.NewDimensionError(op, rows, r, 0)
	}
	if c != 1 {
		return errors.NewDimensionError(op, 1, c, 1)
	}
	return nil
}

// rowRange is a read-only view of rows [offset, offset+rows) of m.
type rowRange struct {
	m      mat.Matrix
	offset int
	rows   int
}

func (r rowRange) Dims() (int, int) {
	_, c := r.m.Dims()
	return r.rows, c
}

func (r rowRange) At(i, j int) float64 {
	return r.m.At(r.offset+i, j)
}

func (r rowRange) T() mat.Matrix {
	return mat.Transpose{Matrix: r}
}
