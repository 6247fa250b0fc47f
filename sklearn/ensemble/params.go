package ensemble

import (
	"encoding/json"
	"io"

	"github.com/YuminosukeSato/gboost/optimize"
	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// Params holds the boosting hyperparameters.
type Params struct {
	NEstimators    int    `json:"n_estimators"`
	MaxDepth       int    `json:"max_depth"`
	MinSamplesLeaf int    `json:"min_samples_leaf"`
	StepMethod     string `json:"step_method"` // "closed_form" or "golden_section"

	// Line search
	LineSearchTol     float64 `json:"line_search_tol"`
	LineSearchMaxIter int     `json:"line_search_max_iter"`

	NJobs     int `json:"n_jobs"`    // goroutines for split search and scoring, <1 means NumCPU
	Verbosity int `json:"verbosity"` // >0 logs every iteration at info level
}

// DefaultParams returns decision stumps with a golden-section line search.
func DefaultParams() Params {
	return Params{
		NEstimators:       10,
		MaxDepth:          1,
		MinSamplesLeaf:    1,
		StepMethod:        StepGoldenSection,
		LineSearchTol:     1e-8,
		LineSearchMaxIter: 500,
		NJobs:             -1,
		Verbosity:         0,
	}
}

// Validate returns an InvalidInputError naming the first bad field.
func (p Params) Validate() error {
	const op = "Params.Validate"
	switch {
	case p.NEstimators < 1:
		return errors.NewInvalidInputError(op, "n_estimators", "must be at least 1", p.NEstimators)
	case p.MaxDepth < 1:
		return errors.NewInvalidInputError(op, "max_depth", "must be at least 1", p.MaxDepth)
	case p.MinSamplesLeaf < 1:
		return errors.NewInvalidInputError(op, "min_samples_leaf", "must be at least 1", p.MinSamplesLeaf)
	case p.StepMethod != StepClosedForm && p.StepMethod != StepGoldenSection:
		return errors.NewInvalidInputError(op, "step_method", "must be \"closed_form\" or \"golden_section\"", p.StepMethod)
	case p.StepMethod == StepGoldenSection && p.LineSearchTol <= 0:
		return errors.NewInvalidInputError(op, "line_search_tol", "must be positive", p.LineSearchTol)
	case p.StepMethod == StepGoldenSection && p.LineSearchMaxIter < 1:
		return errors.NewInvalidInputError(op, "line_search_max_iter", "must be at least 1", p.LineSearchMaxIter)
	}
	return nil
}

// LoadParams decodes JSON over DefaultParams and validates the result.
// Unknown fields are rejected.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, errors.Wrap(err, "decode boosting params")
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// StepSearcher builds the strategy named by StepMethod.
func (p Params) StepSearcher() StepSearcher {
	if p.StepMethod == StepClosedForm {
		return ClosedFormStep{}
	}
	return LineSearchStep{Minimizer: optimize.NewGoldenSection(p.LineSearchTol, p.LineSearchMaxIter)}
}
