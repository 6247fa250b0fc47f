package ensemble

import (
	"github.com/YuminosukeSato/gboost/optimize"
)

// Step strategy names accepted by Params.StepMethod.
const (
	StepClosedForm    = "closed_form"
	StepGoldenSection = "golden_section"
)

// StepSearcher chooses the multiplier of a weak learner's output.
type StepSearcher interface {
	// Step returns the step a minimizing SquaredLoss(target, accumulator, weak, a).
	Step(target, accumulator, weak []float64) (float64, error)
	// Name identifies the strategy in logs.
	Name() string
}

// ClosedFormStep solves the squared-loss line search analytically.
type ClosedFormStep struct{}

// Step implements StepSearcher.
func (ClosedFormStep) Step(target, accumulator, weak []float64) (float64, error) {
	return exactStep(target, accumulator, weak), nil
}

// Name implements StepSearcher.
func (ClosedFormStep) Name() string { return StepClosedForm }

// LineSearchStep minimizes SquaredLoss numerically with a scalar Minimizer.
// A nil Minimizer means golden-section search with a 1e-8 tolerance.
type LineSearchStep struct {
	Minimizer optimize.Minimizer
}

// Step implements StepSearcher. An all-zero weak output has no descent
// direction, so the step is 0 without consulting the minimizer.
func (s LineSearchStep) Step(target, accumulator, weak []float64) (float64, error) {
	if allZero(weak) {
		return 0, nil
	}
	m := s.Minimizer
	if m == nil {
		m = optimize.NewGoldenSection(1e-8, 500)
	}
	return m.Minimize(func(step float64) float64 {
		return SquaredLoss(target, accumulator, weak, step)
	})
}

// Name implements StepSearcher.
func (s LineSearchStep) Name() string {
	switch s.Minimizer.(type) {
	case nil, *optimize.GoldenSection:
		return StepGoldenSection
	default:
		return "line_search"
	}
}
