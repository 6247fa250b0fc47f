package ensemble

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/gboost/optimize"
)

func TestSquaredLoss(t *testing.T) {
	target := []float64{1, -1, 2}
	acc := []float64{0, 0, 1}
	weak := []float64{1, 1, 1}

	tests := []struct {
		step float64
		want float64
	}{
		{step: 0, want: 1 + 1 + 1},
		{step: 1, want: 0 + 4 + 0},
		{step: -1, want: 4 + 0 + 4},
		{step: 0.5, want: 0.25 + 2.25 + 0.25},
	}
	for _, tt := range tests {
		if got := SquaredLoss(target, acc, weak, tt.step); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SquaredLoss(step=%v) = %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestClosedFormStep(t *testing.T) {
	target := []float64{3, 1, -2}
	acc := []float64{1, 1, 0}
	weak := []float64{1, 0, -1}
	// residual (2, 0, -2), dot with weak = 4, weak·weak = 2
	step, err := ClosedFormStep{}.Step(target, acc, weak)
	if err != nil {
		t.Fatal(err)
	}
	if step != 2 {
		t.Errorf("Step() = %v, want 2", step)
	}

	step, _ = ClosedFormStep{}.Step(target, acc, []float64{0, 0, 0})
	if step != 0 {
		t.Errorf("zero weak output: Step() = %v, want 0", step)
	}
}

// The numeric search must land on the analytic minimizer.
func TestLineSearchAgreesWithClosedForm(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		n := 5 + rng.IntN(200)
		alpha := 1 + 5*rng.Float64()
		if rng.IntN(2) == 0 {
			alpha = -alpha
		}
		target := make([]float64, n)
		acc := make([]float64, n)
		weak := make([]float64, n)
		for i := range target {
			acc[i] = rng.NormFloat64()
			weak[i] = rng.NormFloat64()
			target[i] = acc[i] + alpha*weak[i] + 0.1*rng.NormFloat64()
		}

		closed, _ := ClosedFormStep{}.Step(target, acc, weak)
		golden, err := LineSearchStep{Minimizer: optimize.NewGoldenSection(1e-10, 500)}.Step(target, acc, weak)
		if err != nil {
			t.Fatalf("trial %d: golden section error = %v", trial, err)
		}
		if !relClose(closed, golden, 1e-6) {
			t.Errorf("trial %d: closed form %v, golden section %v", trial, closed, golden)
		}
	}
}

func TestLineSearchZeroWeak(t *testing.T) {
	called := false
	s := LineSearchStep{Minimizer: minimizerFunc(func(func(float64) float64) (float64, error) {
		called = true
		return 42, nil
	})}
	step, err := s.Step([]float64{1, 2}, []float64{0, 0}, []float64{0, 0})
	if err != nil || step != 0 {
		t.Errorf("Step() = %v, %v; want 0, nil", step, err)
	}
	if called {
		t.Error("minimizer should not run without a descent direction")
	}
	if s.Name() != "line_search" {
		t.Errorf("Name() = %q", s.Name())
	}
	if (LineSearchStep{}).Name() != StepGoldenSection {
		t.Errorf("default Name() = %q", LineSearchStep{}.Name())
	}
}

type minimizerFunc func(func(float64) float64) (float64, error)

func (f minimizerFunc) Minimize(obj func(float64) float64) (float64, error) { return f(obj) }
