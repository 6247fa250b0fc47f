// Package optimize provides scalar minimizers used for line searches.
//
// Minimizers are stateless with respect to the objective: every call to
// Minimize receives the objective as a plain function and keeps nothing
// between calls.
package optimize

import (
	"math"

	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// Minimizer finds an argmin of a scalar objective over the real line.
type Minimizer interface {
	Minimize(objective func(float64) float64) (float64, error)
}

const (
	goldenRatio    = 1.618033988749895 // (1 + √5) / 2
	invGoldenRatio = 0.618033988749895 // 1 / φ
	absTolFloor    = 1e-12
)

// Result describes one golden-section run.
type Result struct {
	X          float64 // argmin estimate
	F          float64 // objective at X
	Iterations int     // golden-section iterations (bracketing not included)
	Evals      int     // objective evaluations including bracketing
	Converged  bool
}

// GoldenSection minimizes a unimodal function by first expanding a bracket
// downhill from [A, B] and then shrinking it by the golden ratio.
type GoldenSection struct {
	// Tol is the relative tolerance on x: iteration stops once the bracket
	// width is below Tol*(|x1|+|x2|) plus a tiny absolute floor.
	Tol float64
	// MaxIter caps golden-section iterations. Hitting the cap emits a
	// ConvergenceWarning and returns the best point found.
	MaxIter int
	// MaxBracket caps downhill expansions while bracketing.
	MaxBracket int
	// A and B are the initial bracketing points. Both zero means [0, 1].
	A, B float64
}

// NewGoldenSection returns a GoldenSection with the given tolerance and iteration cap.
func NewGoldenSection(tol float64, maxIter int) *GoldenSection {
	return &GoldenSection{Tol: tol, MaxIter: maxIter, MaxBracket: 100}
}

// Minimize implements Minimizer.
func (g *GoldenSection) Minimize(objective func(float64) float64) (float64, error) {
	res, err := g.Search(objective)
	if err != nil {
		return 0, err
	}
	return res.X, nil
}

// Search runs bracketing plus golden-section search and returns the full Result.
func (g *GoldenSection) Search(objective func(float64) float64) (Result, error) {
	if g.Tol <= 0 {
		return Result{}, errors.NewInvalidInputError("GoldenSection.Search", "tol", "must be positive", g.Tol)
	}
	if g.MaxIter < 1 {
		return Result{}, errors.NewInvalidInputError("GoldenSection.Search", "max_iter", "must be at least 1", g.MaxIter)
	}

	evals := 0
	f := func(x float64) (float64, error) {
		evals++
		v := objective(x)
		if math.IsNaN(v) {
			return v, errors.NewNumericalInstabilityError("GoldenSection.objective", []float64{x, v}, evals)
		}
		return v, nil
	}

	lo, hi, err := g.bracket(f)
	if err != nil {
		return Result{}, err
	}

	x1 := hi - invGoldenRatio*(hi-lo)
	x2 := lo + invGoldenRatio*(hi-lo)
	f1, err := f(x1)
	if err != nil {
		return Result{}, err
	}
	f2, err := f(x2)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	for res.Iterations = 0; res.Iterations < g.MaxIter; res.Iterations++ {
		if hi-lo <= g.Tol*(math.Abs(x1)+math.Abs(x2))+absTolFloor {
			res.Converged = true
			break
		}
		if f1 < f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - invGoldenRatio*(hi-lo)
			if f1, err = f(x1); err != nil {
				return Result{}, err
			}
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + invGoldenRatio*(hi-lo)
			if f2, err = f(x2); err != nil {
				return Result{}, err
			}
		}
	}

	if f1 < f2 {
		res.X, res.F = x1, f1
	} else {
		res.X, res.F = x2, f2
	}
	res.Evals = evals
	if !res.Converged {
		errors.Warn(errors.NewConvergenceWarning("GoldenSection", res.Iterations, "bracket width still above tolerance"))
	}
	return res, nil
}

// bracket walks downhill from [A, B] in golden-ratio steps until the
// objective turns up, returning an interval that contains a local minimum.
func (g *GoldenSection) bracket(f func(float64) (float64, error)) (lo, hi float64, err error) {
	a, b := g.A, g.B
	if a == 0 && b == 0 {
		b = 1
	}
	fa, err := f(a)
	if err != nil {
		return 0, 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, 0, err
	}
	if fb > fa {
		a, b = b, a
		fb = fa
	}

	c := b + goldenRatio*(b-a)
	fc, err := f(c)
	if err != nil {
		return 0, 0, err
	}

	maxBracket := g.MaxBracket
	if maxBracket < 1 {
		maxBracket = 100
	}
	for n := 0; fc < fb; n++ {
		if n >= maxBracket || math.IsInf(c, 0) {
			return 0, 0, errors.Newf("GoldenSection: objective keeps decreasing after %d bracket expansions (last x=%g)", n, c)
		}
		a, b, fb = b, c, fc
		c = b + goldenRatio*(b-a)
		if fc, err = f(c); err != nil {
			return 0, 0, err
		}
	}

	if a < c {
		return a, c, nil
	}
	return c, a, nil
}
