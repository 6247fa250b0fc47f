// Package datasets provides the toy data used by the examples and tests:
// the two interleaved half circles ("moons"), a shuffled train/test split and
// .npy matrix files.
package datasets

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MakeMoons generates n points on two interleaved half circles with Gaussian
// noise of standard deviation noise. Labels are -1 for the upper moon and +1
// for the lower one. Rows are shuffled; equal seeds give equal output.
func MakeMoons(n int, noise float64, seed uint64) (X, y *mat.Dense, err error) {
	if n < 2 {
		return nil, nil, errors.NewInvalidInputError("MakeMoons", "n", "must be at least 2", n)
	}
	if noise < 0 || math.IsNaN(noise) {
		return nil, nil, errors.NewInvalidInputError("MakeMoons", "noise", "must be non-negative", noise)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	nOuter := n / 2
	nInner := n - nOuter

	X = mat.NewDense(n, 2, nil)
	y = mat.NewDense(n, 1, nil)
	order := rng.Perm(n)

	row := 0
	put := func(x0, x1, label float64) {
		i := order[row]
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		y.Set(i, 0, label)
		row++
	}
	for k := 0; k < nOuter; k++ {
		t := math.Pi * float64(k) / float64(max(nOuter-1, 1))
		put(math.Cos(t), math.Sin(t), -1)
	}
	for k := 0; k < nInner; k++ {
		t := math.Pi * float64(k) / float64(max(nInner-1, 1))
		put(1-math.Cos(t), 0.5-math.Sin(t), 1)
	}

	if noise > 0 {
		gauss := distuv.Normal{Mu: 0, Sigma: noise, Src: rng}
		for i := 0; i < n; i++ {
			X.Set(i, 0, X.At(i, 0)+gauss.Rand())
			X.Set(i, 1, X.At(i, 1)+gauss.Rand())
		}
	}
	return X, y, nil
}
