package ensemble

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gboost/datasets"
	"gonum.org/v1/gonum/mat"
)

func moons(t testing.TB, n int, seed uint64) (*mat.Dense, *mat.Dense) {
	t.Helper()
	X, y, err := datasets.MakeMoons(n, 0.15, seed)
	if err != nil {
		t.Fatalf("MakeMoons() error = %v", err)
	}
	return X, y
}

func errorRate(t testing.TB, ens *Ensemble, X, y mat.Matrix) float64 {
	t.Helper()
	pred, err := ens.PredictSign(X)
	if err != nil {
		t.Fatalf("PredictSign() error = %v", err)
	}
	wrong := 0
	for i := 0; i < pred.Len(); i++ {
		if pred.AtVec(i) != y.At(i, 0) {
			wrong++
		}
	}
	return float64(wrong) / float64(pred.Len())
}

func relClose(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}

// noFeatures is an n×0 matrix, which mat.Dense cannot represent.
type noFeatures struct{ rows int }

func (m noFeatures) Dims() (int, int) { return m.rows, 0 }
func (m noFeatures) At(i, j int) float64 { panic(mat.ErrIndexOutOfRange) }
func (m noFeatures) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// stubLearner lets tests script a weak learner's behaviour.
type stubLearner struct {
	fitErr  error
	predict func(X mat.Matrix) (mat.Matrix, error)
}

func (s *stubLearner) Fit(X, y mat.Matrix) error { return s.fitErr }

func (s *stubLearner) Predict(X mat.Matrix) (mat.Matrix, error) {
	return s.predict(X)
}

func constantPredict(v float64) func(mat.Matrix) (mat.Matrix, error) {
	return func(X mat.Matrix) (mat.Matrix, error) {
		r, _ := X.Dims()
		out := mat.NewVecDense(r, nil)
		for i := 0; i < r; i++ {
			out.SetVec(i, v)
		}
		return out, nil
	}
}
