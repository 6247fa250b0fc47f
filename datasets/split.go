package datasets

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TrainTestSplit shuffles the rows of X and y with seed and puts
// round(testFraction·n) of them in the test set. Both sets keep at least one row.
func TrainTestSplit(X, y mat.Matrix, testFraction float64, seed uint64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	const op = "TrainTestSplit"
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	switch {
	case rows < 2:
		return nil, nil, nil, nil, errors.NewInvalidInputError(op, "X", "needs at least 2 rows", rows)
	case yRows != rows:
		return nil, nil, nil, nil, errors.NewDimensionError(op, rows, yRows, 0)
	case !(testFraction > 0 && testFraction < 1):
		return nil, nil, nil, nil, errors.NewInvalidInputError(op, "test_fraction", "must be in (0, 1)", testFraction)
	}

	nTest := int(testFraction*float64(rows) + 0.5)
	nTest = min(max(nTest, 1), rows-1)
	nTrain := rows - nTest

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(rows)

	XTrain = mat.NewDense(nTrain, cols, nil)
	XTest = mat.NewDense(nTest, cols, nil)
	yTrain = mat.NewDense(nTrain, yCols, nil)
	yTest = mat.NewDense(nTest, yCols, nil)

	xRow := make([]float64, cols)
	yRow := make([]float64, yCols)
	for k, src := range perm {
		mat.Row(xRow, src, X)
		mat.Row(yRow, src, y)
		if k < nTrain {
			XTrain.SetRow(k, xRow)
			yTrain.SetRow(k, yRow)
		} else {
			XTest.SetRow(k-nTrain, xRow)
			yTest.SetRow(k-nTrain, yRow)
		}
	}
	return XTrain, XTest, yTrain, yTest, nil
}
