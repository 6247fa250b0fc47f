package report

import (
	"github.com/YuminosukeSato/gboost/datasets"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CurveMatrix stacks equally long series as the columns of an n×k matrix.
func CurveMatrix(series ...Series) (*mat.Dense, error) {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return nil, errors.NewInvalidInputError("report.CurveMatrix", "series", "nothing to store", len(series))
	}
	n := len(series[0].Values)
	m := mat.NewDense(n, len(series), nil)
	for j, s := range series {
		if len(s.Values) != n {
			return nil, errors.NewDimensionError("report.CurveMatrix", n, len(s.Values), 0)
		}
		m.SetCol(j, s.Values)
	}
	return m, nil
}

// SaveCurveNPY stores the series as columns of a .npy file, for plotting
// outside Go. Column order follows the arguments.
func SaveCurveNPY(path string, series ...Series) error {
	m, err := CurveMatrix(series...)
	if err != nil {
		return err
	}
	return datasets.WriteNPY(path, m)
}
