// Package linear provides a least-squares linear weak learner for the
// boosting ensemble, as an alternative to regression trees.
package linear

import (
	"encoding/gob"

	"github.com/YuminosukeSato/gboost/core/model"
	"github.com/YuminosukeSato/gboost/core/parallel"
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func init() {
	gob.Register(&LinearRegression{})
}

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// LinearRegression は線形回帰モデル
//
// 正規方程式 (XᵀX + αI) w = Xᵀy を解く。Alpha > 0 でリッジ回帰になる。
type LinearRegression struct {
	model.StateManager

	FitIntercept bool
	Alpha        float64
	NJobs        int

	Weights   []float64 // 重み（係数）
	Intercept float64   // 切片
}

// NewLinearRegression は切片ありの線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{FitIntercept: true}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()
	switch {
	case r == 0 || c == 0:
		return errors.NewInvalidInputError("LinearRegression.Fit", "X", "empty data", [2]int{r, c})
	case ry != r:
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	case cy != 1:
		return errors.NewDimensionError("LinearRegression.Fit", 1, cy, 1)
	case lr.Alpha < 0:
		return errors.NewInvalidInputError("LinearRegression.Fit", "alpha", "must be non-negative", lr.Alpha)
	}

	// 切片項のために X の先頭に 1 の列を追加
	offset := 0
	if lr.FitIntercept {
		offset = 1
	}
	design := mat.NewDense(r, c+offset, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, lr.NJobs, func(start, end int) {
		for i := start; i < end; i++ {
			if offset == 1 {
				design.Set(i, 0, 1)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	var normal mat.Dense
	normal.Mul(design.T(), design)
	for j := offset; j < c+offset; j++ {
		normal.Set(j, j, normal.At(j, j)+lr.Alpha)
	}

	var rhs mat.VecDense
	rhs.MulVec(design.T(), mat.NewVecDense(r, mat.Col(nil, 0, y)))

	var w mat.VecDense
	if err := w.SolveVec(&normal, &rhs); err != nil {
		return errors.Wrap(err, "LinearRegression.Fit: normal equations are singular; set a positive alpha")
	}

	lr.Reset()
	lr.Intercept = 0
	if lr.FitIntercept {
		lr.Intercept = w.AtVec(0)
	}
	lr.Weights = make([]float64, c)
	for j := range lr.Weights {
		lr.Weights[j] = w.AtVec(j + offset)
	}
	lr.MarkFitted(c, r)
	return nil
}

// Predict は入力データに対する予測を n×1 で返す
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := lr.CheckFeatures("LinearRegression.Predict", c); err != nil {
		return nil, err
	}

	// 予測: y = X * weights + intercept
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights[j]
		}
		out.SetVec(i, pred)
	}
	return out, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	yVec, err := metrics.ColumnVector("LinearRegression.Score", y)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yVec, pred.(*mat.VecDense))
}
