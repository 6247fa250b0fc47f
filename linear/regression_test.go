package linear

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestLinearRegressionExactFit(t *testing.T) {
	// y = 1 + 2*x0 - 3*x1
	X := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		2, 1,
		3, 5,
	})
	y := mat.NewDense(5, 1, nil)
	for i := 0; i < 5; i++ {
		y.Set(i, 0, 1+2*X.At(i, 0)-3*X.At(i, 1))
	}

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if math.Abs(lr.Intercept-1) > 1e-9 || math.Abs(lr.Weights[0]-2) > 1e-9 || math.Abs(lr.Weights[1]+3) > 1e-9 {
		t.Errorf("got intercept %v weights %v, want 1 [2 -3]", lr.Intercept, lr.Weights)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-1) > 1e-9 {
		t.Errorf("Score() = %v, want 1", score)
	}
}

func TestLinearRegressionNoIntercept(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})
	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if lr.Intercept != 0 || math.Abs(lr.Weights[0]-2) > 1e-12 {
		t.Errorf("got intercept %v weight %v", lr.Intercept, lr.Weights[0])
	}
}

func TestLinearRegressionRidge(t *testing.T) {
	// duplicated column makes XᵀX singular without a penalty
	X := mat.NewDense(4, 2, []float64{1, 1, 2, 2, 3, 3, 4, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	if err := NewLinearRegression().Fit(X, y); err == nil {
		t.Error("expected an error for singular normal equations")
	}

	lr := NewLinearRegression(WithAlpha(1e-6))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("ridge Fit() error = %v", err)
	}
	if math.Abs(lr.Weights[0]-lr.Weights[1]) > 1e-6 {
		t.Errorf("ridge should split weight evenly, got %v", lr.Weights)
	}
	pred, _ := lr.Predict(X)
	if math.Abs(pred.At(3, 0)-8) > 1e-4 {
		t.Errorf("prediction = %v, want 8", pred.At(3, 0))
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	var notFitted *errors.NotFittedError
	if _, err := NewLinearRegression().Predict(X); !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	var dim *errors.DimensionError
	if err := NewLinearRegression().Fit(X, mat.NewDense(2, 1, nil)); !errors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}
	var invalid *errors.InvalidInputError
	if err := NewLinearRegression(WithAlpha(-1)).Fit(X, mat.NewDense(3, 1, nil)); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}

	lr := NewLinearRegression()
	if err := lr.Fit(X, mat.NewDense(3, 1, []float64{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	if _, err := lr.Predict(mat.NewDense(1, 2, nil)); !errors.As(err, &dim) {
		t.Errorf("expected DimensionError for a wide input, got %v", err)
	}
}

func TestLinearRegressionParallelDesign(t *testing.T) {
	n := 3000
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := float64(i%100) / 10
		X.Set(i, 0, x)
		y.Set(i, 0, 0.5*x-1)
	}
	lr := NewLinearRegression(WithNJobs(4))
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if math.Abs(lr.Weights[0]-0.5) > 1e-9 || math.Abs(lr.Intercept+1) > 1e-9 {
		t.Errorf("got weight %v intercept %v", lr.Weights[0], lr.Intercept)
	}
}

func TestLinearRegressionGob(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	lr := NewLinearRegression()
	if err := lr.Fit(X, mat.NewDense(3, 1, []float64{3, 5, 7})); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(lr); err != nil {
		t.Fatal(err)
	}
	var decoded LinearRegression
	if err := gob.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	pred, err := decoded.Predict(X)
	if err != nil {
		t.Fatalf("decoded model should be fitted: %v", err)
	}
	if math.Abs(pred.At(2, 0)-7) > 1e-9 {
		t.Errorf("decoded prediction = %v, want 7", pred.At(2, 0))
	}
}
