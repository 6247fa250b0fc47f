package ensemble

import (
	"bytes"
	"testing"

	"github.com/YuminosukeSato/gboost/datasets"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestEmptyEnsemble(t *testing.T) {
	var ens Ensemble
	X := mat.NewDense(4, 3, nil)

	raw, err := ens.DecisionFunction(X)
	if err != nil {
		t.Fatalf("DecisionFunction() error = %v", err)
	}
	signs, err := ens.PredictSign(X)
	if err != nil {
		t.Fatalf("PredictSign() error = %v", err)
	}
	for i := 0; i < 4; i++ {
		if raw.AtVec(i) != 0 {
			t.Errorf("raw[%d] = %v, want 0", i, raw.AtVec(i))
		}
		if signs.AtVec(i) != 0 {
			t.Errorf("sign[%d] = %v, want 0", i, signs.AtVec(i))
		}
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 3.2, want: 1},
		{in: 1e-300, want: 1},
		{in: -0.5, want: -1},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		if got := Sign(tt.in); got != tt.want {
			t.Errorf("Sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnsembleWidthMismatch(t *testing.T) {
	X, y := moons(t, 40, 1)
	ens, err := NewTrainer(DefaultParams()).Train(X, y, 2)
	if err != nil {
		t.Fatal(err)
	}

	wide := mat.NewDense(5, 3, nil)
	var dim *errors.DimensionError
	if _, err := ens.DecisionFunction(wide); !errors.As(err, &dim) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dim.Axis != 1 || dim.Expected != 2 || dim.Got != 3 {
		t.Errorf("DimensionError = %+v, want axis 1, expected 2, got 3", dim)
	}
	if _, err := ens.PredictSign(wide); !errors.As(err, &dim) {
		t.Errorf("PredictSign: expected DimensionError, got %v", err)
	}
	err = ens.StagedDecisionFunction(wide, func(int, *mat.VecDense) error { return nil })
	if !errors.As(err, &dim) {
		t.Errorf("StagedDecisionFunction: expected DimensionError, got %v", err)
	}
}

func TestEnsembleHeldOut(t *testing.T) {
	X, y := moons(t, 200, 21)
	XTrain, XTest, yTrain, _, err := datasets.TrainTestSplit(X, y, 0.25, 3)
	if err != nil {
		t.Fatal(err)
	}
	ens, err := NewTrainer(DefaultParams()).Train(XTrain, yTrain, 10)
	if err != nil {
		t.Fatal(err)
	}

	pred, err := ens.PredictSign(XTest)
	if err != nil {
		t.Fatalf("PredictSign() error = %v", err)
	}
	if rows, _ := XTest.Dims(); pred.Len() != rows {
		t.Fatalf("got %d predictions for %d rows", pred.Len(), rows)
	}
	for i := 0; i < pred.Len(); i++ {
		if v := pred.AtVec(i); v != -1 && v != 0 && v != 1 {
			t.Errorf("prediction %d = %v, want -1, 0 or +1", i, v)
		}
	}
}

func TestStagedDecisionFunction(t *testing.T) {
	X, y := moons(t, 80, 2)
	ens, err := NewTrainer(DefaultParams()).Train(X, y, 6)
	if err != nil {
		t.Fatal(err)
	}

	var stages []int
	var last *mat.VecDense
	err = ens.StagedDecisionFunction(X, func(stage int, raw *mat.VecDense) error {
		stages = append(stages, stage)
		last = mat.VecDenseCopyOf(raw)
		return nil
	})
	if err != nil {
		t.Fatalf("StagedDecisionFunction() error = %v", err)
	}
	if len(stages) != 6 || stages[0] != 1 || stages[5] != 6 {
		t.Errorf("stages = %v, want 1..6", stages)
	}
	full, _ := ens.DecisionFunction(X)
	if !mat.Equal(full, last) {
		t.Error("last staged score differs from DecisionFunction")
	}

	stop := errors.New("stop")
	calls := 0
	err = ens.StagedDecisionFunction(X, func(int, *mat.VecDense) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("callback error should stop the walk: err=%v calls=%d", err, calls)
	}
}

func TestDecisionFunctionParallelRows(t *testing.T) {
	X, y := moons(t, 200, 4)
	ens, err := NewTrainer(DefaultParams()).Train(X, y, 5)
	if err != nil {
		t.Fatal(err)
	}

	big, _, err := datasets.MakeMoons(3*parallelRows, 0.2, 99)
	if err != nil {
		t.Fatal(err)
	}
	ens.NJobs = 4
	got, err := ens.DecisionFunction(big)
	if err != nil {
		t.Fatalf("DecisionFunction() error = %v", err)
	}
	var want *mat.VecDense
	_ = ens.StagedDecisionFunction(big, func(_ int, raw *mat.VecDense) error {
		want = raw
		return nil
	})
	if !mat.Equal(got, want) {
		t.Error("chunked scoring differs from sequential scoring")
	}
}

func TestEnsembleSaveLoad(t *testing.T) {
	X, y := moons(t, 60, 7)
	p := DefaultParams()
	p.MaxDepth = 2
	ens, err := NewTrainer(p).Train(X, y, 4)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ens.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadEnsemble(&buf)
	if err != nil {
		t.Fatalf("LoadEnsemble() error = %v", err)
	}
	if loaded.Len() != 4 || loaded.NFeatures != 2 {
		t.Fatalf("loaded ensemble has %d stages and %d features", loaded.Len(), loaded.NFeatures)
	}
	want, _ := ens.DecisionFunction(X)
	got, err := loaded.DecisionFunction(X)
	if err != nil {
		t.Fatalf("DecisionFunction() on loaded ensemble error = %v", err)
	}
	if !mat.Equal(want, got) {
		t.Error("loaded ensemble predicts differently")
	}
}
