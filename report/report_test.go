package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/gboost/datasets"
	"github.com/YuminosukeSato/gboost/sklearn/ensemble"
	"gonum.org/v1/gonum/mat"
)

func trainedMoons(t *testing.T, nIter int, curve *LearningCurve) (*ensemble.Ensemble, *mat.Dense, *mat.Dense) {
	t.Helper()
	X, y, err := datasets.MakeMoons(120, 0.15, 17)
	if err != nil {
		t.Fatal(err)
	}
	var opts []ensemble.TrainerOption
	if curve != nil {
		opts = append(opts, ensemble.WithCallbacks(curve.Callback()))
	}
	ens, err := ensemble.NewTrainer(ensemble.DefaultParams(), opts...).Train(X, y, nIter)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return ens, X, y
}

func TestLearningCurveCallback(t *testing.T) {
	curve := &LearningCurve{}
	ens, _, _ := trainedMoons(t, 5, curve)
	if len(curve.Loss) != 5 || len(curve.Steps) != 5 {
		t.Fatalf("curve has %d losses and %d steps, want 5", len(curve.Loss), len(curve.Steps))
	}
	for i, s := range ens.Stages {
		if curve.Steps[i] != s.Step {
			t.Errorf("step %d = %v, want %v", i, curve.Steps[i], s.Step)
		}
	}
}

func TestErrorAndMSECurves(t *testing.T) {
	ens, X, y := trainedMoons(t, 8, nil)

	errs, err := ErrorCurve(ens, X, y)
	if err != nil {
		t.Fatalf("ErrorCurve() error = %v", err)
	}
	if len(errs) != 8 {
		t.Fatalf("ErrorCurve has %d points, want 8", len(errs))
	}
	for i, e := range errs {
		if e < 0 || e > 1 {
			t.Errorf("error rate %d = %v", i, e)
		}
	}
	if errs[7] > errs[0] {
		t.Errorf("error after 8 stages (%v) should not exceed the first stage (%v)", errs[7], errs[0])
	}

	mse, err := MSECurve(ens, X, y)
	if err != nil {
		t.Fatalf("MSECurve() error = %v", err)
	}
	for i := 1; i < len(mse); i++ {
		if mse[i] > mse[i-1]*(1+1e-8) {
			t.Errorf("training MSE rose at stage %d: %v -> %v", i+1, mse[i-1], mse[i])
		}
	}
}

func TestPlots(t *testing.T) {
	curve := &LearningCurve{}
	_, X, y := trainedMoons(t, 4, curve)

	p, err := LearningCurvePlot("loss", Series{Name: "train", Values: curve.Loss})
	if err != nil {
		t.Fatalf("LearningCurvePlot() error = %v", err)
	}
	var buf bytes.Buffer
	if err := WritePlot(p, &buf, "svg"); err != nil {
		t.Fatalf("WritePlot() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("expected SVG output")
	}

	dir := t.TempDir()
	scatter := filepath.Join(dir, "moons.png")
	if err := PlotScatter(scatter, "moons", X, y); err != nil {
		t.Fatalf("PlotScatter() error = %v", err)
	}
	if info, err := os.Stat(scatter); err != nil || info.Size() == 0 {
		t.Errorf("scatter plot not written: %v", err)
	}

	if _, err := LearningCurvePlot("empty", Series{Name: "none"}); err == nil {
		t.Error("an empty series should be rejected")
	}
	if _, err := ScatterPlot("narrow", mat.NewDense(2, 1, nil), mat.NewDense(2, 1, nil)); err == nil {
		t.Error("a single feature column should be rejected")
	}
}

func TestSaveCurveNPY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.npy")
	train := Series{Name: "train", Values: []float64{0.3, 0.2, 0.1}}
	test := Series{Name: "test", Values: []float64{0.4, 0.3, 0.25}}
	if err := SaveCurveNPY(path, train, test); err != nil {
		t.Fatalf("SaveCurveNPY() error = %v", err)
	}
	m, err := datasets.ReadNPY(path)
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(3, 2, []float64{0.3, 0.4, 0.2, 0.3, 0.1, 0.25})
	if !mat.Equal(m, want) {
		t.Errorf("stored curve = %v", mat.Formatted(m))
	}

	if err := SaveCurveNPY(path, train, Series{Values: []float64{1}}); err == nil {
		t.Error("series of different lengths should be rejected")
	}
}

func TestRenderStages(t *testing.T) {
	ens, _, _ := trainedMoons(t, 3, nil)

	dir := t.TempDir()
	paths, err := RenderStages(ens, dir, "stage", "svg")
	if err != nil {
		t.Fatalf("RenderStages() error = %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("rendered %d files, want 3", len(paths))
	}
	if filepath.Base(paths[0]) != "stage_00001.svg" {
		t.Errorf("unexpected file name %s", paths[0])
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "step") {
		t.Error("root label should show the stage step")
	}

	if _, err := RenderStages(ens, dir, "stage", "bmp"); err == nil {
		t.Error("unsupported format should be rejected")
	}
}
