package report

import (
	"image/color"
	"io"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

var (
	negativeColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	positiveColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	zeroColor     = color.RGBA{R: 127, G: 127, B: 127, A: 255}
)

// LearningCurvePlot draws every series against the iteration number (1-based).
func LearningCurvePlot(title string, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "value"

	var args []interface{}
	for _, s := range series {
		if len(s.Values) == 0 {
			return nil, errors.NewInvalidInputError("report.LearningCurvePlot", s.Name, "empty series", 0)
		}
		pts := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			pts[i].X = float64(i + 1)
			pts[i].Y = v
		}
		args = append(args, s.Name, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return nil, errors.Wrap(err, "add curve")
	}
	p.Legend.Top = true
	return p, nil
}

// ScatterPlot draws the first two columns of X coloured by the sign of labels.
func ScatterPlot(title string, X, labels mat.Matrix) (*plot.Plot, error) {
	rows, cols := X.Dims()
	if cols < 2 {
		return nil, errors.NewDimensionError("report.ScatterPlot", 2, cols, 1)
	}
	if lr, _ := labels.Dims(); lr != rows {
		return nil, errors.NewDimensionError("report.ScatterPlot", rows, lr, 0)
	}

	groups := map[float64]plotter.XYs{}
	for i := 0; i < rows; i++ {
		key := 0.0
		switch v := labels.At(i, 0); {
		case v > 0:
			key = 1
		case v < 0:
			key = -1
		}
		groups[key] = append(groups[key], plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)})
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x0"
	p.Y.Label.Text = "x1"
	for _, g := range []struct {
		key   float64
		name  string
		color color.Color
	}{
		{-1, "-1", negativeColor},
		{1, "+1", positiveColor},
		{0, "0", zeroColor},
	} {
		pts, ok := groups[g.key]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrap(err, "scatter")
		}
		s.GlyphStyle.Color = g.color
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add(g.name, s)
	}
	return p, nil
}

// WritePlot encodes p in format ("png", "svg", "pdf", ...) to w.
func WritePlot(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return errors.Wrapf(err, "plot format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write plot")
	}
	return nil
}

// SavePlot writes p to path; the format follows the file extension.
func SavePlot(p *plot.Plot, path string) error {
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

// PlotLearningCurve saves a learning-curve chart to path.
func PlotLearningCurve(path, title string, series ...Series) error {
	p, err := LearningCurvePlot(title, series...)
	if err != nil {
		return err
	}
	return SavePlot(p, path)
}

// PlotScatter saves a scatter chart of X coloured by labels to path.
func PlotScatter(path, title string, X, labels mat.Matrix) error {
	p, err := ScatterPlot(title, X, labels)
	if err != nil {
		return err
	}
	return SavePlot(p, path)
}
