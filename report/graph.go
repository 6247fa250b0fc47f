package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/sklearn/ensemble"
	"github.com/YuminosukeSato/gboost/sklearn/tree"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

var graphvizFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

// RenderTree draws a fitted tree in format ("png", "svg", "jpg" or "dot") to w.
// A non-zero step is shown in the root label as the stage multiplier.
func RenderTree(t *tree.DecisionTreeRegressor, step float64, w io.Writer, format string) (err error) {
	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return errors.NewInvalidInputError("report.RenderTree", "format", "unsupported graphviz format", format)
	}
	if !t.IsFitted() {
		return errors.NewNotFittedError("DecisionTreeRegressor", "RenderTree")
	}

	gv := graphviz.New()
	defer func() {
		if cerr := gv.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close graphviz")
		}
	}()
	graph, err := gv.Graph()
	if err != nil {
		return errors.Wrap(err, "create graph")
	}
	defer func() {
		if cerr := graph.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close graph")
		}
	}()

	if err := drawNode(graph, t, 0, nil, step); err != nil {
		return err
	}
	if err := gv.Render(graph, gvFormat, w); err != nil {
		return errors.Wrap(err, "render tree")
	}
	return nil
}

func drawNode(g *cgraph.Graph, t *tree.DecisionTreeRegressor, idx int, parent *cgraph.Node, step float64) error {
	node := t.Nodes[idx]
	current, err := g.CreateNode(fmt.Sprintf("n%d", idx))
	if err != nil {
		return errors.Wrapf(err, "create node %d", idx)
	}
	if parent != nil {
		if _, err := g.CreateEdge("", parent, current); err != nil {
			return errors.Wrapf(err, "create edge to node %d", idx)
		}
	}

	label := node.Describe()
	if parent == nil && step != 0 {
		label = fmt.Sprintf("step = %.4g\n%s", step, label)
	}
	current.Set("label", label)
	if node.IsLeaf() {
		current.Set("shape", "box")
		return nil
	}
	if err := drawNode(g, t, node.Left, current, step); err != nil {
		return err
	}
	return drawNode(g, t, node.Right, current, step)
}

// RenderStages writes one picture per tree stage of ens into dir, named
// <prefix>_<stage>.<format> with 1-based, zero-padded stage numbers.
// Stages whose learner is not a *tree.DecisionTreeRegressor are skipped.
// It returns the paths written.
func RenderStages(ens *ensemble.Ensemble, dir, prefix, format string) ([]string, error) {
	if _, ok := graphvizFormats[format]; !ok {
		return nil, errors.NewInvalidInputError("report.RenderStages", "format", "unsupported graphviz format", format)
	}
	var paths []string
	for i, stage := range ens.Stages {
		t, ok := stage.Learner.(*tree.DecisionTreeRegressor)
		if !ok {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%05d.%s", prefix, i+1, format))
		if err := renderTreeFile(t, stage.Step, path, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderTreeFile(t *tree.DecisionTreeRegressor, step float64, path, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return RenderTree(t, step, f, format)
}
