// Package tree implements depth-bounded CART regression trees, the default
// weak learner of the boosting ensemble.
package tree

import (
	"encoding/gob"
	"fmt"
	"sort"

	"github.com/YuminosukeSato/gboost/core/model"
	"github.com/YuminosukeSato/gboost/core/parallel"
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func init() {
	gob.Register(&DecisionTreeRegressor{})
}

// split search runs per feature in parallel once a node holds this many cells
const parallelThreshold = 20000

// Node is one node of a fitted tree. Leaves have Left == Right == -1.
type Node struct {
	Feature   int
	Threshold float64 // samples with x[Feature] <= Threshold go left
	Left      int
	Right     int
	Value     float64 // mean target of the samples that reached the node
	Samples   int
	Impurity  float64 // mean squared error of the node's targets
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// DecisionTreeRegressor fits a regression tree minimizing squared error.
type DecisionTreeRegressor struct {
	model.StateManager

	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	NJobs           int

	Nodes []Node
}

// NewDecisionTreeRegressor returns a stump (MaxDepth 1) unless options say otherwise.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	t := &DecisionTreeRegressor{
		MaxDepth:        1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
	ok        bool
}

// Fit grows the tree on X (n×d) and y (n×1).
func (t *DecisionTreeRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeRegressor.Fit")

	if err := t.validate(X, y); err != nil {
		return err
	}
	rows, cols := X.Dims()

	columns := make([][]float64, cols)
	for j := range columns {
		columns[j] = mat.Col(nil, j, X)
	}
	target := mat.Col(nil, 0, y)

	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}

	t.Reset()
	t.Nodes = t.Nodes[:0]
	t.grow(columns, target, idx, 0)
	t.MarkFitted(cols, rows)
	return nil
}

func (t *DecisionTreeRegressor) validate(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	switch {
	case rows == 0:
		return errors.NewInvalidInputError("DecisionTreeRegressor.Fit", "X", "no samples", fmt.Sprintf("%dx%d", rows, cols))
	case cols == 0:
		return errors.NewInvalidInputError("DecisionTreeRegressor.Fit", "X", "no features", fmt.Sprintf("%dx%d", rows, cols))
	case yRows != rows:
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", rows, yRows, 0)
	case yCols != 1:
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", 1, yCols, 1)
	case t.MaxDepth < 1:
		return errors.NewInvalidInputError("DecisionTreeRegressor.Fit", "max_depth", "must be at least 1", t.MaxDepth)
	case t.MinSamplesLeaf < 1:
		return errors.NewInvalidInputError("DecisionTreeRegressor.Fit", "min_samples_leaf", "must be at least 1", t.MinSamplesLeaf)
	case t.MinSamplesSplit < 2:
		return errors.NewInvalidInputError("DecisionTreeRegressor.Fit", "min_samples_split", "must be at least 2", t.MinSamplesSplit)
	}
	return nil
}

// grow appends the node for idx and its subtree, returning the node's index.
func (t *DecisionTreeRegressor) grow(columns [][]float64, target []float64, idx []int, depth int) int {
	var sum, sumSq float64
	for _, i := range idx {
		sum += target[i]
		sumSq += target[i] * target[i]
	}
	n := float64(len(idx))
	mean := sum / n

	nodeIdx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Feature:  -1,
		Left:     -1,
		Right:    -1,
		Value:    mean,
		Samples:  len(idx),
		Impurity: sumSq/n - mean*mean,
	})

	if depth >= t.MaxDepth || len(idx) < t.MinSamplesSplit || len(idx) < 2*t.MinSamplesLeaf {
		return nodeIdx
	}

	best := t.bestSplit(columns, target, idx, sum)
	if !best.ok {
		return nodeIdx
	}

	var left, right []int
	for _, i := range idx {
		if columns[best.feature][i] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := t.grow(columns, target, left, depth+1)
	r := t.grow(columns, target, right, depth+1)
	t.Nodes[nodeIdx].Feature = best.feature
	t.Nodes[nodeIdx].Threshold = best.threshold
	t.Nodes[nodeIdx].Left = l
	t.Nodes[nodeIdx].Right = r
	return nodeIdx
}

// bestSplit evaluates every feature and keeps the first split with the largest
// gain, scanning features in index order so the result does not depend on NJobs.
func (t *DecisionTreeRegressor) bestSplit(columns [][]float64, target []float64, idx []int, total float64) splitCandidate {
	candidates := make([]splitCandidate, len(columns))
	work := func(start, end int) {
		for j := start; j < end; j++ {
			candidates[j] = t.splitOnFeature(columns[j], target, idx, total, j)
		}
	}
	if len(idx)*len(columns) < parallelThreshold {
		work(0, len(columns))
	} else {
		parallel.ParallelizeN(len(columns), t.NJobs, work)
	}

	best := splitCandidate{}
	for _, c := range candidates {
		if c.ok && (!best.ok || c.gain > best.gain) {
			best = c
		}
	}
	return best
}

// splitOnFeature finds the threshold on one feature maximizing the reduction in
// squared error, sumL²/nL + sumR²/nR − sum²/n.
func (t *DecisionTreeRegressor) splitOnFeature(col, target []float64, idx []int, total float64, feature int) splitCandidate {
	order := make([]int, len(idx))
	copy(order, idx)
	sort.SliceStable(order, func(a, b int) bool { return col[order[a]] < col[order[b]] })

	n := len(order)
	parent := total * total / float64(n)
	best := splitCandidate{feature: feature}

	var leftSum float64
	for k := 1; k < n; k++ {
		leftSum += target[order[k-1]]
		if k < t.MinSamplesLeaf || n-k < t.MinSamplesLeaf {
			continue
		}
		lo, hi := col[order[k-1]], col[order[k]]
		if lo == hi {
			continue
		}
		rightSum := total - leftSum
		gain := leftSum*leftSum/float64(k) + rightSum*rightSum/float64(n-k) - parent
		if gain > 1e-12 && (!best.ok || gain > best.gain) {
			best.ok = true
			best.gain = gain
			best.threshold = lo + (hi-lo)/2
			if best.threshold == hi {
				best.threshold = lo
			}
		}
	}
	return best
}

// Predict returns the leaf value reached by every row of X as an n×1 vector.
func (t *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if err := t.CheckFeatures("DecisionTreeRegressor.Predict", cols); err != nil {
		return nil, err
	}
	out := mat.NewVecDense(rows, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, X)
		out.SetVec(i, t.PredictRow(row))
	}
	return out, nil
}

// PredictRow walks the tree for one sample. The row width is not checked.
func (t *DecisionTreeRegressor) PredictRow(row []float64) float64 {
	node := 0
	for !t.Nodes[node].IsLeaf() {
		if row[t.Nodes[node].Feature] <= t.Nodes[node].Threshold {
			node = t.Nodes[node].Left
		} else {
			node = t.Nodes[node].Right
		}
	}
	return t.Nodes[node].Value
}

// Score returns R² of the predictions on (X, y).
func (t *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := t.Predict(X)
	if err != nil {
		return 0, err
	}
	yVec, err := metrics.ColumnVector("DecisionTreeRegressor.Score", y)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yVec, pred.(*mat.VecDense))
}

// Depth returns the depth of the fitted tree (0 for a single leaf).
func (t *DecisionTreeRegressor) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(node, depth int) int
	walk = func(node, depth int) int {
		n := t.Nodes[node]
		if n.IsLeaf() {
			return depth
		}
		return max(walk(n.Left, depth+1), walk(n.Right, depth+1))
	}
	return walk(0, 0)
}

// NLeaves returns the number of leaves.
func (t *DecisionTreeRegressor) NLeaves() int {
	leaves := 0
	for _, n := range t.Nodes {
		if n.IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Describe returns a short multi-line label for the node, used when rendering trees.
func (n Node) Describe() string {
	if n.IsLeaf() {
		return fmt.Sprintf("value = %.4g\nsamples = %d", n.Value, n.Samples)
	}
	return fmt.Sprintf("x[%d] <= %.4g\nmse = %.4g\nsamples = %d", n.Feature, n.Threshold, n.Impurity, n.Samples)
}
