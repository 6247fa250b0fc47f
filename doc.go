// Package gboost implements residual boosting for Go: shallow regression
// trees are fitted to the residual y − F one at a time, each scaled by a
// line-searched step, and summed into an additive ensemble.
//
// gboost offers a scikit-learn-like API over gonum matrices.
//
// # Features
//
// - Residual boosting with closed-form or golden-section step search
// - Three-valued sign classification over labels {-1, +1}
// - Per-iteration callbacks for learning curves and plots
// - Structured errors (cockroachdb/errors) and logging (zerolog)
//
// # Installation
//
//	go get github.com/YuminosukeSato/gboost
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gboost/datasets"
//	    "github.com/YuminosukeSato/gboost/sklearn/ensemble"
//	)
//
//	func main() {
//	    X, y, err := datasets.MakeMoons(200, 0.2, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := ensemble.NewBoostingClassifier().WithNEstimators(10)
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    acc, _ := clf.Score(X, y)
//	    fmt.Println("training accuracy:", acc)
//	}
//
// The trainer can also be driven directly, with any weak learner:
//
//	trainer := ensemble.NewTrainer(ensemble.DefaultParams(),
//	    ensemble.WithStepSearcher(ensemble.ClosedFormStep{}),
//	    ensemble.WithCallbacks(curve.Callback()),
//	)
//	ens, err := trainer.Train(X, y, 10)
//
// # Packages
//
//   - sklearn/ensemble: the boosting trainer, Ensemble and estimators
//   - sklearn/tree: CART regression trees (the default weak learner)
//   - linear: least-squares linear weak learner
//   - optimize: golden-section scalar minimizer
//   - metrics: MSE, R², accuracy
//   - datasets: two moons, train/test split, .npy files
//   - report: learning curves, gonum/plot charts, graphviz trees
//   - core/model: core interfaces, state and persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error kinds and structured logging
//
// # License
//
// gboost is released under the MIT License.
package gboost
