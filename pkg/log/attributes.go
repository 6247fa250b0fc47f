// Package log defines standard attribute keys for boosting operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that records from the trainer, the estimators and the
// demo binary can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "BoostingClassifier", "DecisionTreeRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "ensemble.trainer", "optimize.golden"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Training and Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the training squared loss.
	LossKey = "metrics.loss"

	// IterationKey records the boosting iteration (1-based).
	IterationKey = "training.iteration"

	// IterationsKey records the requested number of boosting iterations.
	IterationsKey = "training.iterations"

	// StepKey records the line-searched step size of a stage.
	StepKey = "training.step"

	// StepMethodKey records the step strategy ("closed_form", "golden_section").
	StepMethodKey = "training.step_method"
)

// Prediction
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// WarningKey carries a structured warning value.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorIteration         = "ITERATION_FAILURE"
)
