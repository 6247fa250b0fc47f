package ensemble

import (
	"gonum.org/v1/gonum/floats"
)

// SquaredLoss returns ‖target − (accumulator + step·weak)‖².
//
// It is a pure function of its arguments so that a scalar minimizer can search
// over step without capturing trainer state. All slices must have the same length.
func SquaredLoss(target, accumulator, weak []float64, step float64) float64 {
	var loss float64
	for i, y := range target {
		d := y - (accumulator[i] + step*weak[i])
		loss += d * d
	}
	return loss
}

// exactStep is the minimizer of SquaredLoss over step:
// dot(target − accumulator, weak) / dot(weak, weak), or 0 when weak is all zeros.
func exactStep(target, accumulator, weak []float64) float64 {
	hh := floats.Dot(weak, weak)
	if hh == 0 {
		return 0
	}
	var rh float64
	for i, h := range weak {
		rh += (target[i] - accumulator[i]) * h
	}
	return rh / hh
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
