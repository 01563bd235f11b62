// Package approx provides function approximators mapping observation
// vectors to per-action value estimates.
package approx

import "gonum.org/v1/gonum/mat"

// Approximator is the contract the value-function agent trains against:
// Predict returns one value estimate per action for an observation, Fit
// nudges the parameters toward a target vector with a single gradient step.
// Both reject inputs whose shape does not match the approximator's layout.
type Approximator interface {
	Predict(in *mat.VecDense) (*mat.VecDense, error)
	Fit(in, target *mat.VecDense) error
	InputDim() int
	OutputDim() int
	// Reset re-initializes the parameters, discarding everything learned.
	Reset()
}
