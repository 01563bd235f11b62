package approx

import (
	"fmt"
	"math"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// MLPConfig describes a three-layer feed-forward network: input, two ReLU
// hidden layers, linear output.
type MLPConfig struct {
	Inputs       int
	Hidden       int
	Outputs      int
	LearningRate float64
	Seed         uint64
}

func DefaultMLPConfig(inputs, outputs int) MLPConfig {
	return MLPConfig{
		Inputs:       inputs,
		Hidden:       24,
		Outputs:      outputs,
		LearningRate: 1e-4,
		Seed:         1,
	}
}

// MLP is a small fully-connected network trained online, one sample and one
// gradient step per Fit call.
type MLP struct {
	config MLPConfig

	w1, w2, w3 *mat.Dense
	b1, b2, b3 *mat.VecDense

	rand *erand.Rand
}

var _ Approximator = &MLP{}

func NewMLP(config MLPConfig) *MLP {
	m := &MLP{
		config: config,
		rand:   erand.New(erand.NewSource(config.Seed)),
	}
	m.init()
	return m
}

// init draws He-scaled weights and zero biases.
func (m *MLP) init() {
	m.w1 = m.randomWeights(m.config.Hidden, m.config.Inputs)
	m.w2 = m.randomWeights(m.config.Hidden, m.config.Hidden)
	m.w3 = m.randomWeights(m.config.Outputs, m.config.Hidden)
	m.b1 = mat.NewVecDense(m.config.Hidden, nil)
	m.b2 = mat.NewVecDense(m.config.Hidden, nil)
	m.b3 = mat.NewVecDense(m.config.Outputs, nil)
}

func (m *MLP) randomWeights(rows, cols int) *mat.Dense {
	scale := math.Sqrt(2.0 / float64(cols))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = m.rand.NormFloat64() * scale
	}
	return mat.NewDense(rows, cols, data)
}

func (m *MLP) InputDim() int {
	return m.config.Inputs
}

func (m *MLP) OutputDim() int {
	return m.config.Outputs
}

func (m *MLP) Reset() {
	m.rand = erand.New(erand.NewSource(m.config.Seed))
	m.init()
}

func (m *MLP) Predict(in *mat.VecDense) (*mat.VecDense, error) {
	if in == nil || in.Len() != m.config.Inputs {
		return nil, fmt.Errorf("predict input length %d, want %d: %w", vecLen(in), m.config.Inputs, core.ErrShapeMismatch)
	}
	_, _, _, _, out := m.forward(in)
	return out, nil
}

// Fit runs one forward pass and one SGD step on the squared error between
// the prediction and the target vector.
func (m *MLP) Fit(in, target *mat.VecDense) error {
	if in == nil || in.Len() != m.config.Inputs {
		return fmt.Errorf("fit input length %d, want %d: %w", vecLen(in), m.config.Inputs, core.ErrShapeMismatch)
	}
	if target == nil || target.Len() != m.config.Outputs {
		return fmt.Errorf("fit target length %d, want %d: %w", vecLen(target), m.config.Outputs, core.ErrShapeMismatch)
	}

	z1, a1, z2, a2, pred := m.forward(in)

	// Output layer is linear, so its error signal is just the residual.
	delta3 := mat.NewVecDense(m.config.Outputs, nil)
	delta3.SubVec(pred, target)

	delta2 := backpropagate(m.w3, delta3, z2)
	delta1 := backpropagate(m.w2, delta2, z1)

	lr := m.config.LearningRate
	applyGradient(m.w3, m.b3, delta3, a2, lr)
	applyGradient(m.w2, m.b2, delta2, a1, lr)
	applyGradient(m.w1, m.b1, delta1, in, lr)
	return nil
}

func (m *MLP) forward(in *mat.VecDense) (z1, a1, z2, a2, out *mat.VecDense) {
	z1 = affine(m.w1, in, m.b1)
	a1 = relu(z1)
	z2 = affine(m.w2, a1, m.b2)
	a2 = relu(z2)
	out = affine(m.w3, a2, m.b3)
	return z1, a1, z2, a2, out
}

func affine(w *mat.Dense, x, b *mat.VecDense) *mat.VecDense {
	rows, _ := w.Dims()
	out := mat.NewVecDense(rows, nil)
	out.MulVec(w, x)
	out.AddVec(out, b)
	return out
}

func relu(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		if x := v.AtVec(i); x > 0 {
			out.SetVec(i, x)
		}
	}
	return out
}

// backpropagate carries the error signal through a layer's weights and the
// ReLU derivative of its pre-activation.
func backpropagate(w *mat.Dense, delta *mat.VecDense, z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(z.Len(), nil)
	out.MulVec(w.T(), delta)
	for i := 0; i < out.Len(); i++ {
		if z.AtVec(i) <= 0 {
			out.SetVec(i, 0)
		}
	}
	return out
}

// applyGradient performs the SGD step w -= lr * delta ⊗ input, b -= lr * delta.
func applyGradient(w *mat.Dense, b *mat.VecDense, delta, input *mat.VecDense, lr float64) {
	var grad mat.Dense
	grad.Outer(lr, delta, input)
	w.Sub(w, &grad)
	b.AddScaledVec(b, -lr, delta)
}

func vecLen(v *mat.VecDense) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
