package policies

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/trading"
)

// stubApprox serves canned value vectors keyed by the balance slot of the
// input and records every fit call.
type stubApprox struct {
	values     map[float64][]float64
	fitInputs  []*mat.VecDense
	fitTargets []*mat.VecDense
	predicts   map[float64]int
	fail       bool
}

func newStubApprox(values map[float64][]float64) *stubApprox {
	return &stubApprox{
		values:   values,
		predicts: make(map[float64]int),
	}
}

func (s *stubApprox) Predict(in *mat.VecDense) (*mat.VecDense, error) {
	if s.fail {
		return nil, fmt.Errorf("stub: %w", core.ErrShapeMismatch)
	}
	key := in.AtVec(0)
	s.predicts[key]++
	vals, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("stub has no values for key %v", key)
	}
	return mat.NewVecDense(len(vals), append([]float64(nil), vals...)), nil
}

func (s *stubApprox) Fit(in, target *mat.VecDense) error {
	if s.fail {
		return fmt.Errorf("stub: %w", core.ErrShapeMismatch)
	}
	s.fitInputs = append(s.fitInputs, in)
	s.fitTargets = append(s.fitTargets, target)
	return nil
}

func (s *stubApprox) InputDim() int  { return trading.StateSize }
func (s *stubApprox) OutputDim() int { return 3 }
func (s *stubApprox) Reset()         {}

func stepCtx() *core.StepContext {
	return &core.StepContext{Step: 0, EpisodeContext: core.NewEpisodeContext(nil)}
}

func TestPickActionGreedyArgmax(t *testing.T) {
	stub := newStubApprox(map[float64][]float64{
		1: {0.5, 2.0, 1.0},
	})
	policy := NewQPolicy(stub, DefaultQParams())

	state := &trading.State{Balance: 1}
	action, err := policy.PickAction(stepCtx(), state, trading.Actions())
	if err != nil {
		t.Fatalf("PickAction: %v", err)
	}
	if action != trading.Sell {
		t.Fatalf("expected sell (index 1), got %v", action)
	}
}

func TestPickActionBreaksTiesTowardLowestIndex(t *testing.T) {
	stub := newStubApprox(map[float64][]float64{
		1: {3.0, 3.0, 3.0},
	})
	policy := NewQPolicy(stub, DefaultQParams())

	action, err := policy.PickAction(stepCtx(), &trading.State{Balance: 1}, trading.Actions())
	if err != nil {
		t.Fatalf("PickAction: %v", err)
	}
	if action != trading.Buy {
		t.Fatalf("expected buy (lowest index) on ties, got %v", action)
	}
}

func TestUpdateStepTerminalTargetIsRewardOnly(t *testing.T) {
	stub := newStubApprox(map[float64][]float64{
		1: {1.0, 2.0, 3.0},
		2: {100.0, 100.0, 100.0},
	})
	policy := NewQPolicy(stub, DefaultQParams())

	err := policy.UpdateStep(stepCtx(), &core.Transition{
		State:     &trading.State{Balance: 1},
		Action:    trading.Buy,
		Reward:    5,
		NextState: &trading.State{Balance: 2},
		Done:      true,
	})
	if err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}

	if len(stub.fitTargets) != 1 {
		t.Fatalf("expected exactly one fit call, got %d", len(stub.fitTargets))
	}
	target := stub.fitTargets[0]
	want := []float64{5, 2, 3}
	for i, w := range want {
		if target.AtVec(i) != w {
			t.Fatalf("target %v, want %v", mat.Formatted(target.T()), want)
		}
	}
	if stub.predicts[2] != 0 {
		t.Fatalf("terminal update must not consult the next state, saw %d predictions", stub.predicts[2])
	}
}

func TestUpdateStepBootstrapsFromNextState(t *testing.T) {
	stub := newStubApprox(map[float64][]float64{
		1: {1.0, 2.0, 3.0},
		2: {1.0, 7.0, 3.0},
	})
	policy := NewQPolicy(stub, DefaultQParams())

	err := policy.UpdateStep(stepCtx(), &core.Transition{
		State:     &trading.State{Balance: 1},
		Action:    trading.Sell,
		Reward:    2,
		NextState: &trading.State{Balance: 2},
		Done:      false,
	})
	if err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}

	target := stub.fitTargets[0]
	want := 2 + 0.95*7.0
	if math.Abs(target.AtVec(1)-want) > 1e-12 {
		t.Fatalf("bootstrapped target %.6f, want %.6f", target.AtVec(1), want)
	}
	// untouched slots keep the current prediction
	if target.AtVec(0) != 1.0 || target.AtVec(2) != 3.0 {
		t.Fatalf("non-action slots modified: %v", mat.Formatted(target.T()))
	}
}

func TestShapeMismatchPropagates(t *testing.T) {
	stub := newStubApprox(nil)
	stub.fail = true
	policy := NewQPolicy(stub, DefaultQParams())

	if _, err := policy.PickAction(stepCtx(), &trading.State{Balance: 1}, trading.Actions()); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("PickAction: expected ErrShapeMismatch, got %v", err)
	}
	err := policy.UpdateStep(stepCtx(), &core.Transition{
		State:     &trading.State{Balance: 1},
		Action:    trading.Buy,
		NextState: &trading.State{Balance: 2},
	})
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("UpdateStep: expected ErrShapeMismatch, got %v", err)
	}
}

func TestEpsilonGreedySchedule(t *testing.T) {
	strategy := NewEpsilonGreedy(1.0, 0.5, 0.2, 7)

	if _, explored := strategy.Explore(stepCtx(), 3); !explored {
		t.Fatalf("epsilon 1.0 must always explore")
	}

	for i := 0; i < 3; i++ {
		strategy.EndEpisode()
	}
	// 1.0 -> 0.5 -> 0.25 -> clamped at 0.2
	if strategy.Epsilon() != 0.2 {
		t.Fatalf("epsilon after decay %.3f, want floor 0.2", strategy.Epsilon())
	}

	strategy.Reset()
	if strategy.Epsilon() != 1.0 {
		t.Fatalf("reset did not restore epsilon: %.3f", strategy.Epsilon())
	}
}

func TestGreedyNeverExplores(t *testing.T) {
	strategy := Greedy{}
	for i := 0; i < 100; i++ {
		if _, explored := strategy.Explore(stepCtx(), 3); explored {
			t.Fatalf("greedy strategy explored")
		}
	}
}

func TestExplorationStrategyOverridesValues(t *testing.T) {
	stub := newStubApprox(map[float64][]float64{
		1: {10.0, 0.0, 0.0},
	})
	policy := NewQPolicy(stub, QParams{Gamma: 0.95, Strategy: alwaysLast{}})

	action, err := policy.PickAction(stepCtx(), &trading.State{Balance: 1}, trading.Actions())
	if err != nil {
		t.Fatalf("PickAction: %v", err)
	}
	if action != trading.Hold {
		t.Fatalf("exploration override ignored, got %v", action)
	}
}

type alwaysLast struct{}

func (alwaysLast) Explore(_ *core.StepContext, n int) (int, bool) { return n - 1, true }
func (alwaysLast) EndEpisode()                                    {}
func (alwaysLast) Reset()                                         {}
