package trading

import (
	"testing"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

func TestInjectForecastIsPure(t *testing.T) {
	original := &State{Balance: 9000, SharesHeld: 100, Price: 12, NetWorth: 10200, LastAction: Buy}
	injected := InjectForecast(original, 13.5)

	if injected.Price != 13.5 {
		t.Fatalf("forecast not injected: %+v", injected)
	}
	if original.Price != 12 {
		t.Fatalf("original state mutated: %+v", original)
	}
	if injected.Balance != original.Balance || injected.SharesHeld != original.SharesHeld ||
		injected.NetWorth != original.NetWorth || injected.LastAction != original.LastAction {
		t.Fatalf("non-price fields changed: %+v", injected)
	}
}

// capturePolicy records the states it was asked to act on.
type capturePolicy struct {
	seen []core.State
}

func (c *capturePolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) (core.Action, error) {
	c.seen = append(c.seen, state)
	return actions[len(actions)-1], nil
}

func (c *capturePolicy) UpdateStep(_ *core.StepContext, _ *core.Transition) error { return nil }
func (c *capturePolicy) ResetEpisode(_ *core.EpisodeContext)                      {}
func (c *capturePolicy) UpdateEpisode(_ *core.EpisodeContext)                     {}
func (c *capturePolicy) Reset()                                                   {}

type fixedForecaster struct {
	values map[int]float64
}

func (f *fixedForecaster) Forecast(step int) (float64, bool) {
	v, ok := f.values[step]
	return v, ok
}

func TestForecastPolicySubstitutesPrice(t *testing.T) {
	inner := &capturePolicy{}
	policy := NewForecastPolicy(inner, &fixedForecaster{values: map[int]float64{1: 42}})

	state := &State{Balance: 10000, Price: 10}
	sCtx := &core.StepContext{Step: 0, EpisodeContext: core.NewEpisodeContext(nil)}
	if _, err := policy.PickAction(sCtx, state, Actions()); err != nil {
		t.Fatalf("PickAction: %v", err)
	}

	if len(inner.seen) != 1 {
		t.Fatalf("inner policy not consulted")
	}
	seen := inner.seen[0].(*State)
	if seen.Price != 42 {
		t.Fatalf("expected forecast 42 in price slot, got %.2f", seen.Price)
	}
	if state.Price != 10 {
		t.Fatalf("environment state mutated: %+v", state)
	}
}

func TestForecastPolicyFallsBackWithoutForecast(t *testing.T) {
	inner := &capturePolicy{}
	policy := NewForecastPolicy(inner, &fixedForecaster{values: map[int]float64{}})

	state := &State{Balance: 10000, Price: 10}
	sCtx := &core.StepContext{Step: 3, EpisodeContext: core.NewEpisodeContext(nil)}
	if _, err := policy.PickAction(sCtx, state, Actions()); err != nil {
		t.Fatalf("PickAction: %v", err)
	}
	if inner.seen[0].(*State).Price != 10 {
		t.Fatalf("price should be untouched when no forecast exists")
	}
}
