package trading

import (
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// Forecaster supplies a predicted close for a step index. ok is false when
// no forecast is available for that step.
type Forecaster interface {
	Forecast(step int) (float64, bool)
}

// InjectForecast returns a copy of the state with the price slot replaced by
// the forecast value. The input state is left untouched so the
// environment-produced observation stays available for audit.
func InjectForecast(s *State, forecast float64) *State {
	out := s.Copy()
	out.Price = forecast
	return out
}

// ForecastPolicy substitutes a model forecast of the next close for the
// observed price before delegating action selection to the wrapped policy.
// The environment's step counter and internal state are never touched;
// learning still happens on the genuine transitions.
type ForecastPolicy struct {
	inner  core.Policy
	source Forecaster
}

var _ core.Policy = &ForecastPolicy{}

func NewForecastPolicy(inner core.Policy, source Forecaster) *ForecastPolicy {
	return &ForecastPolicy{
		inner:  inner,
		source: source,
	}
}

func (p *ForecastPolicy) PickAction(sCtx *core.StepContext, state core.State, actions []core.Action) (core.Action, error) {
	ts, ok := state.(*State)
	if !ok {
		return p.inner.PickAction(sCtx, state, actions)
	}
	forecast, ok := p.source.Forecast(sCtx.Step + 1)
	if !ok {
		return p.inner.PickAction(sCtx, state, actions)
	}
	return p.inner.PickAction(sCtx, InjectForecast(ts, forecast), actions)
}

func (p *ForecastPolicy) UpdateStep(sCtx *core.StepContext, tr *core.Transition) error {
	return p.inner.UpdateStep(sCtx, tr)
}

func (p *ForecastPolicy) ResetEpisode(eCtx *core.EpisodeContext) {
	p.inner.ResetEpisode(eCtx)
}

func (p *ForecastPolicy) UpdateEpisode(eCtx *core.EpisodeContext) {
	p.inner.UpdateEpisode(eCtx)
}

func (p *ForecastPolicy) Reset() {
	p.inner.Reset()
}

// ForecastPolicyConstructor wraps a policy constructor with a forecast
// source shared across instances.
type ForecastPolicyConstructor struct {
	Inner  core.PolicyConstructor
	Source Forecaster
}

var _ core.PolicyConstructor = &ForecastPolicyConstructor{}

func (c *ForecastPolicyConstructor) NewPolicy() core.Policy {
	return NewForecastPolicy(c.Inner.NewPolicy(), c.Source)
}
