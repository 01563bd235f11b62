// Package policies implements the action-selection and learning strategies
// run against trading environments.
package policies

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/approx"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// QParams configure the value-function agent.
type QParams struct {
	// Gamma is the discount applied to the bootstrapped next-state value.
	Gamma float64
	// Strategy is the exploration override, Greedy when nil.
	Strategy Strategy
}

func DefaultQParams() QParams {
	return QParams{
		Gamma:    0.95,
		Strategy: Greedy{},
	}
}

// QPolicy wraps a function approximator and performs off-policy one-step
// temporal-difference learning: a single sample and a single fit call per
// transition, no replay buffer, no target network.
type QPolicy struct {
	approximator approx.Approximator
	params       QParams
}

var _ core.Policy = &QPolicy{}

func NewQPolicy(approximator approx.Approximator, params QParams) *QPolicy {
	if params.Strategy == nil {
		params.Strategy = Greedy{}
	}
	return &QPolicy{
		approximator: approximator,
		params:       params,
	}
}

// PickAction queries the approximator and returns the argmax action, ties
// broken toward the lowest action index. No side effects.
func (q *QPolicy) PickAction(sCtx *core.StepContext, state core.State, actions []core.Action) (core.Action, error) {
	if len(actions) == 0 {
		return nil, core.ErrNoAction
	}
	if idx, ok := q.params.Strategy.Explore(sCtx, len(actions)); ok {
		return actions[idx], nil
	}

	values, err := q.approximator.Predict(state.Vector())
	if err != nil {
		return nil, err
	}
	best := actions[0]
	bestVal := values.AtVec(best.Index())
	for _, a := range actions[1:] {
		if v := values.AtVec(a.Index()); v > bestVal {
			best = a
			bestVal = v
		}
	}
	return best, nil
}

// UpdateStep fits the approximator toward the one-step bootstrapped target:
// the reward alone on terminal transitions, otherwise the reward plus the
// discounted maximum value of the next state. Only the chosen action's slot
// of the target vector differs from the current prediction.
func (q *QPolicy) UpdateStep(_ *core.StepContext, tr *core.Transition) error {
	target := tr.Reward
	if !tr.Done {
		next, err := q.approximator.Predict(tr.NextState.Vector())
		if err != nil {
			return err
		}
		target += q.params.Gamma * mat.Max(next)
	}

	in := tr.State.Vector()
	targetVec, err := q.approximator.Predict(in)
	if err != nil {
		return err
	}
	idx := tr.Action.Index()
	if idx < 0 || idx >= targetVec.Len() {
		return fmt.Errorf("action index %d outside value vector of length %d: %w", idx, targetVec.Len(), core.ErrShapeMismatch)
	}
	targetVec.SetVec(idx, target)
	return q.approximator.Fit(in, targetVec)
}

func (q *QPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (q *QPolicy) UpdateEpisode(_ *core.EpisodeContext) {
	q.params.Strategy.EndEpisode()
}

// Reset discards the learned parameters and the exploration schedule. The
// runner calls this between runs; within a run the approximator accumulates
// across every episode and step.
func (q *QPolicy) Reset() {
	q.approximator.Reset()
	q.params.Strategy.Reset()
}

// QPolicyConstructor builds independent agents for parallel experiments.
// Each instance gets its own approximator and exploration schedule.
type QPolicyConstructor struct {
	gamma       float64
	newApprox   func() approx.Approximator
	newStrategy func() Strategy
}

var _ core.PolicyConstructor = &QPolicyConstructor{}

func NewQPolicyConstructor(gamma float64, newApprox func() approx.Approximator, newStrategy func() Strategy) *QPolicyConstructor {
	return &QPolicyConstructor{
		gamma:       gamma,
		newApprox:   newApprox,
		newStrategy: newStrategy,
	}
}

func (c *QPolicyConstructor) NewPolicy() core.Policy {
	strategy := Strategy(Greedy{})
	if c.newStrategy != nil {
		strategy = c.newStrategy()
	}
	return NewQPolicy(c.newApprox(), QParams{Gamma: c.gamma, Strategy: strategy})
}
