package policies

import (
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// RandomPolicy picks uniformly among the available actions. Used as the
// baseline experiment in comparisons.
type RandomPolicy struct {
	rand *erand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomPolicy) Reset() {}

func (r *RandomPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) PickAction(_ *core.StepContext, _ core.State, actions []core.Action) (core.Action, error) {
	if len(actions) == 0 {
		return nil, core.ErrNoAction
	}
	return actions[r.rand.Intn(len(actions))], nil
}

func (r *RandomPolicy) UpdateStep(_ *core.StepContext, _ *core.Transition) error {
	return nil
}

type RandomPolicyConstructor struct{}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

func (r *RandomPolicyConstructor) NewPolicy() core.Policy {
	return NewRandomPolicy()
}
