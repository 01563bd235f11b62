package policies

import (
	erand "golang.org/x/exp/rand"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// Strategy decides when to override greedy selection with an exploratory
// action. The reference behaviour is pure greedy; exploration is opt-in.
type Strategy interface {
	// Explore returns an action index and true to explore, or false to let
	// the value estimates decide.
	Explore(sCtx *core.StepContext, numActions int) (int, bool)
	// EndEpisode advances any schedule the strategy keeps.
	EndEpisode()
	// Reset restores the strategy to its initial schedule.
	Reset()
}

// Greedy never explores.
type Greedy struct{}

var _ Strategy = Greedy{}

func (Greedy) Explore(_ *core.StepContext, _ int) (int, bool) {
	return 0, false
}

func (Greedy) EndEpisode() {}

func (Greedy) Reset() {}

// EpsilonGreedy explores uniformly with probability epsilon, multiplying
// epsilon by decay at each episode end down to a floor.
type EpsilonGreedy struct {
	epsilon float64
	decay   float64
	minimum float64
	seed    uint64

	current float64
	rand    *erand.Rand
}

var _ Strategy = &EpsilonGreedy{}

func NewEpsilonGreedy(epsilon, decay, minimum float64, seed uint64) *EpsilonGreedy {
	return &EpsilonGreedy{
		epsilon: epsilon,
		decay:   decay,
		minimum: minimum,
		seed:    seed,
		current: epsilon,
		rand:    erand.New(erand.NewSource(seed)),
	}
}

func (e *EpsilonGreedy) Explore(_ *core.StepContext, numActions int) (int, bool) {
	if e.rand.Float64() < e.current {
		return e.rand.Intn(numActions), true
	}
	return 0, false
}

func (e *EpsilonGreedy) EndEpisode() {
	e.current *= e.decay
	if e.current < e.minimum {
		e.current = e.minimum
	}
}

func (e *EpsilonGreedy) Reset() {
	e.current = e.epsilon
	e.rand = erand.New(erand.NewSource(e.seed))
}

// Epsilon reports the current exploration probability.
func (e *EpsilonGreedy) Epsilon() float64 {
	return e.current
}
