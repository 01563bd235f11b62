package trading

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/util"
)

// StateSize is the length of the observation vector:
// [balance, shares held, price, net worth, last action].
const StateSize = 5

// State is a snapshot of the simulation. Balance and net worth may go
// negative under permissive accounting. SharesHeld is always a multiple of
// the lot size. LastAction is observational only and never drives the
// transition logic.
type State struct {
	Balance    float64
	SharesHeld int
	Price      float64
	NetWorth   float64
	LastAction Action
}

var _ core.State = &State{}

func (s *State) Vector() *mat.VecDense {
	return mat.NewVecDense(StateSize, []float64{
		s.Balance,
		float64(s.SharesHeld),
		s.Price,
		s.NetWorth,
		float64(s.LastAction),
	})
}

func (s *State) Hash() string {
	return util.JsonHash(s)
}

func (s *State) Actions() []core.Action {
	return Actions()
}

// Copy returns an independent snapshot.
func (s *State) Copy() *State {
	out := *s
	return &out
}
