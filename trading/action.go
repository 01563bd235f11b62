// Package trading simulates a long-only position in a single instrument
// with fixed-lot, costless, slippage-free execution.
package trading

import (
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
)

// Action is an order for one fixed lot. Codes match the approximator's
// output layout: 0 buy, 1 sell, 2 hold.
type Action int

const (
	Buy Action = iota
	Sell
	Hold
)

var _ core.Action = Buy

func (a Action) Index() int {
	return int(a)
}

func (a Action) Hash() string {
	return a.String()
}

func (a Action) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Hold:
		return "hold"
	}
	return "invalid"
}

func (a Action) valid() bool {
	return a >= Buy && a <= Hold
}

// Actions returns the full action set in index order.
func Actions() []core.Action {
	return []core.Action{Buy, Sell, Hold}
}
