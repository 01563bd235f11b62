package trading

import (
	"fmt"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/market"
)

// Config of the trading environment.
type Config struct {
	// InitialBalance is the cash the agent starts each episode with.
	InitialBalance float64
	// LotSize is the fixed number of shares per buy or sell.
	LotSize int
	// StrictAccounting rejects buys the balance cannot cover and sells of
	// shares not held. Off by default: the permissive behaviour (negative
	// balances and share counts) is kept as the reference reward-shaping
	// simplification.
	StrictAccounting bool
}

func DefaultConfig() Config {
	return Config{
		InitialBalance: 10000,
		LotSize:        100,
	}
}

// Environment steps through a close-price series holding one position.
// Each Step applies the action at the current price, advances one period,
// and rewards the change in net worth. The episode is done when the step
// index reaches the last price.
type Environment struct {
	series *market.Series
	config Config

	initialized bool
	balance     float64
	sharesHeld  int
	currentStep int
	netWorth    float64
	lastAction  Action
}

var _ core.Environment = &Environment{}

func NewEnvironment(series *market.Series, config Config) *Environment {
	return &Environment{
		series: series,
		config: config,
	}
}

// MaxSteps is the number of prices in the series; the terminal step index is
// MaxSteps-1.
func (e *Environment) MaxSteps() int {
	return e.series.Len()
}

func (e *Environment) Reset() (core.State, error) {
	if e.series.Len() == 0 {
		return nil, market.ErrEmptySeries
	}
	e.balance = e.config.InitialBalance
	e.sharesHeld = 0
	e.currentStep = 0
	e.netWorth = e.balance
	e.lastAction = 0
	e.initialized = true

	// The initial observation carries placeholder zeros in the net worth
	// and last action slots; internally net worth starts at the balance.
	return &State{
		Balance:    e.balance,
		SharesHeld: 0,
		Price:      e.series.Close(0),
		NetWorth:   0,
		LastAction: 0,
	}, nil
}

func (e *Environment) Step(a core.Action, _ *core.StepContext) (*core.Transition, error) {
	if !e.initialized {
		return nil, core.ErrUninitialized
	}
	if e.currentStep >= e.series.Len()-1 {
		return nil, fmt.Errorf("step %d: %w", e.currentStep, core.ErrOutOfRange)
	}
	action, ok := a.(Action)
	if !ok || !action.valid() {
		return nil, fmt.Errorf("action %v: %w", a, core.ErrInvalidAction)
	}

	state := e.observe()
	price := e.series.Close(e.currentStep)
	lot := float64(e.config.LotSize)

	switch action {
	case Buy:
		cost := price * lot
		if e.config.StrictAccounting && e.balance < cost {
			return nil, fmt.Errorf("balance %.2f, cost %.2f: %w", e.balance, cost, core.ErrInsufficientFunds)
		}
		e.sharesHeld += e.config.LotSize
		e.balance -= cost
	case Sell:
		if e.config.StrictAccounting && e.sharesHeld < e.config.LotSize {
			return nil, fmt.Errorf("held %d, lot %d: %w", e.sharesHeld, e.config.LotSize, core.ErrInsufficientShares)
		}
		e.sharesHeld -= e.config.LotSize
		e.balance += price * lot
	case Hold:
	}

	previousNetWorth := e.netWorth
	e.currentStep++
	newPrice := e.series.Close(e.currentStep)
	e.netWorth = e.balance + float64(e.sharesHeld)*newPrice
	e.lastAction = action

	reward := e.netWorth - previousNetWorth
	done := e.currentStep == e.series.Len()-1

	return &core.Transition{
		State:     state,
		Action:    action,
		Reward:    reward,
		NextState: e.observe(),
		Done:      done,
		Misc:      map[string]interface{}{},
	}, nil
}

func (e *Environment) observe() *State {
	return &State{
		Balance:    e.balance,
		SharesHeld: e.sharesHeld,
		Price:      e.series.Close(e.currentStep),
		NetWorth:   e.netWorth,
		LastAction: e.lastAction,
	}
}

// EnvironmentConstructor builds fresh environments over a shared immutable
// series for parallel experiments.
type EnvironmentConstructor struct {
	series *market.Series
	config Config
}

var _ core.EnvironmentConstructor = &EnvironmentConstructor{}

func NewEnvironmentConstructor(series *market.Series, config Config) *EnvironmentConstructor {
	return &EnvironmentConstructor{
		series: series,
		config: config,
	}
}

func (c *EnvironmentConstructor) NewEnvironment(_ int) core.Environment {
	return NewEnvironment(c.series, c.config)
}
