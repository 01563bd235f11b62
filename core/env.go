package core

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Environment simulates a market that an agent steps through one trading
// period at a time. Reset starts a fresh episode, Step applies one action.
type Environment interface {
	Reset() (State, error)
	Step(Action, *StepContext) (*Transition, error)
}

// State is a fixed-layout observation of the environment.
type State interface {
	Hash() string
	// Vector returns the observation as a column vector. The layout is
	// fixed per environment and consumed verbatim by value approximators.
	Vector() *mat.VecDense
	Actions() []Action
}

type Action interface {
	Hash() string
	// Index is the position of the action in the environment's action set
	// and in the approximator's output vector.
	Index() int
}

type EpisodeContext struct {
	Context       context.Context
	Episode       int
	Horizon       int
	Run           int
	StartTimeStep int

	Trace *Trace

	err     error
	timeout bool
	doneCh  chan struct{}
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		doneCh:  make(chan struct{}),
	}
}

func (e *EpisodeContext) Error(err error) {
	e.err = err
	if e.Trace != nil {
		e.Trace.SetError(err)
	}
	close(e.doneCh)
}

func (e *EpisodeContext) Timeout() {
	e.timeout = true
	close(e.doneCh)
}

func (e *EpisodeContext) Finish() {
	close(e.doneCh)
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

func (e *EpisodeContext) IsTimeout() bool {
	return e.timeout
}

func (e *EpisodeContext) Done() <-chan struct{} {
	return e.doneCh
}

type StepContext struct {
	Step int
	*EpisodeContext
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment with the given instance number.
	NewEnvironment(int) Environment
}
