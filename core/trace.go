package core

import "sync"

// Transition is one environment step as observed by the agent.
type Transition struct {
	State     State
	Action    Action
	Reward    float64
	NextState State
	Done      bool

	Misc map[string]interface{}
}

// Trace records the transitions of one episode in order.
type Trace struct {
	mtx   *sync.Mutex
	steps []*Transition
	err   error
}

func NewTrace() *Trace {
	return &Trace{
		steps: make([]*Transition, 0),
		mtx:   &sync.Mutex{},
	}
}

func (t *Trace) AddStep(tr *Transition) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.steps = append(t.steps, tr)
}

func (t *Trace) Step(i int) *Transition {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.steps[i]
}

func (t *Trace) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return len(t.steps)
}

func (t *Trace) Last() *Transition {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if len(t.steps) == 0 {
		return nil
	}
	return t.steps[len(t.steps)-1]
}

// TotalReward is the sum of step rewards, which telescopes to final minus
// initial net worth under the delta-wealth reward.
func (t *Trace) TotalReward() float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	total := 0.0
	for _, s := range t.steps {
		total += s.Reward
	}
	return total
}

func (t *Trace) SetError(err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.err = err
}

func (t *Trace) Error() error {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.err
}
