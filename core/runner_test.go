package core

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"
)

type countState struct {
	i int
}

func (s *countState) Hash() string { return strconv.Itoa(s.i) }

func (s *countState) Vector() *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(s.i)})
}

func (s *countState) Actions() []Action { return []Action{noopAction{}} }

type noopAction struct{}

func (noopAction) Hash() string { return "noop" }
func (noopAction) Index() int   { return 0 }

// countEnv walks a fixed number of steps, one unit of reward each.
type countEnv struct {
	n      int
	step   int
	resets int
}

func (e *countEnv) Reset() (State, error) {
	e.step = 0
	e.resets++
	return &countState{0}, nil
}

func (e *countEnv) Step(a Action, _ *StepContext) (*Transition, error) {
	if e.step >= e.n-1 {
		return nil, ErrOutOfRange
	}
	prev := &countState{e.step}
	e.step++
	return &Transition{
		State:     prev,
		Action:    a,
		Reward:    1,
		NextState: &countState{e.step},
		Done:      e.step == e.n-1,
		Misc:      map[string]interface{}{},
	}, nil
}

type firstActionPolicy struct {
	updates  int
	episodes int
}

func (p *firstActionPolicy) PickAction(_ *StepContext, _ State, actions []Action) (Action, error) {
	return actions[0], nil
}

func (p *firstActionPolicy) UpdateStep(_ *StepContext, _ *Transition) error {
	p.updates++
	return nil
}

func (p *firstActionPolicy) ResetEpisode(_ *EpisodeContext) {}

func (p *firstActionPolicy) UpdateEpisode(_ *EpisodeContext) {
	p.episodes++
}

func (p *firstActionPolicy) Reset() {}

type countAnalyzer struct {
	episodes int
	steps    int
}

func (a *countAnalyzer) Analyze(_ *EpisodeContext, trace *Trace) {
	a.episodes++
	a.steps += trace.Len()
}

func (a *countAnalyzer) DataSet() DataSet { return a.steps }

func (a *countAnalyzer) Reset() {
	a.episodes = 0
	a.steps = 0
}

type captureComparator struct {
	names    []string
	datasets []DataSet
}

func (c *captureComparator) Compare(names []string, datasets []DataSet) {
	c.names = names
	c.datasets = datasets
}

func testRunConfig(episodes int) *RunConfig {
	return &RunConfig{
		Episodes:                     episodes,
		Horizon:                      100,
		EpisodeTimeout:               5 * time.Second,
		ThresholdConsecutiveErrors:   3,
		ThresholdConsecutiveTimeouts: 3,
	}
}

func TestComparisonRunsAllEpisodes(t *testing.T) {
	env := &countEnv{n: 5}
	policy := &firstActionPolicy{}
	analyzer := &countAnalyzer{}
	comparator := &captureComparator{}

	cmp := NewComparison()
	cmp.AddExperiment(&Experiment{Name: "count", Environment: env, Policy: policy})
	cmp.AddAnalysis("steps", analyzer, comparator)

	cmp.Run(context.Background(), 1, testRunConfig(3))

	if env.resets != 3 {
		t.Fatalf("resets %d, want 3", env.resets)
	}
	if analyzer.episodes != 3 {
		t.Fatalf("analyzer saw %d episodes, want 3", analyzer.episodes)
	}
	// each episode is n-1 steps, terminated by done rather than horizon
	if analyzer.steps != 3*4 {
		t.Fatalf("analyzer saw %d steps, want 12", analyzer.steps)
	}
	if policy.updates != 3*4 {
		t.Fatalf("policy updates %d, want 12", policy.updates)
	}
	if policy.episodes != 3 {
		t.Fatalf("policy episode updates %d, want 3", policy.episodes)
	}
	if len(comparator.names) != 1 || comparator.names[0] != "count" {
		t.Fatalf("comparator names %v", comparator.names)
	}
	if comparator.datasets[0].(int) != 12 {
		t.Fatalf("comparator dataset %v, want 12", comparator.datasets[0])
	}
}

func TestRunEpisodeRecordsRewards(t *testing.T) {
	env := &countEnv{n: 4}
	policy := &firstActionPolicy{}

	eCtx := NewEpisodeContext(context.Background())
	eCtx.Horizon = 100
	eCtx.Trace = NewTrace()

	go runEpisode(env, policy, eCtx)
	<-eCtx.Done()

	if eCtx.IsError() {
		t.Fatalf("unexpected error: %v", eCtx.Err())
	}
	if eCtx.Trace.Len() != 3 {
		t.Fatalf("trace length %d, want 3", eCtx.Trace.Len())
	}
	if eCtx.Trace.TotalReward() != 3 {
		t.Fatalf("total reward %.1f, want 3", eCtx.Trace.TotalReward())
	}
	if !eCtx.Trace.Last().Done {
		t.Fatalf("last transition not done")
	}
}

type failingPolicy struct {
	firstActionPolicy
	err error
}

func (p *failingPolicy) PickAction(_ *StepContext, _ State, _ []Action) (Action, error) {
	return nil, p.err
}

func TestRunEpisodeAbortsOnPolicyError(t *testing.T) {
	env := &countEnv{n: 4}
	wantErr := errors.New("broken policy")
	policy := &failingPolicy{err: wantErr}

	eCtx := NewEpisodeContext(context.Background())
	eCtx.Horizon = 100
	eCtx.Trace = NewTrace()

	go runEpisode(env, policy, eCtx)
	<-eCtx.Done()

	if !eCtx.IsError() {
		t.Fatalf("expected episode error")
	}
	if !errors.Is(eCtx.Err(), wantErr) {
		t.Fatalf("error %v, want %v", eCtx.Err(), wantErr)
	}
	if eCtx.Trace.Error() == nil {
		t.Fatalf("trace error not set")
	}
}

func TestHorizonCapsEpisodeLength(t *testing.T) {
	env := &countEnv{n: 1000}
	policy := &firstActionPolicy{}

	eCtx := NewEpisodeContext(context.Background())
	eCtx.Horizon = 7
	eCtx.Trace = NewTrace()

	go runEpisode(env, policy, eCtx)
	<-eCtx.Done()

	if eCtx.IsError() {
		t.Fatalf("unexpected error: %v", eCtx.Err())
	}
	if eCtx.Trace.Len() != 7 {
		t.Fatalf("trace length %d, want horizon 7", eCtx.Trace.Len())
	}
}
