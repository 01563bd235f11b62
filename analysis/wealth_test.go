package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/trading"
)

func episodeTrace(rewards []float64, final *trading.State) *core.Trace {
	trace := core.NewTrace()
	for i, r := range rewards {
		tr := &core.Transition{
			State:     &trading.State{},
			Action:    trading.Hold,
			Reward:    r,
			NextState: &trading.State{},
			Done:      i == len(rewards)-1,
		}
		if i == len(rewards)-1 {
			tr.NextState = final
		}
		trace.AddStep(tr)
	}
	return trace
}

func TestWealthAnalyzerAccumulates(t *testing.T) {
	a := NewWealthAnalyzer()
	eCtx := core.NewEpisodeContext(context.Background())

	a.Analyze(eCtx, episodeTrace([]float64{200, -100},
		&trading.State{Balance: 9000, SharesHeld: 100, NetWorth: 10100}))
	a.Analyze(eCtx, episodeTrace([]float64{50, 50, 50},
		&trading.State{Balance: 10150, SharesHeld: 0, NetWorth: 10150}))

	ds := a.DataSet().(*wealthDataset)
	if len(ds.EpisodeReward) != 2 {
		t.Fatalf("episodes recorded %d, want 2", len(ds.EpisodeReward))
	}
	if ds.EpisodeReward[0] != 100 || ds.EpisodeReward[1] != 150 {
		t.Fatalf("episode rewards %v", ds.EpisodeReward)
	}
	if ds.Timesteps[0] != 2 || ds.Timesteps[1] != 5 {
		t.Fatalf("cumulative timesteps %v", ds.Timesteps)
	}
	if ds.FinalNetWorth[0] != 10100 || ds.FinalNetWorth[1] != 10150 {
		t.Fatalf("final net worth %v", ds.FinalNetWorth)
	}
	if ds.FinalSharesHeld[0] != 100 || ds.FinalSharesHeld[1] != 0 {
		t.Fatalf("final shares %v", ds.FinalSharesHeld)
	}
}

func TestWealthAnalyzerSkipsFailedEpisodes(t *testing.T) {
	a := NewWealthAnalyzer()
	eCtx := core.NewEpisodeContext(context.Background())

	trace := episodeTrace([]float64{10}, &trading.State{NetWorth: 10010})
	trace.SetError(core.ErrInvalidAction)
	a.Analyze(eCtx, trace)

	ds := a.DataSet().(*wealthDataset)
	if len(ds.EpisodeReward) != 0 {
		t.Fatalf("failed episode recorded: %v", ds.EpisodeReward)
	}
}

func TestWealthAnalyzerReset(t *testing.T) {
	a := NewWealthAnalyzer()
	eCtx := core.NewEpisodeContext(context.Background())
	a.Analyze(eCtx, episodeTrace([]float64{10}, &trading.State{NetWorth: 10010}))
	a.Reset()

	ds := a.DataSet().(*wealthDataset)
	if len(ds.EpisodeReward) != 0 || len(ds.Timesteps) != 0 {
		t.Fatalf("reset did not clear dataset: %+v", ds)
	}
}

func TestWealthComparatorWritesDataset(t *testing.T) {
	dir := t.TempDir()
	a := NewWealthAnalyzer()
	eCtx := core.NewEpisodeContext(context.Background())
	a.Analyze(eCtx, episodeTrace([]float64{25}, &trading.State{NetWorth: 10025}))

	c := NewWealthComparator(dir)
	c.Compare([]string{"DQN"}, []core.DataSet{a.DataSet()})

	if _, err := os.Stat(filepath.Join(dir, "wealth.json")); err != nil {
		t.Fatalf("comparison file not written: %v", err)
	}
}
