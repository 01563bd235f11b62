package analysis

import (
	"fmt"
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/trading"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/util"
)

type wealthDataset struct {
	Timesteps       []int
	EpisodeReward   []float64
	FinalNetWorth   []float64
	FinalBalance    []float64
	FinalSharesHeld []int
}

func (w *wealthDataset) Copy() *wealthDataset {
	return &wealthDataset{
		Timesteps:       util.CopyIntSlice(w.Timesteps),
		EpisodeReward:   util.CopyFloatSlice(w.EpisodeReward),
		FinalNetWorth:   util.CopyFloatSlice(w.FinalNetWorth),
		FinalBalance:    util.CopyFloatSlice(w.FinalBalance),
		FinalSharesHeld: util.CopyIntSlice(w.FinalSharesHeld),
	}
}

// WealthAnalyzer records, per completed episode, the cumulative timesteps,
// the total reward and the final portfolio snapshot.
type WealthAnalyzer struct {
	dataset      *wealthDataset
	lastTimeStep int
}

var _ core.Analyzer = &WealthAnalyzer{}

func NewWealthAnalyzer() *WealthAnalyzer {
	return &WealthAnalyzer{
		dataset: newWealthDataset(),
	}
}

func newWealthDataset() *wealthDataset {
	return &wealthDataset{
		Timesteps:       make([]int, 0),
		EpisodeReward:   make([]float64, 0),
		FinalNetWorth:   make([]float64, 0),
		FinalBalance:    make([]float64, 0),
		FinalSharesHeld: make([]int, 0),
	}
}

func (w *WealthAnalyzer) Reset() {
	w.dataset = newWealthDataset()
	w.lastTimeStep = 0
}

func (w *WealthAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	if trace.Len() == 0 || trace.Error() != nil {
		return
	}
	last := trace.Last()
	final, ok := last.NextState.(*trading.State)
	if !ok {
		return
	}

	w.lastTimeStep += trace.Len()
	w.dataset.Timesteps = append(w.dataset.Timesteps, w.lastTimeStep)
	w.dataset.EpisodeReward = append(w.dataset.EpisodeReward, trace.TotalReward())
	w.dataset.FinalNetWorth = append(w.dataset.FinalNetWorth, final.NetWorth)
	w.dataset.FinalBalance = append(w.dataset.FinalBalance, final.Balance)
	w.dataset.FinalSharesHeld = append(w.dataset.FinalSharesHeld, final.SharesHeld)
}

func (w *WealthAnalyzer) DataSet() core.DataSet {
	return w.dataset.Copy()
}

type WealthAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &WealthAnalyzerConstructor{}

func NewWealthAnalyzerConstructor() *WealthAnalyzerConstructor {
	return &WealthAnalyzerConstructor{}
}

func (w *WealthAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewWealthAnalyzer()
}

// WealthComparator writes the per-experiment datasets to JSON and prints a
// mean and standard deviation summary of the final net worth.
type WealthComparator struct {
	savePath string
}

var _ core.Comparator = &WealthComparator{}

func NewWealthComparator(savePath string) *WealthComparator {
	return &WealthComparator{
		savePath: path.Join(savePath, "wealth.json"),
	}
}

func (w *WealthComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]*wealthDataset)
	for i, name := range experimentNames {
		ds, ok := datasets[i].(*wealthDataset)
		if !ok {
			continue
		}
		out[name] = ds
		if len(ds.FinalNetWorth) > 0 {
			mean := stat.Mean(ds.FinalNetWorth, nil)
			stddev := stat.StdDev(ds.FinalNetWorth, nil)
			fmt.Printf("%s: episodes %d, final net worth mean %.2f, stddev %.2f\n",
				name, len(ds.FinalNetWorth), mean, stddev)
		}
	}

	util.SaveJson(w.savePath, out)
}

type WealthComparatorConstructor struct {
	savePath string
}

var _ core.ComparatorConstructor = &WealthComparatorConstructor{}

func NewWealthComparatorConstructor(savePath string) *WealthComparatorConstructor {
	return &WealthComparatorConstructor{
		savePath: savePath,
	}
}

func (w *WealthComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewWealthComparator(path.Join(w.savePath, strconv.Itoa(run)))
}
