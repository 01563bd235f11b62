// Package experiments assembles environments, policies and analyzers into
// runnable comparisons.
package experiments

import (
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/util"
)

type Flags struct {
	RunID    string
	Symbol   string
	DataPath string
	SavePath string

	StrictAccounting bool
	Baseline         bool
	Parallelism      int

	AgentFlags
	ForecastFlags
	RunFlags
}

type AgentFlags struct {
	Hidden       int
	LearningRate float64
	Gamma        float64

	Explore      bool
	Epsilon      float64
	EpsilonDecay float64
	EpsilonMin   float64

	Seed uint64
}

type ForecastFlags struct {
	ArP int
	ArD int
}

type RunFlags struct {
	NumRuns                int
	Episodes               int
	Horizon                int
	MaxConsecutiveErrors   int
	MaxConsecutiveTimeouts int
	EpisodeTimeout         time.Duration
}

func DefaultFlags() *Flags {
	return &Flags{
		RunID:    uuid.NewString(),
		Symbol:   "AAPL",
		DataPath: "data.csv",
		SavePath: "results",

		StrictAccounting: false,
		Baseline:         true,
		Parallelism:      2,

		AgentFlags: AgentFlags{
			Hidden:       24,
			LearningRate: 1e-4,
			Gamma:        0.95,
			Explore:      false,
			Epsilon:      1.0,
			EpsilonDecay: 0.995,
			EpsilonMin:   0.01,
			Seed:         1,
		},
		ForecastFlags: ForecastFlags{
			ArP: 2,
			ArD: 1,
		},
		RunFlags: RunFlags{
			NumRuns:                1,
			Episodes:               100,
			Horizon:                10000,
			MaxConsecutiveErrors:   5,
			MaxConsecutiveTimeouts: 5,
			EpisodeTimeout:         60 * time.Second,
		},
	}
}

// ResultPath namespaces run artifacts under a fresh run identifier.
func (f *Flags) ResultPath() string {
	return path.Join(f.SavePath, f.RunID)
}

func (f *Flags) Record() {
	util.SaveJson(path.Join(f.ResultPath(), "config.json"), f)
}

func (f *Flags) RunConfig() *core.RunConfig {
	return &core.RunConfig{
		Episodes:                     f.Episodes,
		Horizon:                      f.Horizon,
		EpisodeTimeout:               f.EpisodeTimeout,
		ThresholdConsecutiveErrors:   f.MaxConsecutiveErrors,
		ThresholdConsecutiveTimeouts: f.MaxConsecutiveTimeouts,
	}
}
