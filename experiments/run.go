package experiments

import (
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/analysis"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/approx"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/core"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/forecast"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/market"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/policies"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/trading"
)

// PrepareTrainingComparison runs the DQN agent over the price series,
// against a uniform-random baseline when enabled.
func PrepareTrainingComparison(series *market.Series, flags *Flags) *core.ParallelComparison {
	cmp := core.NewParallelComparison()
	envConstructor := trading.NewEnvironmentConstructor(series, envConfig(flags))

	addAnalyses(cmp, flags)

	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "DQN",
		Environment: envConstructor,
		Policy:      QPolicyConstructor(flags),
	})
	if flags.Baseline {
		cmp.AddExperiment(&core.ParallelExperiment{
			Name:        "Random",
			Environment: envConstructor,
			Policy:      &policies.RandomPolicyConstructor{},
		})
	}
	return cmp
}

// PrepareForecastComparison runs the same loop with the agent acting on
// ARIMA one-step-ahead forecasts substituted into the price slot of its
// observations. The plain DQN stays in the comparison as the control.
func PrepareForecastComparison(series *market.Series, flags *Flags) (*core.ParallelComparison, error) {
	model, err := forecast.Fit(series.Closes(), forecast.Config{P: flags.ArP, D: flags.ArD})
	if err != nil {
		return nil, err
	}
	source := forecast.NewStaticForecaster(model.OneStepAhead())

	cmp := core.NewParallelComparison()
	envConstructor := trading.NewEnvironmentConstructor(series, envConfig(flags))

	addAnalyses(cmp, flags)

	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "DQN-ARIMA",
		Environment: envConstructor,
		Policy: &trading.ForecastPolicyConstructor{
			Inner:  QPolicyConstructor(flags),
			Source: source,
		},
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "DQN",
		Environment: envConstructor,
		Policy:      QPolicyConstructor(flags),
	})
	return cmp, nil
}

// QPolicyConstructor wires the agent flags into a policy constructor.
func QPolicyConstructor(flags *Flags) core.PolicyConstructor {
	agent := flags.AgentFlags
	var newStrategy func() policies.Strategy
	if agent.Explore {
		newStrategy = func() policies.Strategy {
			return policies.NewEpsilonGreedy(agent.Epsilon, agent.EpsilonDecay, agent.EpsilonMin, agent.Seed)
		}
	}
	return policies.NewQPolicyConstructor(agent.Gamma, func() approx.Approximator {
		return approx.NewMLP(approx.MLPConfig{
			Inputs:       trading.StateSize,
			Hidden:       agent.Hidden,
			Outputs:      len(trading.Actions()),
			LearningRate: agent.LearningRate,
			Seed:         agent.Seed,
		})
	}, newStrategy)
}

func envConfig(flags *Flags) trading.Config {
	config := trading.DefaultConfig()
	config.StrictAccounting = flags.StrictAccounting
	return config
}

func addAnalyses(cmp *core.ParallelComparison, flags *Flags) {
	cmp.AddAnalysis("wealth",
		analysis.NewWealthAnalyzerConstructor(),
		analysis.NewWealthComparatorConstructor(flags.ResultPath()))
	cmp.AddAnalysis("errors",
		analysis.NewErrorAnalyzerConstructor(flags.ResultPath()),
		analysis.NewNoOpComparatorConstructor())
}
