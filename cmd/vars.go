package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/experiments"
)

var (
	flags            *experiments.Flags = experiments.DefaultFlags()
	symbol           string
	dataPath         string
	savePath         string
	strictAccounting bool
	baseline         bool
	parallelism      int

	hidden       int
	learningRate float64
	gamma        float64
	explore      bool
	epsilon      float64
	epsilonDecay float64
	epsilonMin   float64
	seed         uint64

	arP int
	arD int

	numRuns                int
	episodes               int
	horizon                int
	maxConsecutiveErrors   int
	maxConsecutiveTimeouts int
	episodeTimeout         int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&symbol, "symbol", flags.Symbol, "Ticker symbol")
	cmd.PersistentFlags().StringVar(&dataPath, "data", flags.DataPath, "Path to the date,close CSV file")
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().BoolVar(&strictAccounting, "strict-accounting", flags.StrictAccounting, "Reject trades the balance or position cannot cover")
	cmd.PersistentFlags().BoolVar(&baseline, "baseline", flags.Baseline, "Include a random-policy baseline experiment")
	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of experiment workers")

	cmd.PersistentFlags().IntVar(&hidden, "hidden", flags.Hidden, "Hidden layer width of the value network")
	cmd.PersistentFlags().Float64Var(&learningRate, "learning-rate", flags.LearningRate, "SGD learning rate")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", flags.Gamma, "Discount factor for the bootstrapped target")
	cmd.PersistentFlags().BoolVar(&explore, "explore", flags.Explore, "Enable epsilon-greedy exploration")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", flags.Epsilon, "Initial exploration probability")
	cmd.PersistentFlags().Float64Var(&epsilonDecay, "epsilon-decay", flags.EpsilonDecay, "Per-episode epsilon decay factor")
	cmd.PersistentFlags().Float64Var(&epsilonMin, "epsilon-min", flags.EpsilonMin, "Exploration probability floor")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", flags.Seed, "Seed for network init and exploration")

	cmd.PersistentFlags().IntVar(&arP, "ar-p", flags.ArP, "Autoregressive order of the forecast model")
	cmd.PersistentFlags().IntVar(&arD, "ar-d", flags.ArD, "Differencing order of the forecast model")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes per run")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Maximum steps per episode")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")
	cmd.PersistentFlags().IntVar(&maxConsecutiveTimeouts, "max-consecutive-timeouts", flags.MaxConsecutiveTimeouts, "Maximum number of consecutive timeouts")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds")
}

func UpdateFlags(cmd *cobra.Command) {
	persistent := cmd.Root().PersistentFlags()
	if v := os.Getenv("FINSEARCH_SYMBOL"); v != "" && !persistent.Changed("symbol") {
		symbol = v
	}
	if v := os.Getenv("FINSEARCH_DATA"); v != "" && !persistent.Changed("data") {
		dataPath = v
	}
	if v := os.Getenv("FINSEARCH_SAVE_PATH"); v != "" && !persistent.Changed("save-path") {
		savePath = v
	}

	flags.Symbol = symbol
	flags.DataPath = dataPath
	flags.SavePath = savePath
	flags.StrictAccounting = strictAccounting
	flags.Baseline = baseline
	flags.Parallelism = parallelism

	flags.Hidden = hidden
	flags.LearningRate = learningRate
	flags.Gamma = gamma
	flags.Explore = explore
	flags.Epsilon = epsilon
	flags.EpsilonDecay = epsilonDecay
	flags.EpsilonMin = epsilonMin
	flags.Seed = seed

	flags.ArP = arP
	flags.ArD = arD

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.MaxConsecutiveTimeouts = maxConsecutiveTimeouts
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second
}
