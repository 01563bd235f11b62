package cmd

import (
	"github.com/spf13/cobra"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/experiments"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/market"
)

func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the DQN agent on a close-price series",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := market.ReadCSV(flags.DataPath, flags.Symbol)
			if err != nil {
				return err
			}

			ctx, done := signalContext()
			defer done()

			cmp := experiments.PrepareTrainingComparison(series, flags)
			cmp.Run(ctx, flags.NumRuns, flags.RunConfig(), flags.Parallelism)
			return nil
		},
	}
	return cmd
}
