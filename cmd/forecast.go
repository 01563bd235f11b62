package cmd

import (
	"github.com/spf13/cobra"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/experiments"
	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/market"
)

func ForecastCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Train with ARIMA forecasts substituted into the agent's price observations",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := market.ReadCSV(flags.DataPath, flags.Symbol)
			if err != nil {
				return err
			}

			cmp, err := experiments.PrepareForecastComparison(series, flags)
			if err != nil {
				return err
			}

			ctx, done := signalContext()
			defer done()

			cmp.Run(ctx, flags.NumRuns, flags.RunConfig(), flags.Parallelism)
			return nil
		},
	}
	return cmd
}
