package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/market"
)

func FetchCommand() *cobra.Command {
	var (
		start     string
		end       string
		synthetic int
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download daily closes to the date,close CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				series *market.Series
				err    error
			)
			if synthetic > 0 {
				series, err = market.SyntheticSeries(flags.Symbol, synthetic, 100)
			} else {
				var startDate, endDate time.Time
				startDate, err = time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("bad start date %q: %w", start, err)
				}
				endDate, err = time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("bad end date %q: %w", end, err)
				}
				series, err = market.FetchDaily(flags.Symbol, startDate, endDate)
			}
			if err != nil {
				return err
			}
			if err := market.WriteCSV(flags.DataPath, series); err != nil {
				return err
			}
			fmt.Printf("wrote %d rows for %s to %s\n", series.Len(), series.Symbol(), flags.DataPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "2018-01-01", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "2020-01-01", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&synthetic, "synthetic", 0, "Generate this many synthetic rows instead of fetching")
	return cmd
}
