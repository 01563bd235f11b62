package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// FetchDaily downloads daily closes for a symbol from Yahoo Finance.
// Prices arrive as decimals and are rounded to cents before entering the
// float-valued simulation.
func FetchDaily(symbol string, start, end time.Time) (*Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	bars := make([]Bar, 0)
	for iter.Next() {
		b := iter.Bar()
		closePrice, _ := b.Close.Round(2).Float64()
		bars = append(bars, Bar{
			Date:  time.Unix(int64(b.Timestamp), 0).UTC(),
			Close: closePrice,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	return NewSeries(symbol, bars)
}

// SyntheticSeries builds a deterministic series for dry runs without network
// access: a geometric walk seeded from the symbol name.
func SyntheticSeries(symbol string, n int, start float64) (*Series, error) {
	if n <= 0 {
		return nil, ErrEmptySeries
	}
	bars := make([]Bar, n)
	price := decimal.NewFromFloat(start)
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := 0
	for _, c := range symbol {
		seed += int(c)
	}
	for i := 0; i < n; i++ {
		// small deterministic drift, cycles through +/- moves
		drift := decimal.NewFromFloat(float64((seed+i*7)%11-5) / 100.0)
		price = price.Add(price.Mul(drift))
		f, _ := price.Round(2).Float64()
		bars[i] = Bar{Date: day.AddDate(0, 0, i), Close: f}
	}
	return NewSeries(symbol, bars)
}
