// Package forecast fits autoregressive models to price series and produces
// the predicted closes fed into forecast-conditioned trading runs.
package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrNotEnoughData = errors.New("not enough observations to fit model")

// Config selects an ARIMA(p,d,0) model: p autoregressive lags over the
// d-times differenced series, no moving-average terms.
type Config struct {
	P int
	D int
}

func DefaultConfig() Config {
	return Config{P: 2, D: 1}
}

// Model holds AR coefficients estimated by ordinary least squares together
// with the training series and its difference tables.
type Model struct {
	config    Config
	phi       []float64
	intercept float64

	// diffs[k] is the k-th difference of the training series; diffs[k][i]
	// is the value at time i+k.
	diffs [][]float64
}

// Fit estimates the AR coefficients of the d-differenced series by least
// squares.
func Fit(series []float64, config Config) (*Model, error) {
	if config.P < 1 || config.D < 0 {
		return nil, fmt.Errorf("invalid order p=%d d=%d", config.P, config.D)
	}
	if len(series) < 2*config.P+config.D+1 {
		return nil, fmt.Errorf("%d observations for p=%d d=%d: %w", len(series), config.P, config.D, ErrNotEnoughData)
	}

	diffs := differenceTables(series, config.D)
	y := diffs[config.D]
	p := config.P

	rows := len(y) - p
	x := mat.NewDense(rows, p+1, nil)
	b := mat.NewDense(rows, 1, nil)
	for t := 0; t < rows; t++ {
		x.Set(t, 0, 1)
		for lag := 1; lag <= p; lag++ {
			x.Set(t, lag, y[t+p-lag])
		}
		b.Set(t, 0, y[t+p])
	}

	var qr mat.QR
	qr.Factorize(x)
	coef := mat.NewDense(p+1, 1, nil)
	if err := qr.SolveTo(coef, false, b); err != nil {
		// an ill-conditioned system still yields a usable least-squares
		// solution; anything else is fatal
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("least squares solve: %w", err)
		}
	}

	m := &Model{
		config:    config,
		intercept: coef.At(0, 0),
		phi:       make([]float64, p),
		diffs:     diffs,
	}
	for i := 0; i < p; i++ {
		m.phi[i] = coef.At(i+1, 0)
	}
	return m, nil
}

// Coefficients returns the intercept and AR coefficients, most recent lag
// first.
func (m *Model) Coefficients() (float64, []float64) {
	phi := make([]float64, len(m.phi))
	copy(phi, m.phi)
	return m.intercept, phi
}

// OneStepAhead returns in-sample one-step-ahead forecasts of the price
// level, aligned with the training series. The first p+d entries repeat the
// actual values since the model has no history to predict them from.
func (m *Model) OneStepAhead() []float64 {
	p, d := m.config.P, m.config.D
	levels := m.diffs[0]
	y := m.diffs[d]
	out := make([]float64, len(levels))

	for t := 0; t < len(levels); t++ {
		if t < p+d {
			out[t] = levels[t]
			continue
		}
		// predicted d-th difference at time t
		j := t - d
		pred := m.intercept
		for lag := 1; lag <= p; lag++ {
			pred += m.phi[lag-1] * y[j-lag]
		}
		// integrate back to the level using the known history at t-1
		for k := d - 1; k >= 0; k-- {
			pred += m.diffs[k][t-1-k]
		}
		out[t] = pred
	}
	return out
}

// Forecast extrapolates h steps past the end of the training series,
// feeding each predicted difference back into the AR recursion.
func (m *Model) Forecast(h int) []float64 {
	p, d := m.config.P, m.config.D
	y := append([]float64(nil), m.diffs[d]...)

	// last known value of each difference order
	last := make([]float64, d+1)
	for k := 0; k <= d; k++ {
		last[k] = m.diffs[k][len(m.diffs[k])-1]
	}

	out := make([]float64, h)
	for i := 0; i < h; i++ {
		pred := m.intercept
		for lag := 1; lag <= p; lag++ {
			pred += m.phi[lag-1] * y[len(y)-lag]
		}
		y = append(y, pred)

		last[d] = pred
		for k := d - 1; k >= 0; k-- {
			last[k] += last[k+1]
		}
		out[i] = last[0]
	}
	return out
}

// StaticForecaster serves precomputed per-step forecasts. It satisfies the
// trading package's Forecaster contract.
type StaticForecaster struct {
	values []float64
}

func NewStaticForecaster(values []float64) *StaticForecaster {
	out := make([]float64, len(values))
	copy(out, values)
	return &StaticForecaster{values: out}
}

func (s *StaticForecaster) Forecast(step int) (float64, bool) {
	if step < 0 || step >= len(s.values) {
		return 0, false
	}
	return s.values[step], true
}

func differenceTables(series []float64, d int) [][]float64 {
	diffs := make([][]float64, d+1)
	diffs[0] = append([]float64(nil), series...)
	for k := 1; k <= d; k++ {
		prev := diffs[k-1]
		cur := make([]float64, len(prev)-1)
		for i := range cur {
			cur[i] = prev[i+1] - prev[i]
		}
		diffs[k] = cur
	}
	return diffs
}
