// Package market holds historical price data and its on-disk layout.
package market

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmptySeries = errors.New("empty price series")

// Bar is one trading period. Only the close is used by the simulation.
type Bar struct {
	Date  time.Time
	Close float64
}

// Series is an immutable ordered sequence of per-period closing prices for
// one symbol, indexed 0..Len()-1. An environment owns its series for the
// lifetime of a run.
type Series struct {
	symbol string
	dates  []time.Time
	closes []float64
}

func NewSeries(symbol string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}
	s := &Series{
		symbol: symbol,
		dates:  make([]time.Time, len(bars)),
		closes: make([]float64, len(bars)),
	}
	for i, b := range bars {
		s.dates[i] = b.Date
		s.closes[i] = b.Close
	}
	return s, nil
}

func (s *Series) Symbol() string {
	return s.symbol
}

func (s *Series) Len() int {
	return len(s.closes)
}

// Close returns the closing price at step i. Callers are expected to stay
// within bounds; the environment enforces the episode boundary.
func (s *Series) Close(i int) float64 {
	if i < 0 || i >= len(s.closes) {
		panic(fmt.Sprintf("series index %d out of range [0,%d)", i, len(s.closes)))
	}
	return s.closes[i]
}

func (s *Series) Date(i int) time.Time {
	return s.dates[i]
}

// Closes returns a copy of the closing prices.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.closes))
	copy(out, s.closes)
	return out
}
