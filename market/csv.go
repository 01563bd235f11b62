package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ReadCSV loads a series from a flat tabular file with a "date,close"
// header, one row per trading period.
func ReadCSV(path, symbol string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, ErrEmptySeries
	}
	header := records[0]
	if len(header) < 2 || header[0] != "date" || header[1] != "close" {
		return nil, fmt.Errorf("%s: expected header \"date,close\", got %v", path, header)
	}

	bars := make([]Bar, 0, len(records)-1)
	for i, rec := range records[1:] {
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q: %w", path, i+1, rec[0], err)
		}
		closePrice, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad close %q: %w", path, i+1, rec[1], err)
		}
		bars = append(bars, Bar{Date: date, Close: closePrice})
	}
	return NewSeries(symbol, bars)
}

// WriteCSV persists the series in the same "date,close" layout ReadCSV
// expects.
func WriteCSV(path string, s *Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"date", "close"}); err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		rec := []string{
			s.Date(i).Format(dateLayout),
			strconv.FormatFloat(s.Close(i), 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
