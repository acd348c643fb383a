// Package aggregate derives the dashboard's load-time numbers from the source
// tables: the four case counters and the day-by-day confirmed series.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Rate precision used for the summary percentages.
const ratePlaces = 2

// Counters is a snapshot of the individual records taken at load time.
type Counters struct {
	Total     int `json:"total"`
	Recovered int `json:"recovered"`
	Deceased  int `json:"deceased"`
	Active    int `json:"active"`
}

// Compute counts records by status. Active is derived, never counted, so
// Active == Total-Recovered-Deceased holds for every input including nil.
func Compute(records []model.IndividualRecord) Counters {
	var c Counters
	c.Total = len(records)
	for _, r := range records {
		switch r.Status {
		case model.StatusRecovered:
			c.Recovered++
		case model.StatusDeceased:
			c.Deceased++
		}
	}
	c.Active = c.Total - c.Recovered - c.Deceased
	return c
}

// RecoveryRate is Recovered as a percentage of Total, 0 when Total is 0.
func (c Counters) RecoveryRate() decimal.Decimal {
	return percent(c.Recovered, c.Total)
}

// FatalityRate is Deceased as a percentage of Total, 0 when Total is 0.
func (c Counters) FatalityRate() decimal.Decimal {
	return percent(c.Deceased, c.Total)
}

func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), ratePlaces)
}

// SeriesMode selects how the state time series becomes one line.
type SeriesMode string

const (
	// SeriesAggregate sums Confirmed per date across states.
	SeriesAggregate SeriesMode = "aggregate"
	// SeriesRows keeps every row as a point, in file order.
	SeriesRows SeriesMode = "rows"
)

// ParseSeriesMode accepts "aggregate" and "rows", case-insensitively.
func ParseSeriesMode(v string) (SeriesMode, error) {
	switch m := SeriesMode(strings.ToLower(strings.TrimSpace(v))); m {
	case SeriesAggregate, SeriesRows:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeriesMode, v)
	}
}

// Series is the x/y data of the confirmed-cases line.
type Series struct {
	Dates     []string
	Confirmed []int
}

// DailyConfirmed builds the line chart series. In aggregate mode dates keep
// the order in which they first appear in the table.
func DailyConfirmed(rows []model.StateTimeSeriesRow, mode SeriesMode) Series {
	if mode == SeriesRows {
		s := Series{
			Dates:     make([]string, len(rows)),
			Confirmed: make([]int, len(rows)),
		}
		for i, r := range rows {
			s.Dates[i] = r.Date
			s.Confirmed[i] = r.Confirmed
		}
		return s
	}

	index := make(map[string]int, len(rows))
	var s Series
	for _, r := range rows {
		i, ok := index[r.Date]
		if !ok {
			i = len(s.Dates)
			index[r.Date] = i
			s.Dates = append(s.Dates, r.Date)
			s.Confirmed = append(s.Confirmed, 0)
		}
		s.Confirmed[i] += r.Confirmed
	}
	return s
}
