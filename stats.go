package dofinance

import (
	"time"

	"github.com/shopspring/decimal"
)

// This file contains the statistics extracted from historical deltas.
// Every statistic is restricted to records on or before a reference date so
// that simulated future records can never leak back into the estimates.

// Delta is the day-over-day change of one or more fields, attributed to the
// date of the later record.
type Delta struct {
	Date  Date
	Value Money
}

// field selectors used to build deltas.
var (
	fieldSponsor     = func(r *FinanceRecord) Money { return r.Sponsor }
	fieldTickets     = func(r *FinanceRecord) Money { return r.Tickets }
	fieldMaintenance = func(r *FinanceRecord) Money { return r.Maintenance }
	fieldOthers      = func(r *FinanceRecord) Money { return r.Others }
)

// upTo returns the prefix of chronologically sorted records whose date is on
// or before ref.
func upTo(records []FinanceRecord, ref Date) []FinanceRecord {
	for i, r := range records {
		if r.Date.After(ref) {
			return records[:i]
		}
	}
	return records
}

// Deltas computes, for every consecutive pair of records, the change of the
// summed fields. The first record has no delta, so the result holds one
// entry less than the input.
func Deltas(records []FinanceRecord, fields ...func(*FinanceRecord) Money) []Delta {
	if len(records) < 2 {
		return nil
	}
	deltas := make([]Delta, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		var v Money
		for _, f := range fields {
			v += f(&records[i]) - f(&records[i-1])
		}
		deltas = append(deltas, Delta{Date: records[i].Date, Value: v})
	}
	return deltas
}

// DailySponsor estimates the steady per-day sponsorship income as the
// statistical mode of observed sponsor deltas. It returns 0 when no deltas
// exist.
func DailySponsor(records []FinanceRecord, ref Date) Money {
	deltas := Deltas(upTo(records, ref), fieldSponsor)
	if len(deltas) == 0 {
		return 0
	}
	counts := make(map[Money]int, len(deltas))
	var mode Money
	best := 0
	for _, d := range deltas {
		counts[d.Value]++
		// strictly greater keeps the first-seen value on ties.
		if counts[d.Value] > best {
			best = counts[d.Value]
			mode = d.Value
		}
	}
	return mode
}

// AverageTickets estimates ticket income per match day as the rounded mean
// of nonzero ticket deltas. Mondays model friendly-match income, other days
// model home-match income. It returns 0 when no qualifying deltas exist.
func AverageTickets(records []FinanceRecord, ref Date, onMonday bool) Money {
	var sum Money
	var n int64
	for _, d := range Deltas(upTo(records, ref), fieldTickets) {
		if d.Value == 0 {
			continue
		}
		if (d.Date.Weekday() == time.Monday) != onMonday {
			continue
		}
		sum += d.Value
		n++
	}
	return roundedMean(sum, n)
}

// LastMaintenance returns the weekly stadium maintenance cost, the negative
// of the most recent nonzero maintenance delta. It returns 0 when none exist.
func LastMaintenance(records []FinanceRecord, ref Date) Money {
	deltas := Deltas(upTo(records, ref), fieldMaintenance)
	for i := len(deltas) - 1; i >= 0; i-- {
		if deltas[i].Value != 0 {
			return -deltas[i].Value
		}
	}
	return 0
}

// AverageOthers returns the rounded mean of nonzero "others" deltas, or 0
// when none exist.
func AverageOthers(records []FinanceRecord, ref Date) Money {
	var sum Money
	var n int64
	for _, d := range Deltas(upTo(records, ref), fieldOthers) {
		if d.Value == 0 {
			continue
		}
		sum += d.Value
		n++
	}
	return roundedMean(sum, n)
}

// roundedMean returns sum/n rounded to the nearest whole amount, or 0 when
// there is nothing to average.
func roundedMean(sum Money, n int64) Money {
	if n == 0 {
		return 0
	}
	mean := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(n)).Round(0)
	return Money(mean.IntPart())
}
