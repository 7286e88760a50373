package dofinance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDateGap reports a data-integrity fault between two consecutive
// snapshots: their dates are out of order or not a whole number of days
// apart. Normalization continues past the fault on a best-effort basis and
// returns it (possibly joined with others) alongside the partial result.
var ErrDateGap = errors.New("unexpected gap between snapshot dates")

// Normalize turns raw snapshots of one season into a dense ledger with one
// record per covered calendar day. It sorts and deduplicates the snapshots,
// fills interior gaps where the sponsor income proves the days were
// uneventful, and realigns weekly costs onto their true Monday.
//
// The input is never modified. On a date-gap fault the returned ledger is
// the best-effort remainder and the error wraps ErrDateGap.
func Normalize(records []FinanceRecord) ([]FinanceRecord, error) {
	recs := Dedup(SortRecords(records))
	filled, err := FillGaps(recs)
	return RealignMondays(filled), err
}

// Dedup collapses same-day snapshots, keeping only the chronologically
// latest one for each date. The input must be sorted; the result is a new
// slice.
func Dedup(records []FinanceRecord) []FinanceRecord {
	out := make([]FinanceRecord, 0, len(records))
	for i, rec := range records {
		if i+1 < len(records) && records[i+1].Date == rec.Date {
			// a later snapshot exists for the same day, drop this one.
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FillGaps synthesizes records for skipped days between consecutive
// snapshots, but only when the sponsor change over the gap matches the
// season's daily sponsor rate exactly: that proves nothing else happened on
// the skipped days. Current and Sponsor are linearly interpolated; every
// other field is carried from the earlier endpoint. Gaps that fail the
// check are left unfilled.
//
// The input must be sorted and deduplicated. Date anomalies are reported
// as errors wrapping ErrDateGap while processing continues.
func FillGaps(records []FinanceRecord) ([]FinanceRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}
	var errs error
	dailyMode := DailySponsor(records, records[len(records)-1].Date)

	out := make([]FinanceRecord, 0, len(records))
	for i := 0; i < len(records)-1; i++ {
		info, next := records[i], records[i+1]
		out = append(out, info)

		diff, exact := daysBetween(info.Date, next.Date)
		if !exact || diff < 0 {
			errs = errors.Join(errs, fmt.Errorf("%w: %s to %s", ErrDateGap, info.Date, next.Date))
			continue
		}
		if diff <= 1 {
			continue
		}
		if next.Sponsor-info.Sponsor != dailyMode*Money(diff) {
			// something else moved during the gap, leave it unfilled.
			continue
		}
		for k := 1; k < diff; k++ {
			rec := info
			rec.Date = info.Date.Add(k)
			rec.Current = lerp(info.Current, next.Current, k, diff)
			rec.Sponsor = lerp(info.Sponsor, next.Sponsor, k, diff)
			out = append(out, rec)
		}
	}
	// the final snapshot is always kept unchanged, never extrapolated past.
	out = append(out, records[len(records)-1])
	return out, errs
}

// lerp linearly interpolates between a and b at step k of n, rounded to the
// nearest whole amount.
func lerp(a, b Money, k, n int) Money {
	span := decimal.NewFromInt(int64(b - a))
	step := span.Mul(decimal.NewFromInt(int64(k))).Div(decimal.NewFromInt(int64(n)))
	return a + Money(step.Round(0).IntPart())
}

// RealignMondays moves weekly cost postings back to their true Monday.
// Weekly costs (salaries, maintenance, sundries) are posted every Monday,
// but a crawl can attribute the step to a later day. For every interior
// Monday whose weekly-cost sum still equals the previous day's, the first
// later record with a different sum supplies the corrected fields, and the
// balance of each realigned day is adjusted by the step so it stays
// internally consistent.
//
// The input is left untouched; a corrected copy is returned.
func RealignMondays(records []FinanceRecord) []FinanceRecord {
	out := make([]FinanceRecord, len(records))
	copy(out, records)

	for i := 1; i < len(out)-1; i++ {
		if out[i].Date.Weekday() != time.Monday {
			continue
		}
		if out[i].WeeklyCosts() != out[i-1].WeeklyCosts() {
			continue // the deduction already shows up, nothing to realign.
		}
		// scan forward to the day the step-change actually appeared.
		k := i + 1
		for k < len(out) && out[k].WeeklyCosts() == out[i].WeeklyCosts() {
			k++
		}
		if k == len(out) {
			continue // the posting never showed up, leave the tail alone.
		}
		for j := i; j < k; j++ {
			old := out[j].WeeklyCosts()
			out[j].TotalPlayersSalary = out[k].TotalPlayersSalary
			out[j].TotalCoachesSalary = out[k].TotalCoachesSalary
			out[j].Others = out[k].Others
			out[j].Maintenance = out[k].Maintenance
			out[j].Current += old - out[j].WeeklyCosts()
		}
	}
	return out
}
