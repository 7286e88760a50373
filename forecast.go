package dofinance

import "time"

// ForecastOptions are operator overrides for the projected rates. Nil
// fields fall back to the values extracted from history.
type ForecastOptions struct {
	DailySponsor             *Money
	AverageHomeTickets       *Money
	AverageFriendliesTickets *Money
	MondayExpenses           *Money
}

// Forecast simulates the remainder of a season, one record per day, from
// the last known snapshot up to (and excluding) the next season's start.
//
// history must be the normalized ledger; records after referenceDate are
// ignored. events supplies the match calendar; only competitive home
// matches schedule ticket income. The first returned record duplicates the
// reference snapshot, so callers typically drop it.
//
// Rates with no model (building, transfers, prizes, weekly salary rates)
// are carried forward unchanged. Every Monday the weekly postings are
// replayed: salaries and maintenance accrue at their constant weekly rates,
// sundries and friendly ticket income at their historical averages. Every
// other day, sponsor income accrues at its daily rate and competitive home
// matches add the average home gate.
func Forecast(history []FinanceRecord, events []CalendarEvent, referenceDate, nextSeasonStart Date, opts ForecastOptions) []FinanceRecord {
	past := upTo(history, referenceDate)
	if len(past) == 0 {
		return nil
	}
	reference := past[len(past)-1]
	if !reference.Date.Before(nextSeasonStart) {
		return nil
	}

	sponsor := orStat(opts.DailySponsor, func() Money { return DailySponsor(past, referenceDate) })
	home := orStat(opts.AverageHomeTickets, func() Money { return AverageTickets(past, referenceDate, false) })
	friendlies := orStat(opts.AverageFriendliesTickets, func() Money { return AverageTickets(past, referenceDate, true) })
	maintenance := LastMaintenance(past, referenceDate)
	others := AverageOthers(past, referenceDate)
	mondayExpenses := orStat(opts.MondayExpenses, func() Money {
		return reference.CurrentPlayersSalary + reference.CurrentCoachesSalary + maintenance - others
	})

	homeDays := HomeMatchDays(events)

	// the first simulated day coincides with the reference and must not
	// double-count income already present in it.
	out := []FinanceRecord{reference}
	last := reference
	for d := reference.Date.Add(1); d.Before(nextSeasonStart); d = d.Add(1) {
		rec := last
		rec.Date = d
		rec.ServerTime = ""
		rec.Current += sponsor
		rec.Sponsor += sponsor
		switch {
		case d.Weekday() == time.Monday:
			rec.TotalPlayersSalary -= rec.CurrentPlayersSalary
			rec.TotalCoachesSalary -= rec.CurrentCoachesSalary
			rec.Maintenance -= maintenance
			rec.Others += others
			rec.Tickets += friendlies
			rec.Current -= mondayExpenses - friendlies
		case homeDays[d]:
			rec.Tickets += home
			rec.Current += home
		}
		out = append(out, rec)
		last = rec
	}
	return out
}

// orStat returns the override when set, the extracted statistic otherwise.
func orStat(override *Money, stat func() Money) Money {
	if override != nil {
		return *override
	}
	return stat()
}
