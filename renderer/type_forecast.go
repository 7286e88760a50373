package renderer

import (
	"time"

	"github.com/gabrielbitencourt/dofinance"
)

// Forecast is the forecast report data.
type Forecast struct {
	SeasonID        int
	Reference       Date
	NextSeasonStart Date

	Rows []ForecastRow

	FinalBalance dofinance.Money
	LowestPoint  dofinance.Money
	LowestDate   Date
}

// ForecastRow is one simulated day. Quiet days (no posting, no match) are
// collapsed out of the report.
type ForecastRow struct {
	Date    Date
	Weekday time.Weekday
	Balance dofinance.Money
	Change  dofinance.Money
}

// NewForecast builds the forecast report from simulated records. The first
// simulated record duplicates the reference and only anchors the deltas.
func NewForecast(seasonID int, simulated []dofinance.FinanceRecord, nextSeasonStart Date) *Forecast {
	f := &Forecast{SeasonID: seasonID, NextSeasonStart: nextSeasonStart}
	if len(simulated) == 0 {
		return f
	}
	f.Reference = simulated[0].Date
	f.LowestPoint = simulated[0].Current
	f.LowestDate = simulated[0].Date

	last := simulated[0]
	for _, rec := range simulated[1:] {
		change := rec.Current - last.Current
		if rec.Date.Weekday() == time.Monday || rec.Tickets != last.Tickets {
			f.Rows = append(f.Rows, ForecastRow{
				Date:    rec.Date,
				Weekday: rec.Date.Weekday(),
				Balance: rec.Current,
				Change:  change,
			})
		}
		if rec.Current < f.LowestPoint {
			f.LowestPoint = rec.Current
			f.LowestDate = rec.Date
		}
		last = rec
	}
	f.FinalBalance = last.Current
	return f
}
