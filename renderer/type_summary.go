package renderer

import (
	"github.com/gabrielbitencourt/dofinance"
)

// Summary is the season summary report data.
type Summary struct {
	SeasonID       int
	InitialBalance dofinance.Money

	From Date
	To   Date
	Days int

	Current dofinance.Money

	// season-to-date totals from the latest record
	Tickets     dofinance.Money
	Sponsor     dofinance.Money
	Prizes      dofinance.Money
	Transfers   dofinance.Money
	Salaries    dofinance.Money
	Building    dofinance.Money
	Maintenance dofinance.Money
	Others      dofinance.Money

	// extracted recurring rates
	DailySponsor       dofinance.Money
	AvgHomeTickets     dofinance.Money
	AvgFriendlyTickets dofinance.Money
	LastMaintenance    dofinance.Money
	AverageOthers      dofinance.Money
}

// Date is the rendered form of a ledger date.
type Date = dofinance.Date

// NewSummary builds the summary report of a normalized season ledger as of
// the reference date.
func NewSummary(season dofinance.Season, ledger []dofinance.FinanceRecord, ref Date) *Summary {
	s := &Summary{
		SeasonID:       season.ID,
		InitialBalance: season.InitialBalance,
	}
	if len(ledger) == 0 {
		return s
	}
	latest := ledger[len(ledger)-1]
	s.From = ledger[0].Date
	s.To = latest.Date
	s.Days = len(ledger)
	s.Current = latest.Current
	s.Tickets = latest.Tickets
	s.Sponsor = latest.Sponsor
	s.Prizes = latest.Prizes
	s.Transfers = latest.Transfers
	s.Salaries = latest.TotalPlayersSalary + latest.TotalCoachesSalary
	s.Building = latest.Building
	s.Maintenance = latest.Maintenance
	s.Others = latest.Others

	s.DailySponsor = dofinance.DailySponsor(ledger, ref)
	s.AvgHomeTickets = dofinance.AverageTickets(ledger, ref, false)
	s.AvgFriendlyTickets = dofinance.AverageTickets(ledger, ref, true)
	s.LastMaintenance = dofinance.LastMaintenance(ledger, ref)
	s.AverageOthers = dofinance.AverageOthers(ledger, ref)
	return s
}
