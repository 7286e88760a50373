package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/gabrielbitencourt/dofinance/renderer"
	"github.com/google/subcommands"
)

// forecastCmd holds the flags for the 'forecast' subcommand.
type forecastCmd struct {
	season int
	date   string

	sponsor         int64
	homeTickets     int64
	friendlyTickets int64
	mondayExpenses  int64
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "project the club balance until the next season" }
func (*forecastCmd) Usage() string {
	return `dof forecast [-season <n>] [-d <date>] [override flags]

  Projects the club's balance day by day from the reference date until the
  start of the next season. Weekly costs post on Mondays, ticket income posts
  on home match days, the sponsor pays daily.

  Every rate is extracted from the season's records; the override flags
  replace individual rates to play out what-if scenarios.

Usage Examples:
# Forecast the current season.
$ dof forecast

# What if ticket income halves?
$ dof forecast -home-tickets 150000
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.season, "season", 0, "Season to forecast. Defaults to the latest recorded season.")
	f.StringVar(&c.date, "d", "0d", "Reference date to start the projection from. See 'dof topic dates'.")
	f.Int64Var(&c.sponsor, "sponsor", 0, "Override the daily sponsor income.")
	f.Int64Var(&c.homeTickets, "home-tickets", 0, "Override the average home match ticket income.")
	f.Int64Var(&c.friendlyTickets, "friendly-tickets", 0, "Override the average friendly ticket income.")
	f.Int64Var(&c.mondayExpenses, "monday-expenses", 0, "Override the weekly Monday expenses.")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := dofinance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	// Only flags the user actually set override the extracted rates.
	opts := dofinance.ForecastOptions{}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sponsor":
			opts.DailySponsor = moneyPtr(c.sponsor)
		case "home-tickets":
			opts.AverageHomeTickets = moneyPtr(c.homeTickets)
		case "friendly-tickets":
			opts.AverageFriendliesTickets = moneyPtr(c.friendlyTickets)
		case "monday-expenses":
			opts.MondayExpenses = moneyPtr(c.mondayExpenses)
		}
	})

	st, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	season, err := resolveSeason(ctx, st, c.season)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := loadLedger(ctx, st, season.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(ledger) == 0 {
		fmt.Fprintf(os.Stderr, "Error: season %d has no records to forecast from\n", season.ID)
		return subcommands.ExitFailure
	}

	calendar, err := LoadCalendar()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading season calendar: %v\n", err)
		return subcommands.ExitFailure
	}
	next, ok := calendar.NextStart(season.ID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no start date known for season %d, add it to %s\n", season.ID+1, *seasonsPath)
		return subcommands.ExitFailure
	}

	events, err := st.Events(ctx, season.ID, dofinance.EventMatch, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading events: %v\n", err)
		return subcommands.ExitFailure
	}

	simulated := dofinance.Forecast(ledger, events, on, next, opts)
	report := renderer.NewForecast(season.ID, simulated, next)
	printMarkdown(renderer.ForecastMarkdown(report))

	return subcommands.ExitSuccess
}

func moneyPtr(v int64) *dofinance.Money {
	m := dofinance.Money(v)
	return &m
}
