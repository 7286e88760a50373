package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	season int
	addr   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the season's match calendar from the game" }
func (*fetchCmd) Usage() string {
	return `dof fetch [-season <n>] [-addr <url>]

  Downloads the season's event calendar from the game and stores the events.
  Forecasts use the stored home matches to project ticket income.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.season, "season", 0, "Season to fetch. Defaults to the latest recorded season.")
	f.StringVar(&c.addr, "addr", cfg.DugoutURL, "Base URL of the game server.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	events, err := dofinance.FetchCalendar(c.addr, season.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching calendar: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := st.PutEvents(ctx, events...); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing events: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully fetched %d events for season %d\n", len(events), season.ID)
	return subcommands.ExitSuccess
}
