package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/google/subcommands"
)

// seasonCmd holds the flags for the 'season' subcommand.
type seasonCmd struct {
	id      int
	balance int64
}

func (*seasonCmd) Name() string     { return "season" }
func (*seasonCmd) Synopsis() string { return "declare a season and its initial balance" }
func (*seasonCmd) Usage() string {
	return `dof season -id <season> [-balance <amount>]

  Declares a season in the database. Imported snapshots and forecasts refer
  to seasons by their number. Declaring an existing season updates its
  initial balance.
`
}

func (c *seasonCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Season number as shown in the game.")
	f.Int64Var(&c.balance, "balance", 0, "Club balance on the first day of the season.")
}

func (c *seasonCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -id is required and must be positive")
		return subcommands.ExitUsageError
	}

	st, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	season := dofinance.Season{ID: c.id, InitialBalance: dofinance.Money(c.balance)}
	if err := st.PutSeason(ctx, season); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving season: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Declared season %d with initial balance %s\n", season.ID, season.InitialBalance)
	return subcommands.ExitSuccess
}

// seasonsCmd lists the recorded seasons.
type seasonsCmd struct{}

func (*seasonsCmd) Name() string     { return "seasons" }
func (*seasonsCmd) Synopsis() string { return "list the recorded seasons" }
func (*seasonsCmd) Usage() string {
	return `dof seasons

  Lists all seasons in the database with their initial balance and the
  number of recorded days.
`
}

func (c *seasonsCmd) SetFlags(f *flag.FlagSet) {}

func (c *seasonsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	seasons, err := st.Seasons(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing seasons: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(seasons) == 0 {
		fmt.Println("No seasons recorded yet. Declare one with 'dof season -id <n>'.")
		return subcommands.ExitSuccess
	}

	md := "# Seasons\n\n| Season | Initial balance | Recorded days |\n|---|---|---|\n"
	for _, s := range seasons {
		records, err := st.RawRecords(ctx, s.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading season %d: %v\n", s.ID, err)
			return subcommands.ExitFailure
		}
		md += fmt.Sprintf("| %d | %s | %d |\n", s.ID, s.InitialBalance, len(records))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
