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

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	season int
	date   string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a season's finance summary" }
func (*summaryCmd) Usage() string {
	return `dof summary [-season <n>] [-d <date>]

  Displays a summary of the season's finances: current balance, season-to-date
  income and costs, and the recurring rates extracted from the records.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.season, "season", 0, "Season to report on. Defaults to the latest recorded season.")
	f.StringVar(&c.date, "d", "0d", "Reference date for the extracted rates. See 'dof topic dates'.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := dofinance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

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

	summary := renderer.NewSummary(season, ledger, on)
	printMarkdown(renderer.SummaryMarkdown(summary))

	return subcommands.ExitSuccess
}
