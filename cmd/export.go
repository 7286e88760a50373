package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	season int
	raw    bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a season's ledger as JSONL" }
func (*exportCmd) Usage() string {
	return `dof export [-season <n>] [-raw]

  Writes a season's daily snapshots to stdout, one JSON object per line.
  By default the ledger is repaired first (duplicates dropped, gaps filled,
  Monday costs realigned); -raw exports the records as recorded.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.season, "season", 0, "Season to export. Defaults to the latest recorded season.")
	f.BoolVar(&c.raw, "raw", false, "Export records as recorded, without repairing.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var records []dofinance.FinanceRecord
	if c.raw {
		records, err = st.RawRecords(ctx, season.ID)
	} else {
		records, err = loadLedger(ctx, st, season.ID)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := dofinance.EncodeRecordsJSONL(os.Stdout, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
