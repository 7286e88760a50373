package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	file   string
	season int
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import daily finance snapshots from a JSONL file" }
func (*importCmd) Usage() string {
	return `dof import [-season <n>] [-f <file>]

  Reads daily finance snapshots (one JSON object per line) and stores them.
  A snapshot already recorded for the same day and server time is replaced,
  so re-importing an export is safe.

Usage Examples:
# Import from a file.
$ dof import -f finances.jsonl

# Import from stdin.
$ dof import < finances.jsonl
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "File to import. Defaults to stdin.")
	f.IntVar(&c.season, "season", 0, "Season to assign to records that carry none.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.file != "" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	records, err := dofinance.DecodeRecordsJSONL(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	for i := range records {
		if records[i].SeasonID == 0 {
			records[i].SeasonID = c.season
		}
		if records[i].SeasonID == 0 {
			fmt.Fprintf(os.Stderr, "Error: record %s carries no season, use -season\n", records[i].Date)
			return subcommands.ExitUsageError
		}
	}

	st, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	// Make sure every season referenced by the import exists.
	for _, rec := range records {
		if _, found, err := st.Season(ctx, rec.SeasonID); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading season %d: %v\n", rec.SeasonID, err)
			return subcommands.ExitFailure
		} else if !found {
			if err := st.PutSeason(ctx, dofinance.Season{ID: rec.SeasonID}); err != nil {
				fmt.Fprintf(os.Stderr, "Error declaring season %d: %v\n", rec.SeasonID, err)
				return subcommands.ExitFailure
			}
		}
	}

	if err := st.PutRecords(ctx, records...); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing snapshots: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully imported %d snapshots\n", len(records))
	return subcommands.ExitSuccess
}
