package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/google/subcommands"
)

// syncCmd holds the flags for the 'sync' subcommand.
type syncCmd struct {
	season int
	file   string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "synchronize a season's ledger through a shared file" }
func (*syncCmd) Usage() string {
	return `dof sync [-season <n>] [-f <file>]

  Synchronizes the season's ledger with a shared sync file using the compact
  text encoding. The most recently written side wins: a newer remote replaces
  the local records, otherwise the local records are published.

  Point -f (or DOF_SYNC_FILE) at a file in any synchronized folder
  (Dropbox, Drive, Syncthing) to share the ledger between machines.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.season, "season", 0, "Season to synchronize. Defaults to the latest recorded season.")
	f.StringVar(&c.file, "f", cfg.SyncFile, "Sync file shared between machines.")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	syncer := &dofinance.Syncer{
		Store:     st,
		Transport: &dofinance.FileTransport{Path: c.file},
	}
	if err := syncer.Sync(ctx, season.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error synchronizing season %d: %v\n", season.ID, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully synchronized season %d with %s\n", season.ID, c.file)
	return subcommands.ExitSuccess
}
