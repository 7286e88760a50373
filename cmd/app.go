// Package cmd implements the CLI application to manage a club's finances.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/gabrielbitencourt/dofinance"
	"github.com/gabrielbitencourt/dofinance/store"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application.
// A main package ranges over it and Register()s each one.
var Commands = []subcommands.Command{
	&seasonCmd{},
	&seasonsCmd{},
	&importCmd{},
	&exportCmd{},
	&fetchCmd{},
	&summaryCmd{},
	&forecastCmd{},
	&syncCmd{},
	&topicCmd{},
	&assistCmd{},
}

// config carries the application defaults, overridable from the environment.
type config struct {
	Store     string `env:"DOF_STORE" envDefault:"dof.db"`
	Seasons   string `env:"DOF_SEASONS" envDefault:"seasons.yaml"`
	SyncFile  string `env:"DOF_SYNC_FILE" envDefault:"dof.sync"`
	DugoutURL string `env:"DOF_DUGOUT_URL" envDefault:"https://www.dugout-online.com"`
}

func loadConfig() config {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		log.Println("warning, could not parse environment:", err)
	}
	return cfg
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = loadConfig()

var storePath = flag.String("store", cfg.Store, "Path to the finance database file (SQLite)")
var seasonsPath = flag.String("seasons", cfg.Seasons, "Path to the season calendar file (YAML)")

// OpenStore is the central function to open the finance database.
func OpenStore() (*store.Store, error) {
	return store.Open(*storePath)
}

// LoadCalendar reads the season calendar from the app seasons path. A missing
// file is an empty calendar: forecasts will refuse to run until season starts
// are declared.
func LoadCalendar() (dofinance.SeasonCalendar, error) {
	calendar, err := dofinance.LoadSeasonCalendar(*seasonsPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, season calendar does not exist, using an empty calendar instead")
		return dofinance.NewSeasonCalendar(nil), nil
	}
	return calendar, err
}

// resolveSeason picks the season to operate on: the explicit flag value, or
// the latest recorded season when the flag is 0.
func resolveSeason(ctx context.Context, st *store.Store, id int) (dofinance.Season, error) {
	if id != 0 {
		season, found, err := st.Season(ctx, id)
		if err != nil {
			return dofinance.Season{}, err
		}
		if !found {
			return dofinance.Season{}, fmt.Errorf("season %d is not recorded, declare it first with 'season'", id)
		}
		return season, nil
	}
	seasons, err := st.Seasons(ctx)
	if err != nil {
		return dofinance.Season{}, err
	}
	if len(seasons) == 0 {
		return dofinance.Season{}, fmt.Errorf("no seasons recorded yet, declare one first with 'season'")
	}
	return seasons[len(seasons)-1], nil
}

// loadLedger reads a season's records and repairs them. Gap faults do not
// abort: the repaired ledger is reported with a warning.
func loadLedger(ctx context.Context, st *store.Store, seasonID int) ([]dofinance.FinanceRecord, error) {
	raw, err := st.RawRecords(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger for season %d: %w", seasonID, err)
	}
	ledger, err := dofinance.Normalize(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ledger for season %d has unrepairable gaps: %v\n", seasonID, err)
	}
	return ledger, nil
}
