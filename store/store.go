// Package store persists seasons, finance snapshots, calendar events and
// sync state in SQLite. It is the queryable store the engine reconstructs
// the ledger from; the schema mirrors the season/finance tables of the
// original browser extension database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabrielbitencourt/dofinance"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS season (
	id              INTEGER PRIMARY KEY,
	initial_balance INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS finance (
	season_id              INTEGER NOT NULL,
	date                   TEXT    NOT NULL,
	servertime             TEXT    NOT NULL DEFAULT '',
	current                INTEGER NOT NULL,
	total_players_salary   INTEGER NOT NULL,
	total_coaches_salary   INTEGER NOT NULL,
	current_players_salary INTEGER NOT NULL,
	current_coaches_salary INTEGER NOT NULL,
	building               INTEGER NOT NULL,
	tickets                INTEGER NOT NULL,
	transfers              INTEGER NOT NULL,
	sponsor                INTEGER NOT NULL,
	prizes                 INTEGER NOT NULL,
	maintenance            INTEGER NOT NULL,
	others                 INTEGER NOT NULL,
	PRIMARY KEY (season_id, date, servertime)
);
CREATE TABLE IF NOT EXISTS event (
	season_id INTEGER NOT NULL,
	date      TEXT    NOT NULL,
	type      TEXT    NOT NULL,
	name      TEXT    NOT NULL DEFAULT '',
	home      INTEGER NOT NULL DEFAULT 0,
	friendly  INTEGER NOT NULL DEFAULT 0,
	match_id  INTEGER NOT NULL DEFAULT 0,
	position  TEXT    NOT NULL DEFAULT '',
	team      TEXT    NOT NULL DEFAULT '',
	price     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (season_id, date, type, name)
);
CREATE TABLE IF NOT EXISTS sync_state (
	season_id INTEGER PRIMARY KEY,
	version   INTEGER NOT NULL
);
`

// Store persists engine state in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutSeason inserts or updates a season row. Seasons are upserted whenever
// a snapshot for them is observed, and never deleted.
func (s *Store) PutSeason(ctx context.Context, season dofinance.Season) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO season (id, initial_balance) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET initial_balance = excluded.initial_balance`,
		season.ID, int64(season.InitialBalance))
	if err != nil {
		return fmt.Errorf("upsert season %d: %w", season.ID, err)
	}
	return nil
}

// Season returns the season with the given id, and whether it exists.
func (s *Store) Season(ctx context.Context, id int) (dofinance.Season, bool, error) {
	var season dofinance.Season
	var balance int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, initial_balance FROM season WHERE id = ?`, id).
		Scan(&season.ID, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return dofinance.Season{}, false, nil
	}
	if err != nil {
		return dofinance.Season{}, false, fmt.Errorf("query season %d: %w", id, err)
	}
	season.InitialBalance = dofinance.Money(balance)
	return season, true, nil
}

// Seasons returns all known seasons in ascending order.
func (s *Store) Seasons(ctx context.Context) ([]dofinance.Season, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, initial_balance FROM season ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []dofinance.Season
	for rows.Next() {
		var season dofinance.Season
		var balance int64
		if err := rows.Scan(&season.ID, &balance); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		season.InitialBalance = dofinance.Money(balance)
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

const financeColumns = `season_id, date, servertime, current,
	total_players_salary, total_coaches_salary,
	current_players_salary, current_coaches_salary,
	building, tickets, transfers, sponsor, prizes, maintenance, others`

// PutRecords upserts raw snapshots, keyed by (season, date, servertime).
func (s *Store) PutRecords(ctx context.Context, records ...dofinance.FinanceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put records: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		if err := putRecord(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func putRecord(ctx context.Context, tx *sql.Tx, rec dofinance.FinanceRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO finance (`+financeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (season_id, date, servertime) DO UPDATE SET
			current = excluded.current,
			total_players_salary = excluded.total_players_salary,
			total_coaches_salary = excluded.total_coaches_salary,
			current_players_salary = excluded.current_players_salary,
			current_coaches_salary = excluded.current_coaches_salary,
			building = excluded.building,
			tickets = excluded.tickets,
			transfers = excluded.transfers,
			sponsor = excluded.sponsor,
			prizes = excluded.prizes,
			maintenance = excluded.maintenance,
			others = excluded.others`,
		rec.SeasonID, rec.Date.String(), rec.ServerTime, int64(rec.Current),
		int64(rec.TotalPlayersSalary), int64(rec.TotalCoachesSalary),
		int64(rec.CurrentPlayersSalary), int64(rec.CurrentCoachesSalary),
		int64(rec.Building), int64(rec.Tickets), int64(rec.Transfers),
		int64(rec.Sponsor), int64(rec.Prizes), int64(rec.Maintenance),
		int64(rec.Others))
	if err != nil {
		return fmt.Errorf("upsert record %d/%s: %w", rec.SeasonID, rec.Date, err)
	}
	return nil
}

// RawRecords returns the raw snapshots of a season, sorted by date then
// server time.
func (s *Store) RawRecords(ctx context.Context, seasonID int) ([]dofinance.FinanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+financeColumns+` FROM finance
		WHERE season_id = ? ORDER BY date, servertime`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query records of season %d: %w", seasonID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]dofinance.FinanceRecord, error) {
	var records []dofinance.FinanceRecord
	for rows.Next() {
		var rec dofinance.FinanceRecord
		var date string
		var vals [12]int64
		if err := rows.Scan(&rec.SeasonID, &date, &rec.ServerTime,
			&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5],
			&vals[6], &vals[7], &vals[8], &vals[9], &vals[10], &vals[11]); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		d, err := dofinance.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("stored record has invalid date: %w", err)
		}
		rec.Date = d
		rec.Current = dofinance.Money(vals[0])
		rec.TotalPlayersSalary = dofinance.Money(vals[1])
		rec.TotalCoachesSalary = dofinance.Money(vals[2])
		rec.CurrentPlayersSalary = dofinance.Money(vals[3])
		rec.CurrentCoachesSalary = dofinance.Money(vals[4])
		rec.Building = dofinance.Money(vals[5])
		rec.Tickets = dofinance.Money(vals[6])
		rec.Transfers = dofinance.Money(vals[7])
		rec.Sponsor = dofinance.Money(vals[8])
		rec.Prizes = dofinance.Money(vals[9])
		rec.Maintenance = dofinance.Money(vals[10])
		rec.Others = dofinance.Money(vals[11])
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceRecords replaces all raw snapshots of a season in one transaction.
// The sync policy uses it to adopt a newer remote ledger wholesale.
func (s *Store) ReplaceRecords(ctx context.Context, seasonID int, records []dofinance.FinanceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace records: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM finance WHERE season_id = ?`, seasonID); err != nil {
		return fmt.Errorf("clear records of season %d: %w", seasonID, err)
	}
	for _, rec := range records {
		rec.SeasonID = seasonID
		if err := putRecord(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PutEvents upserts calendar events.
func (s *Store) PutEvents(ctx context.Context, events ...dofinance.CalendarEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put events: %w", err)
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event (season_id, date, type, name, home, friendly, match_id, position, team, price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (season_id, date, type, name) DO UPDATE SET
				home = excluded.home,
				friendly = excluded.friendly,
				match_id = excluded.match_id,
				position = excluded.position,
				team = excluded.team,
				price = excluded.price`,
			e.SeasonID, e.Date.String(), string(e.Type), e.Name,
			e.Home, e.Friendly, e.MatchID, e.Position, e.Team, int64(e.Price))
		if err != nil {
			return fmt.Errorf("upsert event %d/%s/%s: %w", e.SeasonID, e.Date, e.Type, err)
		}
	}
	return tx.Commit()
}

// Events returns a season's events of one type dated on or after from,
// chronologically.
func (s *Store) Events(ctx context.Context, seasonID int, typ dofinance.EventType, from dofinance.Date) ([]dofinance.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT season_id, date, type, name, home, friendly, match_id, position, team, price
		FROM event WHERE season_id = ? AND type = ? AND date >= ?
		ORDER BY date`, seasonID, string(typ), from.String())
	if err != nil {
		return nil, fmt.Errorf("query events of season %d: %w", seasonID, err)
	}
	defer rows.Close()

	var events []dofinance.CalendarEvent
	for rows.Next() {
		var e dofinance.CalendarEvent
		var date, typ string
		var price int64
		if err := rows.Scan(&e.SeasonID, &date, &typ, &e.Name,
			&e.Home, &e.Friendly, &e.MatchID, &e.Position, &e.Team, &price); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		d, err := dofinance.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("stored event has invalid date: %w", err)
		}
		e.Date = d
		e.Type = dofinance.EventType(typ)
		e.Price = dofinance.Money(price)
		events = append(events, e)
	}
	return events, rows.Err()
}

// SyncVersion returns the last adopted sync version for a season.
func (s *Store) SyncVersion(ctx context.Context, seasonID int) (int64, bool, error) {
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM sync_state WHERE season_id = ?`, seasonID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query sync version of season %d: %w", seasonID, err)
	}
	return version, true, nil
}

// SetSyncVersion records the sync version for a season.
func (s *Store) SetSyncVersion(ctx context.Context, seasonID int, version int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (season_id, version) VALUES (?, ?)
		ON CONFLICT (season_id) DO UPDATE SET version = excluded.version`,
		seasonID, version)
	if err != nil {
		return fmt.Errorf("set sync version of season %d: %w", seasonID, err)
	}
	return nil
}

var _ dofinance.SyncStore = (*Store)(nil)
