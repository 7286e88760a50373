package dofinance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// FinanceRecord is one snapshot of the club finance page. All fields except
// Current and the two weekly rates are season-to-date cumulative values.
// Cumulative fields are monotonic within a season except Transfers and
// Others, which are net and may move in either direction. Current is the
// bank balance as reported by the game; it is ground truth and is never
// recomputed from the other fields.
type FinanceRecord struct {
	SeasonID   int    `json:"season_id"`
	Date       Date   `json:"date"`
	ServerTime string `json:"servertime,omitempty"` // scrape time "HH:MM", optional

	Current              Money `json:"current"`
	TotalPlayersSalary   Money `json:"total_players_salary"`
	TotalCoachesSalary   Money `json:"total_coaches_salary"`
	CurrentPlayersSalary Money `json:"current_players_salary"`
	CurrentCoachesSalary Money `json:"current_coaches_salary"`
	Building             Money `json:"building"`
	Tickets              Money `json:"tickets"`
	Transfers            Money `json:"transfers"`
	Sponsor              Money `json:"sponsor"`
	Prizes               Money `json:"prizes"`
	Maintenance          Money `json:"maintenance"`
	Others               Money `json:"others"`
}

// WeeklyCosts returns the sum of the four weekly-posted cost fields. The
// game posts them together every Monday, so the sum moves as a single step.
func (r *FinanceRecord) WeeklyCosts() Money {
	return r.TotalPlayersSalary + r.TotalCoachesSalary + r.Others + r.Maintenance
}

// Season identifies one game season and the balance the club started it with.
// A season row is created or updated whenever a snapshot for it is observed.
type Season struct {
	ID             int   `json:"id"`
	InitialBalance Money `json:"initial_balance"`
}

// SortRecords returns a copy of records sorted chronologically: by date,
// then by server time ascending. The input is left untouched.
func SortRecords(records []FinanceRecord) []FinanceRecord {
	out := make([]FinanceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ServerTime < out[j].ServerTime
	})
	return out
}

// DecodeRecordsJSONL reads finance records from a stream of JSONL data,
// one record per line. Empty lines are skipped.
func DecodeRecordsJSONL(r io.Reader) ([]FinanceRecord, error) {
	var records []FinanceRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec FinanceRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("could not decode record line %q: %w", string(line), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return records, nil
}

// EncodeRecordsJSONL writes finance records to the writer in JSONL format,
// one record per line, in the order given.
func EncodeRecordsJSONL(w io.Writer, records []FinanceRecord) error {
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record on %s: %w", rec.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}
