package dofinance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// This file implements the delta-encoded text codec used to push the raw
// ledger through a remote free-text store. Records are flattened into a
// fixed column order; a column equal to the same column of the preceding
// record is omitted, and numeric values are base-36 encoded to keep the
// payload small enough for a notes field.

// SyncMarker separates the user's own notes from the engine's payload in
// the remote text blob. Everything before the marker is preserved verbatim.
const SyncMarker = "[DOFinanceTools]"

const syncColumns = 15

const (
	rowSeparator    = "|"
	columnSeparator = ","
)

// EncodeRecords encodes raw records into the sync payload text. Records are
// sorted by date then server time; the first row always carries every
// column.
func EncodeRecords(records []FinanceRecord) string {
	sorted := SortRecords(records)
	rows := make([]string, 0, len(sorted))
	var prev []string
	for _, rec := range sorted {
		cols := encodeColumns(&rec)
		row := make([]string, len(cols))
		copy(row, cols)
		for i := 1; i < len(row); i++ { // the date column is never omitted
			if prev != nil && prev[i] == row[i] {
				row[i] = ""
			}
		}
		rows = append(rows, strings.Join(row, columnSeparator))
		prev = cols
	}
	return strings.Join(rows, rowSeparator)
}

// DecodeRecords decodes a sync payload back into raw records. Empty columns
// inherit the value of the previously decoded row; the first row must have
// every column populated.
func DecodeRecords(payload string) ([]FinanceRecord, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}
	var records []FinanceRecord
	var prev []string
	for n, row := range strings.Split(payload, rowSeparator) {
		cols := strings.Split(row, columnSeparator)
		if len(cols) != syncColumns {
			return nil, fmt.Errorf("sync row %d has %d columns, want %d", n, len(cols), syncColumns)
		}
		for i, col := range cols {
			if col != "" {
				continue
			}
			if prev == nil {
				return nil, fmt.Errorf("sync row %d omits column %d but has no predecessor", n, i)
			}
			cols[i] = prev[i]
		}
		rec, err := decodeColumns(cols)
		if err != nil {
			return nil, fmt.Errorf("sync row %d: %w", n, err)
		}
		records = append(records, rec)
		prev = cols
	}
	return records, nil
}

// encodeColumns flattens a record into its 15 encoded columns, in the fixed
// wire order.
func encodeColumns(r *FinanceRecord) []string {
	return []string{
		encodeDate(r.Date),
		encodeServerTime(r.ServerTime),
		strconv.FormatInt(int64(r.SeasonID), 36),
		encodeMoney(r.Current),
		encodeMoney(r.TotalPlayersSalary),
		encodeMoney(r.TotalCoachesSalary),
		encodeMoney(r.CurrentPlayersSalary),
		encodeMoney(r.CurrentCoachesSalary),
		encodeMoney(r.Building),
		encodeMoney(r.Tickets),
		encodeMoney(r.Transfers),
		encodeMoney(r.Sponsor),
		encodeMoney(r.Prizes),
		encodeMoney(r.Maintenance),
		encodeMoney(r.Others),
	}
}

func decodeColumns(cols []string) (FinanceRecord, error) {
	var rec FinanceRecord
	var err error
	if rec.Date, err = decodeDate(cols[0]); err != nil {
		return rec, err
	}
	if rec.ServerTime, err = decodeServerTime(cols[1]); err != nil {
		return rec, err
	}
	season, err := strconv.ParseInt(cols[2], 36, 64)
	if err != nil {
		return rec, fmt.Errorf("invalid season column %q: %w", cols[2], err)
	}
	rec.SeasonID = int(season)

	for i, dst := range []*Money{
		&rec.Current,
		&rec.TotalPlayersSalary,
		&rec.TotalCoachesSalary,
		&rec.CurrentPlayersSalary,
		&rec.CurrentCoachesSalary,
		&rec.Building,
		&rec.Tickets,
		&rec.Transfers,
		&rec.Sponsor,
		&rec.Prizes,
		&rec.Maintenance,
		&rec.Others,
	} {
		v, err := strconv.ParseInt(cols[3+i], 36, 64)
		if err != nil {
			return rec, fmt.Errorf("invalid money column %q: %w", cols[3+i], err)
		}
		*dst = Money(v)
	}
	return rec, nil
}

func encodeMoney(v Money) string { return strconv.FormatInt(int64(v), 36) }

// encodeDate encodes "2022-01-04" by base-36 encoding each component and
// keeping the separator, e.g. "1k6-1-4".
func encodeDate(d Date) string {
	return strconv.FormatInt(int64(d.Year()), 36) +
		"-" + strconv.FormatInt(int64(d.Month()), 36) +
		"-" + strconv.FormatInt(int64(d.Day()), 36)
}

func decodeDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date column %q", s)
	}
	nums := make([]int64, 3)
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 36, 64)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date column %q: %w", s, err)
		}
		nums[i] = v
	}
	return NewDate(int(nums[0]), time.Month(nums[1]), int(nums[2])), nil
}

// encodeServerTime encodes "13:05" as "d:5". A missing server time is
// written as the literal "null" token, as the userscript did.
func encodeServerTime(s string) string {
	if s == "" {
		return "null"
	}
	parts := strings.Split(s, ":")
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return "null"
		}
		parts[i] = strconv.FormatInt(v, 36)
	}
	return strings.Join(parts, ":")
}

// decodeServerTime reverses encodeServerTime. The literal "null" token
// decodes to "00:00".
func decodeServerTime(s string) (string, error) {
	if s == "null" {
		return "00:00", nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid servertime column %q", s)
	}
	h, err := strconv.ParseInt(parts[0], 36, 64)
	if err != nil {
		return "", fmt.Errorf("invalid servertime column %q: %w", s, err)
	}
	m, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil {
		return "", fmt.Errorf("invalid servertime column %q: %w", s, err)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// SyncText is the full remote blob: the user's own notes, kept verbatim,
// followed by the marker, a version line and the encoded payload.
type SyncText struct {
	Preamble string
	Version  int64 // unix seconds; 0 when the remote carries no version
	Payload  string
}

// ParseSyncText splits a remote blob around the marker. It reports false
// when the text carries no marker at all; the preamble then holds the whole
// text. An unreadable version line yields Version 0.
func ParseSyncText(text string) (SyncText, bool) {
	idx := strings.Index(text, SyncMarker)
	if idx < 0 {
		return SyncText{Preamble: text}, false
	}
	st := SyncText{Preamble: text[:idx]}
	rest := strings.TrimPrefix(text[idx+len(SyncMarker):], "\n")
	version, payload, _ := strings.Cut(rest, "\n")
	if v, err := strconv.ParseInt(strings.TrimSpace(version), 36, 64); err == nil {
		st.Version = v
	}
	st.Payload = strings.TrimSpace(payload)
	return st, true
}

// Compose rebuilds the full remote blob from its parts.
func (s SyncText) Compose() string {
	return s.Preamble + SyncMarker + "\n" +
		strconv.FormatInt(s.Version, 36) + "\n" +
		s.Payload + "\n"
}
