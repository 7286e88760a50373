package dofinance

import (
	"bytes"
	"strings"
	"testing"
)

func TestSortRecords(t *testing.T) {
	records := []FinanceRecord{
		{Date: day("2022-01-05"), ServerTime: "21:00"},
		{Date: day("2022-01-04"), ServerTime: "09:00"},
		{Date: day("2022-01-05"), ServerTime: "08:00"},
	}

	got := SortRecords(records)

	want := []struct {
		date Date
		time string
	}{
		{day("2022-01-04"), "09:00"},
		{day("2022-01-05"), "08:00"},
		{day("2022-01-05"), "21:00"},
	}
	for i, w := range want {
		if got[i].Date != w.date || got[i].ServerTime != w.time {
			t.Errorf("sorted[%d] = %s %s, want %s %s", i, got[i].Date, got[i].ServerTime, w.date, w.time)
		}
	}
	// the input order is preserved.
	if records[0].Date != day("2022-01-05") || records[0].ServerTime != "21:00" {
		t.Errorf("SortRecords modified its input")
	}
}

func TestRecordsJSONL(t *testing.T) {
	records := []FinanceRecord{
		{SeasonID: 42, Date: day("2022-01-04"), ServerTime: "13:05", Current: 123456, Sponsor: 1000},
		{SeasonID: 42, Date: day("2022-01-05"), Current: 124456, Sponsor: 2000, Maintenance: -500},
	}

	var buf bytes.Buffer
	if err := EncodeRecordsJSONL(&buf, records); err != nil {
		t.Fatalf("EncodeRecordsJSONL returned error: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Fatalf("encoded %d lines, want 2", lines)
	}

	back, err := DecodeRecordsJSONL(&buf)
	if err != nil {
		t.Fatalf("DecodeRecordsJSONL returned error: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("decoded %d records, want 2", len(back))
	}
	for i := range records {
		if back[i] != records[i] {
			t.Errorf("record[%d] = %+v, want %+v", i, back[i], records[i])
		}
	}
}

func TestDecodeRecordsJSONL_skipsBlankLines(t *testing.T) {
	in := `{"season_id":42,"date":"2022-01-04","current":100}

{"season_id":42,"date":"2022-01-05","current":200}
`
	records, err := DecodeRecordsJSONL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeRecordsJSONL returned error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("decoded %d records, want 2", len(records))
	}
}

func TestDecodeRecordsJSONL_badLine(t *testing.T) {
	if _, err := DecodeRecordsJSONL(strings.NewReader("{not json}\n")); err == nil {
		t.Errorf("DecodeRecordsJSONL accepted invalid JSON")
	}
}

func TestWeeklyCosts(t *testing.T) {
	r := FinanceRecord{
		TotalPlayersSalary: -70000,
		TotalCoachesSalary: -10000,
		Maintenance:        -5000,
		Others:             -2000,
		Tickets:            99999, // not a weekly cost
	}
	if got := r.WeeklyCosts(); got != -87000 {
		t.Errorf("WeeklyCosts = %d, want -87000", got)
	}
}

func TestHomeMatchDays(t *testing.T) {
	events := []CalendarEvent{
		{Date: day("2022-01-12"), Type: EventMatch, Home: true, Name: "FC Rivals"},
		{Date: day("2022-01-13"), Type: EventMatch, Home: false, Name: "FC Away"},
		{Date: day("2022-01-14"), Type: EventMatch, Home: true, Friendly: true, Name: "FC Friendly"},
		{Date: day("2022-01-15"), Type: EventMatch, Home: true, Name: "Reserves of FC Rivals"},
		{Date: day("2022-01-16"), Type: EventBuy, Name: "Some Player"},
	}

	days := HomeMatchDays(events)
	if len(days) != 1 || !days[day("2022-01-12")] {
		t.Errorf("HomeMatchDays = %v, want only 2022-01-12", days)
	}
}
