package dofinance

import (
	"errors"
	"testing"
)

// day is a test shorthand for building dates.
func day(s string) Date { return MustParseDate(s) }

func TestDedup(t *testing.T) {
	records := []FinanceRecord{
		{Date: day("2022-01-05"), ServerTime: "21:30", Current: 200},
		{Date: day("2022-01-05"), ServerTime: "08:00", Current: 100},
		{Date: day("2022-01-06"), Current: 300},
	}

	got := Dedup(SortRecords(records))
	if len(got) != 2 {
		t.Fatalf("Dedup kept %d records, want 2", len(got))
	}
	if got[0].Current != 200 {
		t.Errorf("Dedup kept the earlier snapshot (current=%d), want the 21:30 one", got[0].Current)
	}
	if got[1].Current != 300 {
		t.Errorf("Dedup dropped a unique record")
	}
}

func TestFillGaps(t *testing.T) {
	// Three one-day sponsor deltas of 1000 establish the daily rate, then a
	// three-day gap whose sponsor change is exactly 3*1000.
	records := []FinanceRecord{
		{Date: day("2022-01-04"), Current: 10000, Sponsor: 1000},
		{Date: day("2022-01-05"), Current: 11000, Sponsor: 2000},
		{Date: day("2022-01-06"), Current: 30000, Sponsor: 3000},
		{Date: day("2022-01-09"), Current: 36000, Sponsor: 6000, Tickets: 500},
	}

	got, err := FillGaps(records)
	if err != nil {
		t.Fatalf("FillGaps returned error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("FillGaps produced %d records, want 6", len(got))
	}

	// synthesized days interpolate current and sponsor, copy the rest from
	// the earlier endpoint.
	want := []struct {
		date    Date
		current Money
		sponsor Money
		tickets Money
	}{
		{day("2022-01-07"), 32000, 4000, 0},
		{day("2022-01-08"), 34000, 5000, 0},
	}
	for i, w := range want {
		rec := got[3+i]
		if rec.Date != w.date || rec.Current != w.current || rec.Sponsor != w.sponsor || rec.Tickets != w.tickets {
			t.Errorf("synthesized[%d] = %s current=%d sponsor=%d tickets=%d, want %s %d %d %d",
				i, rec.Date, rec.Current, rec.Sponsor, rec.Tickets, w.date, w.current, w.sponsor, w.tickets)
		}
	}
	if got[5] != records[3] {
		t.Errorf("final snapshot was modified: %+v", got[5])
	}
}

func TestFillGaps_sponsorMismatch(t *testing.T) {
	// The sponsor moved by more than the daily rate over the gap: something
	// else happened on the skipped days, so the gap must stay open.
	records := []FinanceRecord{
		{Date: day("2022-01-04"), Current: 10000, Sponsor: 1000},
		{Date: day("2022-01-05"), Current: 11000, Sponsor: 2000},
		{Date: day("2022-01-06"), Current: 30000, Sponsor: 3000},
		{Date: day("2022-01-09"), Current: 36000, Sponsor: 6500},
	}

	got, err := FillGaps(records)
	if err != nil {
		t.Fatalf("FillGaps returned error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("FillGaps produced %d records, want the 4 originals", len(got))
	}
}

func TestFillGaps_dateFault(t *testing.T) {
	// Out-of-order dates are a data fault: reported, but the remaining
	// records still come back.
	records := []FinanceRecord{
		{Date: day("2022-01-06"), Sponsor: 2000},
		{Date: day("2022-01-04"), Sponsor: 1000},
	}

	got, err := FillGaps(records)
	if !errors.Is(err, ErrDateGap) {
		t.Fatalf("FillGaps error = %v, want ErrDateGap", err)
	}
	if len(got) != 2 {
		t.Errorf("FillGaps produced %d records, want 2", len(got))
	}
}

func TestRealignMondays(t *testing.T) {
	// 2022-01-10 is a Monday. Its weekly costs still equal Sunday's, the
	// step only shows up on Tuesday: the posting must be pulled back.
	records := []FinanceRecord{
		{Date: day("2022-01-09"), Current: 50000, TotalPlayersSalary: -7000, TotalCoachesSalary: -1000, Maintenance: -500},
		{Date: day("2022-01-10"), Current: 51000, TotalPlayersSalary: -7000, TotalCoachesSalary: -1000, Maintenance: -500},
		{Date: day("2022-01-11"), Current: 52000, TotalPlayersSalary: -7400, TotalCoachesSalary: -1000, Maintenance: -600},
	}

	got := RealignMondays(records)

	mon := got[1]
	if mon.TotalPlayersSalary != -7400 || mon.Maintenance != -600 {
		t.Errorf("Monday costs not realigned: %+v", mon)
	}
	// old sum -8500, corrected sum -9000: the posting moves the balance by
	// the 500 step.
	if want := Money(51000 + 500); mon.Current != want {
		t.Errorf("Monday current = %d, want %d", mon.Current, want)
	}
	// Sunday and Tuesday stay untouched.
	if got[0] != records[0] || got[2] != records[2] {
		t.Errorf("records around the Monday were modified")
	}
	// the input slice itself is never written to.
	if records[1].TotalPlayersSalary != -7000 {
		t.Errorf("RealignMondays modified its input")
	}
}

func TestRealignMondays_alreadyPosted(t *testing.T) {
	records := []FinanceRecord{
		{Date: day("2022-01-09"), TotalPlayersSalary: 7000},
		{Date: day("2022-01-10"), TotalPlayersSalary: 7200, Current: 100},
		{Date: day("2022-01-11"), TotalPlayersSalary: 7200},
	}
	got := RealignMondays(records)
	if got[1] != records[1] {
		t.Errorf("a Monday with the posting already visible was modified: %+v", got[1])
	}
}

func TestNormalize(t *testing.T) {
	// duplicates, a provable gap and a late Monday posting, all at once.
	records := []FinanceRecord{
		{Date: day("2022-01-08"), ServerTime: "09:00", Current: 1},
		{Date: day("2022-01-08"), ServerTime: "20:00", Current: 13000, Sponsor: 5000},
		{Date: day("2022-01-04"), Current: 9000, Sponsor: 1000},
		{Date: day("2022-01-05"), Current: 10000, Sponsor: 2000},
		{Date: day("2022-01-06"), Current: 11000, Sponsor: 3000},
	}

	got, err := Normalize(records)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Normalize produced %d records, want 5 dense days", len(got))
	}
	for i, rec := range got {
		if want := day("2022-01-04").Add(i); rec.Date != want {
			t.Errorf("record[%d].Date = %s, want %s", i, rec.Date, want)
		}
	}
	if got[3].Sponsor != 4000 || got[3].Current != 12000 {
		t.Errorf("gap day = current %d sponsor %d, want 12000 4000", got[3].Current, got[3].Sponsor)
	}
}
