package dofinance

import "testing"

func TestForecast(t *testing.T) {
	reference := FinanceRecord{
		Date:                 day("2022-01-08"), // a Saturday
		Current:              100000,
		Sponsor:              50000,
		Tickets:              20000,
		CurrentPlayersSalary: 7000,
		CurrentCoachesSalary: 1000,
		TotalPlayersSalary:   -70000,
		TotalCoachesSalary:   -10000,
	}
	events := []CalendarEvent{
		{SeasonID: 42, Date: day("2022-01-09"), Type: EventMatch, Home: true, Friendly: true},
		{SeasonID: 42, Date: day("2022-01-10"), Type: EventMatch, Home: false},
		{SeasonID: 42, Date: day("2022-01-11"), Type: EventMatch, Home: true},
	}
	opts := ForecastOptions{
		DailySponsor:             moneyp(1000),
		AverageHomeTickets:       moneyp(30000),
		AverageFriendliesTickets: moneyp(5000),
		MondayExpenses:           moneyp(9000),
	}

	got := Forecast([]FinanceRecord{reference}, events, day("2022-01-08"), day("2022-01-12"), opts)

	if len(got) != 4 {
		t.Fatalf("Forecast produced %d records, want 4 (reference + 3 days)", len(got))
	}
	if got[0] != reference {
		t.Errorf("first record must duplicate the reference, got %+v", got[0])
	}

	// Sunday: only the sponsor pays. The Sunday friendly must not count as a
	// home match.
	sun := got[1]
	if sun.Current != 101000 || sun.Sponsor != 51000 || sun.Tickets != 20000 {
		t.Errorf("Sunday = current %d sponsor %d tickets %d, want 101000 51000 20000",
			sun.Current, sun.Sponsor, sun.Tickets)
	}

	// Monday: weekly postings replay on top of the sponsor.
	mon := got[2]
	if mon.TotalPlayersSalary != -77000 || mon.TotalCoachesSalary != -11000 {
		t.Errorf("Monday salaries = %d %d, want -77000 -11000",
			mon.TotalPlayersSalary, mon.TotalCoachesSalary)
	}
	if mon.Tickets != 25000 {
		t.Errorf("Monday tickets = %d, want 25000", mon.Tickets)
	}
	if want := Money(101000 + 1000 - (9000 - 5000)); mon.Current != want {
		t.Errorf("Monday current = %d, want %d", mon.Current, want)
	}

	// Tuesday: competitive home match adds the average gate.
	tue := got[3]
	if tue.Tickets != 55000 {
		t.Errorf("Tuesday tickets = %d, want 55000", tue.Tickets)
	}
	if want := mon.Current + 1000 + 30000; tue.Current != want {
		t.Errorf("Tuesday current = %d, want %d", tue.Current, want)
	}
}

func TestForecast_bounds(t *testing.T) {
	reference := FinanceRecord{Date: day("2022-01-08")}

	// no history before the reference date
	if got := Forecast(nil, nil, day("2022-01-08"), day("2022-04-05"), ForecastOptions{}); got != nil {
		t.Errorf("Forecast with no history = %v, want nil", got)
	}

	// reference on or past the next season start
	if got := Forecast([]FinanceRecord{reference}, nil, day("2022-01-08"), day("2022-01-08"), ForecastOptions{}); got != nil {
		t.Errorf("Forecast past the season end = %v, want nil", got)
	}

	// the day before the next season start is the last simulated day.
	got := Forecast([]FinanceRecord{reference}, nil, day("2022-01-08"), day("2022-01-12"), ForecastOptions{})
	if last := got[len(got)-1].Date; last != day("2022-01-11") {
		t.Errorf("last simulated day = %s, want 2022-01-11", last)
	}
}

func TestForecast_defaultRates(t *testing.T) {
	// without overrides the rates come from history: sponsor 1000/day,
	// maintenance 600/week, others -200/week.
	records := []FinanceRecord{
		{Date: day("2022-01-04"), Sponsor: 1000, Current: 10000, Maintenance: -600, Others: -200},
		{Date: day("2022-01-05"), Sponsor: 2000, Current: 11000, Maintenance: -1200, Others: -400},
		{Date: day("2022-01-06"), Sponsor: 3000, Current: 12000, Maintenance: -1200, Others: -400,
			CurrentPlayersSalary: 5000, CurrentCoachesSalary: 1000},
	}

	got := Forecast(records, nil, day("2022-01-06"), day("2022-01-12"), ForecastOptions{})
	if len(got) != 6 {
		t.Fatalf("Forecast produced %d records, want 6", len(got))
	}

	// Friday 01-07: sponsor only.
	if got[1].Sponsor != 4000 || got[1].Current != 13000 {
		t.Errorf("Friday = sponsor %d current %d, want 4000 13000", got[1].Sponsor, got[1].Current)
	}

	// Monday 01-10: expenses default to salaries + maintenance - others.
	mon := got[4]
	if mon.Maintenance != -1800 {
		t.Errorf("Monday maintenance = %d, want -1800", mon.Maintenance)
	}
	if mon.Others != -600 {
		t.Errorf("Monday others = %d, want -600", mon.Others)
	}
	// expenses = 5000 + 1000 + 600 - (-200) = 6800, no friendly income on record.
	if want := got[3].Current + 1000 - 6800; mon.Current != want {
		t.Errorf("Monday current = %d, want %d", mon.Current, want)
	}
}

func moneyp(v Money) *Money { return &v }
