package dofinance

import "strings"

// EventType classifies a calendar event.
type EventType string

const (
	EventMatch    EventType = "match"
	EventBuy      EventType = "buy"
	EventSell     EventType = "sell"
	EventBuilding EventType = "building"
	EventOther    EventType = "other"
)

// CalendarEvent is one entry of the club calendar. Match events carry the
// opponent name and the home/friendly flags; transfer events carry the
// player and the price. The projector reads match events only.
type CalendarEvent struct {
	SeasonID int       `json:"season_id"`
	Date     Date      `json:"date"`
	Type     EventType `json:"type"`

	// match events
	Name     string `json:"name,omitempty"`
	Home     bool   `json:"home,omitempty"`
	Friendly bool   `json:"friendly,omitempty"`
	MatchID  int    `json:"match_id,omitempty"`

	// transfer events
	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`
	Price    Money  `json:"price,omitempty"`
}

// HomeMatchDays returns the set of days with a competitive home match:
// home, not friendly, and not a reserve-team fixture. These are the days
// the projector credits home ticket income on.
func HomeMatchDays(events []CalendarEvent) map[Date]bool {
	days := make(map[Date]bool)
	for _, e := range events {
		if e.Type != EventMatch || !e.Home || e.Friendly {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), "reserve") {
			continue
		}
		days[e.Date] = true
	}
	return days
}
