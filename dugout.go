package dofinance

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

/*
	{
	    "season": 41,
	    "events": [
	        {"date": "2022-01-10", "type": "match", "name": "Blue Rovers", "home": true, "friendly": false, "id": 188213},
	        {"date": "2022-01-12", "type": "sell", "name": "J. Silva", "position": "DM", "team": "FC Oeste", "price": 250000}
	    ]
	}
*/

// FetchCalendar retrieves the club calendar feed (as exported by the
// companion crawler) from the server at base and extracts its events.
// Responses are cached on disk with a daily expiry.
func FetchCalendar(base string, seasonID int) ([]CalendarEvent, error) {
	addr := fmt.Sprintf("%s/calendar.json?season=%d", strings.TrimSuffix(base, "/"), seasonID)
	return fetchCalendar(daily(), addr, seasonID)
}

func fetchCalendar(client *http.Client, addr string, seasonID int) ([]CalendarEvent, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	// "$.events[*]" would turn an absent events key into an empty match;
	// require the array itself so a truncated feed is reported.
	path := "$.events"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing calendar feed: %q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing calendar feed: %q is not a list", path)
	}

	events := make([]CalendarEvent, 0, len(jlist))
	for _, item := range jlist {
		jevent, ok := item.(map[string]any)
		if !ok {
			log.Printf("skipping calendar entry that is not an object: %v", item)
			continue
		}
		event, err := decodeCalendarEvent(jevent, seasonID)
		if err != nil {
			log.Printf("skipping invalid calendar entry: %v", err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func decodeCalendarEvent(jevent map[string]any, seasonID int) (CalendarEvent, error) {
	event := CalendarEvent{SeasonID: seasonID, Type: EventOther}

	sdate, ok := jevent["date"].(string)
	if !ok {
		return event, fmt.Errorf("calendar entry has no date: %v", jevent)
	}
	date, err := ParseDate(sdate)
	if err != nil {
		return event, fmt.Errorf("calendar entry has an invalid date: %w", err)
	}
	event.Date = date

	if styp, ok := jevent["type"].(string); ok {
		switch EventType(styp) {
		case EventMatch, EventBuy, EventSell, EventBuilding, EventOther:
			event.Type = EventType(styp)
		}
	}
	event.Name, _ = jevent["name"].(string)
	event.Home, _ = jevent["home"].(bool)
	event.Friendly, _ = jevent["friendly"].(bool)
	event.Position, _ = jevent["position"].(string)
	event.Team, _ = jevent["team"].(string)
	event.MatchID = int(jnumber(jevent["id"]))
	event.Price = Money(jnumber(jevent["price"]))
	return event, nil
}

// jnumber reads a numeric feed value that this weird export sometimes
// writes as a string.
func jnumber(jval any) int64 {
	switch v := jval.(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("cannot read number from %q (ignored)", v)
			return 0
		}
		return n
	default:
		return 0
	}
}
