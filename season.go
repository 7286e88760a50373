package dofinance

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeasonCalendar maps season numbers to their first day. The projector uses
// the next season's start as the exclusive end of a forecast. The mapping is
// configuration, not data: the game announces season dates out of band and
// they must be supplied by the operator.
type SeasonCalendar struct {
	starts map[int]Date
}

// NewSeasonCalendar builds a calendar from an explicit season->start mapping.
func NewSeasonCalendar(starts map[int]Date) SeasonCalendar {
	m := make(map[int]Date, len(starts))
	for id, d := range starts {
		m[id] = d
	}
	return SeasonCalendar{starts: m}
}

// StartOf returns the first day of the given season.
func (c SeasonCalendar) StartOf(season int) (Date, bool) {
	d, ok := c.starts[season]
	return d, ok
}

// NextStart returns the first day of the season after the given one.
func (c SeasonCalendar) NextStart(season int) (Date, bool) {
	return c.StartOf(season + 1)
}

// DecodeSeasonCalendar reads a YAML season calendar, a flat mapping of
// season number to start date:
//
//	41: 2022-01-04
//	42: 2022-04-05
func DecodeSeasonCalendar(r io.Reader) (SeasonCalendar, error) {
	var raw map[int]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return SeasonCalendar{}, fmt.Errorf("could not decode season calendar: %w", err)
	}
	starts := make(map[int]Date, len(raw))
	for id, str := range raw {
		d, err := ParseDate(str)
		if err != nil {
			return SeasonCalendar{}, fmt.Errorf("season %d has an invalid start date: %w", id, err)
		}
		starts[id] = d
	}
	return SeasonCalendar{starts: starts}, nil
}

// LoadSeasonCalendar reads a YAML season calendar from a file.
func LoadSeasonCalendar(path string) (SeasonCalendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeasonCalendar{}, fmt.Errorf("could not open season calendar %q: %w", path, err)
	}
	defer f.Close()
	return DecodeSeasonCalendar(f)
}
