package schema

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 date layout of the downloads API
const DateLayout = "2006-01-02"

// Window inclusive date range of the download statistics
type Window struct {
	Start time.Time
	End   time.Time
}

// LastWeek returns the last seven complete UTC days before now
func LastWeek(now time.Time) Window {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, -1)
	return Window{
		Start: end.AddDate(0, 0, -6),
		End:   end,
	}
}

// ParseWindow parses start and end dates
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// StartDate formatted start
func (w Window) StartDate() string {
	return w.Start.Format(DateLayout)
}

// EndDate formatted end
func (w Window) EndDate() string {
	return w.End.Format(DateLayout)
}
