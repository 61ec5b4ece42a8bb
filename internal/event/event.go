package event

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// CalendarEvent represents one scraped occurrence on the venue calendar.
type CalendarEvent struct {
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	AllDay    bool      `json:"all_day"`
	StartTime string    `json:"start_time,omitempty"` // "HH:MM", empty when unknown
	EndTime   string    `json:"end_time,omitempty"`   // "HH:MM", empty when unknown
}

// UID creates a deterministic identifier from the event's identity triple
// (date, title, URL). Two entries with the same UID are the same event.
func (e *CalendarEvent) UID() string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%s", e.Date.Format("2006-01-02"), e.Title, e.URL)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Horizon returns the last day of the month that is monthsAhead months
// after d. Month arithmetic carries into the next year when needed.
func Horizon(d time.Time, monthsAhead int) time.Time {
	firstOfNext := time.Date(d.Year(), d.Month()+time.Month(monthsAhead)+1, 1, 0, 0, 0, 0, d.Location())
	return firstOfNext.AddDate(0, 0, -1)
}
