// Package calendar maps scraped events onto RFC 5545 calendar semantics.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"krogcal/internal/event"
)

const (
	// ProdID identifies this producer in the emitted calendar.
	ProdID = "-//krogcal//Krog & Co calendar//EN"

	// uidHost suffixes event UIDs to keep them globally unique.
	uidHost = "krogoco.se"
)

// Build converts scraped events into an iCalendar object.
//
// All-day events span the whole calendar date. A timed event with no known
// end runs until midnight; an end time at or before the start on the same
// day is read as past midnight and lands on the next day.
func Build(events []*event.CalendarEvent) (*ics.Calendar, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProdID)
	cal.SetVersion("2.0")

	for _, evt := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@%s", evt.UID(), uidHost))
		ve.SetDtStampTime(time.Now().UTC())
		ve.SetSummary(evt.Title)
		ve.SetURL(evt.URL)

		if evt.AllDay {
			ve.SetAllDayStartAt(evt.Date)
			ve.SetAllDayEndAt(evt.Date.AddDate(0, 0, 1))
			continue
		}

		start, err := clockTime(evt.Date, evt.StartTime)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", evt.Title, err)
		}
		ve.SetStartAt(start)

		end := evt.Date.AddDate(0, 0, 1) // no end time known: run until midnight
		if evt.EndTime != "" {
			end, err = clockTime(evt.Date, evt.EndTime)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", evt.Title, err)
			}
			if !end.After(start) {
				end = end.AddDate(0, 0, 1)
			}
		}
		ve.SetEndAt(end)
	}

	return cal, nil
}

// Serialize builds the calendar and renders it as iCalendar text.
func Serialize(events []*event.CalendarEvent) (string, error) {
	cal, err := Build(events)
	if err != nil {
		return "", err
	}
	return cal.Serialize(), nil
}

// clockTime combines a calendar date with an "HH:MM" string.
func clockTime(date time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}
