package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"krogcal/internal/calendar"
	"krogcal/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatICS  OutputFormat = "ics"
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	ScrapedAt  time.Time              `json:"scraped_at"`
	SourceURL  string                 `json:"source_url"`
	EventCount int                    `json:"event_count"`
	Events     []*event.CalendarEvent `json:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatICS:
		return writeICS(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeICS outputs the events as an iCalendar file
func writeICS(w io.Writer, result *OutputResult) error {
	ics, err := calendar.Serialize(result.Events)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, ics)
	return err
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as a human-readable listing
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, evt := range result.Events {
		fmt.Fprintf(w, "%s  %-11s  %s\n", evt.Date.Format("2006-01-02"), timeLabel(evt), evt.Title)
		if verbose {
			fmt.Fprintf(w, "            URL: %s\n", evt.URL)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", result.EventCount)

	return nil
}

// timeLabel renders the time column for the text listing
func timeLabel(evt *event.CalendarEvent) string {
	switch {
	case evt.AllDay:
		return "all day"
	case evt.EndTime != "":
		return evt.StartTime + "-" + evt.EndTime
	default:
		return evt.StartTime
	}
}
