package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"krogcal/internal/event"
)

func testResult() *OutputResult {
	events := []*event.CalendarEvent{
		{
			Date:   time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC),
			Title:  "HV71 – Skellefteå AIK",
			URL:    "https://krogoco.se/jonkoping/event/hv71-skelleftea-aik/",
			AllDay: true,
		},
		{
			Date:      time.Date(2025, time.February, 6, 0, 0, 0, 0, time.UTC),
			Title:     "Fredagslunch Kl.12-17",
			URL:       "https://krogoco.se/jonkoping/event/fredagslunch/",
			StartTime: "12:00",
			EndTime:   "17:00",
		},
		{
			Date:      time.Date(2025, time.February, 6, 0, 0, 0, 0, time.UTC),
			Title:     "AW Med Quiz! Från Kl.17.00",
			URL:       "https://krogoco.se/jonkoping/event/aw-med-quiz/",
			StartTime: "17:00",
		},
	}
	return &OutputResult{
		ScrapedAt:  time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC),
		SourceURL:  "https://krogoco.se/jonkoping/kalender/",
		EventCount: len(events),
		Events:     events,
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"2025-02-05  all day      HV71 – Skellefteå AIK",
		"2025-02-06  12:00-17:00  Fredagslunch Kl.12-17",
		"2025-02-06  17:00        AW Med Quiz! Från Kl.17.00",
		"Total: 3 events",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\ngot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "URL:") {
		t.Error("non-verbose text output should not list URLs")
	}
}

func TestWriteOutput_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), "URL: https://krogoco.se/jonkoping/event/fredagslunch/") {
		t.Error("verbose text output should list URLs")
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &OutputResult{ScrapedAt: time.Now()}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("empty text output = %q", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 3 || len(decoded.Events) != 3 {
		t.Errorf("decoded %d/%d events, want 3/3", decoded.EventCount, len(decoded.Events))
	}
	if decoded.Events[0].Title != "HV71 – Skellefteå AIK" {
		t.Errorf("Events[0].Title = %q", decoded.Events[0].Title)
	}
	if !decoded.Events[0].AllDay {
		t.Error("Events[0] should be all-day")
	}
}

func TestWriteOutput_ICS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatICS, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20250205",
		"DTSTART:20250206T120000",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ICS output missing %q", want)
		}
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), OutputFormat("xml"), false); err == nil {
		t.Error("WriteOutput() expected error for unknown format")
	}
}
