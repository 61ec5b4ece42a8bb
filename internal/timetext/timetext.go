package timetext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule patterns, in priority order. A lower rule is only consulted when
// every rule above it fails to match anywhere in the title.
var (
	// Full range: "19:00-23:00", "19.00 - 23.00" (hyphen or en-dash).
	fullRangePattern = regexp.MustCompile(`(\d{1,2}[.:]\d{2})\s*[-–]\s*(\d{1,2}[.:]\d{2})`)

	// Short hour range after an "at" marker: "Kl.12-17". The trailing
	// guard refuses a second number that continues as a longer time or
	// date token ("Kl.12-17.00", "Kl.12-170").
	shortRangePattern = regexp.MustCompile(`[Kk]l\.?\s*(\d{1,2})\s*[-–]\s*(\d{1,2})(?:[^0-9.:/]|$)`)

	// Time followed by an "NN+" hint: "Kl.22.00, 23+" reads as 22:00-23:00.
	hintPattern = regexp.MustCompile(`(\d{1,2}[.:]\d{2})\s*,\s*(\d{1,2})\+`)

	// Single time anywhere in the title: "Från Kl.17.00", "Från 21:00".
	singleTimePattern = regexp.MustCompile(`(\d{1,2}[.:]\d{2})`)
)

// Parse extracts a start/end time pair from an event title. Times come back
// as zero-padded "HH:MM" strings, empty when unknown. allDay is true exactly
// when no time token was recognized, in which case both times are empty.
func Parse(title string) (start, end string, allDay bool) {
	if m := fullRangePattern.FindStringSubmatch(title); m != nil {
		return normalize(m[1]), normalize(m[2]), false
	}
	if m := shortRangePattern.FindStringSubmatch(title); m != nil {
		return wholeHour(m[1]), wholeHour(m[2]), false
	}
	if m := hintPattern.FindStringSubmatch(title); m != nil {
		return normalize(m[1]), wholeHour(m[2]), false
	}
	if m := singleTimePattern.FindStringSubmatch(title); m != nil {
		return normalize(m[1]), "", false
	}
	return "", "", true
}

// normalize converts dot-separated times to colon-separated and zero-pads
// single-digit hours, so "9.30" becomes "09:30".
func normalize(t string) string {
	t = strings.ReplaceAll(t, ".", ":")
	if len(t) == len("H:MM") {
		t = "0" + t
	}
	return t
}

// wholeHour renders a bare hour number as "HH:00".
func wholeHour(h string) string {
	n, _ := strconv.Atoi(h) // guaranteed numeric by the patterns
	return fmt.Sprintf("%02d:00", n)
}
