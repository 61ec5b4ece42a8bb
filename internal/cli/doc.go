// Package cli implements the command-line interface for krogcal.
//
// The cli package provides the Cobra-based CLI that scrapes the venue
// calendar and writes the result as an iCalendar file, a text listing, or
// JSON. It coordinates the scraper, calendar, config and storage packages
// and reports newly-appeared events through the exit code in --diff mode.
package cli
