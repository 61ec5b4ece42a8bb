// Package event provides the calendar event record produced by the scraper.
//
// Each event is identified by the triple (date, title, URL); the UID derived
// from that triple is used both for deduplication during a scrape and for
// change detection between scrapes. The package also holds the horizon
// arithmetic that bounds how far into the future a scrape reaches.
package event
