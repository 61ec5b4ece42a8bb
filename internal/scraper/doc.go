// Package scraper fetches the Krog & Co calendar page and extracts events.
//
// The calendar page lists everything in <h3> headings: month names, date
// lines like "torsdag 05/02", and event links. The scraper walks the
// headings in document order, carrying the current date forward and
// inferring the year from month rollovers (a December heading followed by a
// January heading means the page crossed into the next year). Events in the
// past, beyond the configured horizon, blacklisted, or already seen are
// excluded.
package scraper
