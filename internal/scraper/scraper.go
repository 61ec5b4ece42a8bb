package scraper

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"krogcal/internal/event"
	"krogcal/internal/timetext"
)

const (
	CalendarURL = "https://krogoco.se/jonkoping/kalender/"
	BaseURL     = "https://krogoco.se"
	UserAgent   = "krogcal/1.0 (krogcal calendar scraper)"
	Timeout     = 30 * time.Second

	maxFetchRetries = 3
)

// datePattern matches date headings like "torsdag 05/02" (day/month).
var datePattern = regexp.MustCompile(`\b(\d{2})/(\d{2})\b`)

// Scraper handles fetching and parsing the venue calendar page.
// Configuration is fixed at construction; a Scraper is safe to reuse
// across scrapes.
type Scraper struct {
	client      *http.Client
	url         string
	base        *url.URL
	monthsAhead int
	blacklist   []string // lowercased substrings
	now         func() time.Time
}

// New creates a new Scraper for the given page URL. Events dated more than
// monthsAhead months into the future (past the end of that month) are
// excluded, as are events whose title contains any blacklist entry
// (case-insensitive).
func New(pageURL string, monthsAhead int, blacklist []string) *Scraper {
	folded := make([]string, 0, len(blacklist))
	for _, b := range blacklist {
		folded = append(folded, strings.ToLower(b))
	}
	base, _ := url.Parse(BaseURL)
	return &Scraper{
		client:      &http.Client{Timeout: Timeout},
		url:         pageURL,
		base:        base,
		monthsAhead: monthsAhead,
		blacklist:   folded,
		now:         time.Now,
	}
}

// FetchEvents fetches the calendar page and returns the in-window events in
// chronological order. Transient network errors are retried with exponential
// backoff; a non-200 response fails immediately.
func (s *Scraper) FetchEvents() ([]*event.CalendarEvent, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading page: %w", err)
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries)); err != nil {
		return nil, err
	}

	return s.scrape(bytes.NewReader(body), s.now())
}

// Scrape extracts events from already-fetched markup.
func (s *Scraper) Scrape(r io.Reader) ([]*event.CalendarEvent, error) {
	return s.scrape(r, s.now())
}

// scanContext carries the running date state across heading nodes. Each
// date heading produces a new context via withDate; contexts are values so
// every step of the scan is an independent state.
type scanContext struct {
	year      int
	prevMonth int       // 0 until the first date heading
	current   time.Time // zero until the first date heading
}

// withDate advances the context to day/month. A month smaller than the
// previous one means the page crossed into the next year. Impossible
// dates (day 32, month 13) are an error: the page structure has changed
// and the whole scrape must fail rather than silently drop entries.
func (c scanContext) withDate(day, month int) (scanContext, error) {
	if c.prevMonth != 0 && month < c.prevMonth {
		c.year++
	}
	c.prevMonth = month

	d := time.Date(c.year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return c, fmt.Errorf("impossible date %02d/%02d", day, month)
	}
	c.current = d
	return c, nil
}

// scrape walks the <h3> headings of the page in document order, folding the
// date context forward and emitting one event per in-window link heading.
func (s *Scraper) scrape(r io.Reader, now time.Time) ([]*event.CalendarEvent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := event.Horizon(today, s.monthsAhead)

	ctx := scanContext{year: today.Year()}
	seen := make(map[string]bool)
	events := make([]*event.CalendarEvent, 0)

	var scanErr error
	doc.Find("h3").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := collapseWhitespace(sel.Text())

		// Date headings update the running context and carry no event.
		if m := datePattern.FindStringSubmatch(text); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])

			next, err := ctx.withDate(day, month)
			if err != nil {
				scanErr = err
				return false
			}
			ctx = next
			return true
		}

		link := sel.Find("a[href]").First()
		if link.Length() == 0 || ctx.current.IsZero() {
			return true
		}

		if ctx.current.Before(today) {
			return true
		}
		if ctx.current.After(horizon) {
			// The page is chronological, so nothing further is in-window.
			return false
		}

		title := collapseWhitespace(link.Text())
		if s.blacklisted(title) {
			return true
		}

		href, _ := link.Attr("href")
		start, end, allDay := timetext.Parse(title)

		evt := &event.CalendarEvent{
			Date:      ctx.current,
			Title:     title,
			URL:       s.resolveURL(href),
			AllDay:    allDay,
			StartTime: start,
			EndTime:   end,
		}

		if uid := evt.UID(); !seen[uid] {
			seen[uid] = true
			events = append(events, evt)
		}
		return true
	})

	if scanErr != nil {
		return nil, fmt.Errorf("scanning calendar headings: %w", scanErr)
	}
	return events, nil
}

// blacklisted reports whether the title contains any blacklist entry,
// ignoring case.
func (s *Scraper) blacklisted(title string) bool {
	lower := strings.ToLower(title)
	for _, b := range s.blacklist {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// resolveURL joins site-relative event links against the base origin.
func (s *Scraper) resolveURL(href string) string {
	if !strings.HasPrefix(href, "/") || s.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return s.base.ResolveReference(ref).String()
}

// collapseWhitespace flattens runs of whitespace to single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
