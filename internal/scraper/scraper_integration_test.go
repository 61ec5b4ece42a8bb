package scraper

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchEvents(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		statusCode int
		wantError  bool
		wantEvents int
	}{
		{
			name: "successful fetch with events",
			html: `<html><body>
				<h3>onsdag 05/02</h3>
				<h3><a href="/jonkoping/event/fest/">Fest Kl.19.00-23.00</a></h3>
				<h3>torsdag 06/02</h3>
				<h3><a href="/jonkoping/event/quiz/">Quizkväll</a></h3>
			</body></html>`,
			statusCode: http.StatusOK,
			wantEvents: 2,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
		{
			name:       "empty page",
			html:       `<html><body><p>Inga event</p></body></html>`,
			statusCode: http.StatusOK,
			wantEvents: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "krogcal") {
					t.Errorf("User-Agent = %q, should contain 'krogcal'", userAgent)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.html))
			}))
			defer server.Close()

			s := New(server.URL, 2, nil)
			s.now = func() time.Time {
				return time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
			}

			events, err := s.FetchEvents()

			if tt.wantError {
				if err == nil {
					t.Error("FetchEvents() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchEvents() unexpected error: %v", err)
			}
			if len(events) != tt.wantEvents {
				t.Errorf("FetchEvents() returned %d events, want %d", len(events), tt.wantEvents)
			}
		})
	}
}

func TestNew(t *testing.T) {
	s := New(CalendarURL, 2, []string{"HV71", "SHL"})

	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.url != CalendarURL {
		t.Errorf("scraper url = %q, want %q", s.url, CalendarURL)
	}
	if s.base == nil || s.base.String() != BaseURL {
		t.Errorf("scraper base = %v, want %q", s.base, BaseURL)
	}
	for i, b := range s.blacklist {
		if b != strings.ToLower(b) {
			t.Errorf("blacklist[%d] = %q not lowercased", i, b)
		}
	}
}
