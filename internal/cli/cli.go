package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"krogcal/internal/config"
	"krogcal/internal/event"
	"krogcal/internal/scraper"
	"krogcal/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

var (
	flagConfig    string
	flagURL       string
	flagMonths    int
	flagBlacklist []string
	flagFormat    string
	flagOutput    string
	flagDataDir   string
	flagDiff      bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "krogcal",
		Short: "Scrape the Krog & Co calendar page into an iCalendar file",
		Long: `Scrapes the Krog & Co venue calendar page and emits the upcoming events
as an iCalendar (.ics) file, a text listing, or JSON. Events in the past,
beyond the months-ahead horizon, or matching the blacklist are excluded.`,
		RunE:          runScrape,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagURL, "url", scraper.CalendarURL, "Calendar page URL")
	cmd.Flags().IntVar(&flagMonths, "months", 2, "Include events through the end of the month this many months ahead")
	cmd.Flags().StringSliceVar(&flagBlacklist, "blacklist", nil, "Title substrings to exclude, case-insensitive (repeatable)")
	cmd.Flags().StringVar(&flagFormat, "format", "ics", "Output format: ics, text or json")
	cmd.Flags().StringVar(&flagOutput, "output", "-", "Output file path, or '-' for stdout")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/krogcal", "Data directory for scrape snapshots")
	cmd.Flags().BoolVar(&flagDiff, "diff", false, "Only report events new since the last run (exit code 2 when found)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override config file values.
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = flagURL
	}
	if flags.Changed("months") {
		cfg.MonthsAhead = flagMonths
	}
	if flags.Changed("blacklist") {
		cfg.Blacklist = flagBlacklist
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}

	if cfg.MonthsAhead < 0 {
		return fmt.Errorf("--months must be >= 0, got %d", cfg.MonthsAhead)
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatICS && format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'ics', 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetching events from %s\n", cfg.URL)
		fmt.Fprintf(os.Stderr, "Horizon: %d months, blacklist: %d entries\n", cfg.MonthsAhead, len(cfg.Blacklist))
	}

	sc := scraper.New(cfg.URL, cfg.MonthsAhead, cfg.Blacklist)
	events, err := sc.FetchEvents()
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Scraped %d events\n", len(events))
	}

	newCount := 0
	if flagDiff {
		store, err := storage.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}

		previous, err := store.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}

		fresh := event.Diff(previous, events)
		if err := store.SaveSnapshot(events); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}

		if flagVerbose {
			fmt.Fprintf(os.Stderr, "%d new events since last run\n", len(fresh))
		}

		events = fresh
		newCount = len(fresh)
	}

	result := &OutputResult{
		ScrapedAt:  time.Now().UTC(),
		SourceURL:  cfg.URL,
		EventCount: len(events),
		Events:     events,
	}

	var out io.Writer = os.Stdout
	if flagOutput != "-" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := WriteOutput(out, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if f, ok := out.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
	}

	if flagDiff && newCount > 0 {
		os.Exit(ExitNewEvents)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
