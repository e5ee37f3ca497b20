// Package pipeline orchestrates the discovery and verification runs:
// search, crawl, extract, resolve, compare, report. Each listing or
// page is processed independently so one failure never aborts a run.
package pipeline

import (
	"context"

	"github.com/btrdirectory/surveyor/internal/crawler"
	"github.com/btrdirectory/surveyor/internal/extract"
	"github.com/btrdirectory/surveyor/internal/geocode"
	"github.com/btrdirectory/surveyor/internal/output"
	"github.com/btrdirectory/surveyor/internal/search"
	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/resolve"
)

// ExistingNames looks up stored development names for the database
// check. Implemented by the store; nil-able when no database is
// configured.
type ExistingNames interface {
	FetchExistingNames(ctx context.Context) (map[string]string, error)
}

// Discovery runs the discovery pipeline.
type Discovery struct {
	Search   *search.Client
	Crawler  *crawler.Crawler
	Extract  *extract.Extractor
	Geocoder *geocode.Client // nil skips location enrichment
	Store    ExistingNames   // nil skips the database check
	Report   *output.Report
	Resolver *resolve.Resolver

	// TestMode limits queries to the base set.
	TestMode bool

	// CustomQuery replaces the built-in query set when non-empty.
	CustomQuery string

	// ExtraQueries come from the sources file.
	ExtraQueries []string

	// SearchLimit caps how many unique URLs are crawled.
	SearchLimit int

	// GenerateSQL also writes the INSERT file.
	GenerateSQL bool
}

// DiscoveryResult summarizes one discovery run.
type DiscoveryResult struct {
	Developments []developments.Development
	Stats        output.DiscoveryStats
	CSVPath      string
	SummaryPath  string
	SQLPath      string
}

// Run executes discovery end to end: search, crawl each result page,
// extract observations, resolve them into developments, check against
// the database, and write reports.
func (d *Discovery) Run(ctx context.Context) (*DiscoveryResult, error) {
	queries := search.Queries(d.TestMode, d.CustomQuery, d.ExtraQueries)

	results, err := d.Search.Search(ctx, queries, d.SearchLimit)
	if err != nil {
		return nil, err
	}

	stats := output.DiscoveryStats{
		Mode:      mode(d.TestMode),
		Queries:   len(queries),
		URLsFound: len(results),
	}
	if d.CustomQuery != "" {
		stats.Mode = "CUSTOM"
	}

	var observations []developments.Observation
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := d.Crawler.Fetch(ctx, result.URL)
		if !page.Success {
			stats.URLsFailed++
			continue
		}
		stats.URLsCrawled++

		extracted, err := d.Extract.Discover(ctx, page.Content, result.URL)
		if err != nil {
			logging.Err(err).Str("url", result.URL).Msg("Extraction failed")
			continue
		}
		observations = append(observations, extracted...)
	}
	stats.RawMentions = len(observations)

	devs := d.Resolver.Resolve(observations)

	if d.Geocoder != nil {
		d.enrichLocations(ctx, devs)
	}

	if d.Store != nil {
		existing, err := d.Store.FetchExistingNames(ctx)
		if err != nil {
			return nil, err
		}
		devs = resolve.MarkExisting(devs, existing)
	} else {
		// Without a database every development is presumed new.
		for i := range devs {
			devs[i].IsNew = true
		}
	}

	logging.Info().
		Int("mentions", stats.RawMentions).
		Int("developments", len(devs)).
		Msg("Discovery resolution complete")

	run := &DiscoveryResult{Developments: devs, Stats: stats}

	if run.CSVPath, err = d.Report.DiscoveryCSV(devs); err != nil {
		return nil, err
	}
	if run.SummaryPath, err = d.Report.DiscoverySummary(devs, stats); err != nil {
		return nil, err
	}
	if d.GenerateSQL {
		if run.SQLPath, err = d.Report.DiscoveryInserts(devs); err != nil {
			return nil, err
		}
	}

	return run, nil
}

// enrichLocations fills in coordinates and region for developments
// that carry a postcode but no location yet. Lookup failures leave the
// development as resolved.
func (d *Discovery) enrichLocations(ctx context.Context, devs []developments.Development) {
	enriched := 0
	for i := range devs {
		dev := &devs[i]
		if dev.Postcode == "" || dev.Latitude != nil {
			continue
		}
		geo, err := d.Geocoder.Lookup(ctx, dev.Postcode)
		if err != nil {
			logging.Err(err).Str("development", dev.Name).Msg("Postcode lookup failed")
			continue
		}
		if !geo.Valid {
			continue
		}
		dev.Latitude = geo.Latitude
		if dev.Longitude == nil {
			dev.Longitude = geo.Longitude
		}
		if dev.Region == "" && geo.Region != "" {
			dev.Region = geo.Region
		}
		enriched++
	}
	if enriched > 0 {
		logging.Info().Int("developments", enriched).Msg("Locations enriched")
	}
}

func mode(testMode bool) string {
	if testMode {
		return "TEST"
	}
	return "ALL"
}
