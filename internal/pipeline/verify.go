package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/btrdirectory/surveyor/internal/crawler"
	"github.com/btrdirectory/surveyor/internal/extract"
	"github.com/btrdirectory/surveyor/internal/geocode"
	"github.com/btrdirectory/surveyor/internal/output"
	"github.com/btrdirectory/surveyor/internal/store"
	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

// Verifier runs the verification pipeline.
type Verifier struct {
	Store    *store.Store
	Crawler  *crawler.Crawler
	Extract  *extract.Extractor // nil skips LLM analysis
	Geocoder *geocode.Client
	Report   *output.Report

	// Fetch selects which listings to verify.
	Fetch store.FetchOptions

	// OperatorDomains maps operator names to website domains, from the
	// sources file. It backfills operators whose stored record has no
	// website, so their sites still get crawled and classified.
	OperatorDomains map[string]string

	// Concurrency bounds parallel listing verification.
	Concurrency int

	// MaxPages caps crawled pages per listing.
	MaxPages int

	// GenerateSQL also writes the suggested-updates file.
	GenerateSQL bool
}

// VerifyResult summarizes one verification run.
type VerifyResult struct {
	Verifications []verify.Verification
	CSVPath       string
	SummaryPath   string
	SQLPath       string
}

// Run verifies every selected listing with bounded parallelism and
// writes reports. A listing whose verification panics or errors gets a
// minimal failure record; the run continues.
func (v *Verifier) Run(ctx context.Context) (*VerifyResult, error) {
	listings, err := v.Store.FetchListings(ctx, v.Fetch)
	if err != nil {
		return nil, err
	}

	concurrency := v.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]verify.Verification, len(listings))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range listings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = v.verifyListing(ctx, &listings[i])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := &VerifyResult{Verifications: results}

	if run.CSVPath, err = v.Report.VerificationCSV(results); err != nil {
		return nil, err
	}
	if run.SummaryPath, err = v.Report.VerificationSummary(results, string(v.Fetch.Mode)); err != nil {
		return nil, err
	}
	if v.GenerateSQL {
		if run.SQLPath, err = v.Report.VerificationUpdates(results); err != nil {
			return nil, err
		}
	}

	return run, nil
}

// maxPageContent caps how much of each crawled page feeds the LLM
// analysis.
const maxPageContent = 4000

// combineEvidence joins every successful page's content into one
// analysis input, each page truncated and labelled with its source URL,
// in crawl order. Evidence found only on a later page, typically the
// operator's site, still reaches the extractor this way.
func combineEvidence(pages []verify.Page) string {
	var parts []string
	for _, page := range pages {
		if !page.Success || page.Content == "" {
			continue
		}
		content := page.Content
		if len(content) > maxPageContent {
			content = content[:maxPageContent]
		}
		parts = append(parts, "Source: "+page.URL+"\n"+content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// applyOperatorDomain fills in an operator website from the sources
// file when the stored record lacks one.
func applyOperatorDomain(listing *developments.Listing, domains map[string]string) {
	if listing.Operator == nil || listing.Operator.Website != "" {
		return
	}
	if domain := domains[listing.Operator.Name]; domain != "" {
		listing.Operator.Website = domain
	}
}

// verifyListing gathers evidence for one listing and runs the
// comparator. It never returns an error: failures degrade to a
// verification with fewer sources.
func (v *Verifier) verifyListing(ctx context.Context, listing *developments.Listing) (result verify.Verification) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().
				Str("listing", listing.Name).
				Any("panic", r).
				Msg("Verification panicked")
			result = verify.Verification{
				ListingID: listing.ID,
				Name:      listing.Name,
				Slug:      listing.Slug,
				Area:      listing.Area,
				Overall:   developments.ConfidenceLow,
				Notes:     "Verification failed",
			}
		}
	}()

	applyOperatorDomain(listing, v.OperatorDomains)

	urls := crawler.BuildCrawlURLs(listing)
	if v.MaxPages > 0 && len(urls) > v.MaxPages {
		urls = urls[:v.MaxPages]
	}
	pages := v.Crawler.FetchAll(ctx, urls)

	var extraction *verify.Extraction
	if v.Extract != nil {
		if combined := combineEvidence(pages); combined != "" {
			parsed, err := v.Extract.Verify(ctx, combined, listing.Name, listing.Area)
			if err != nil {
				logging.Err(err).Str("listing", listing.Name).Msg("LLM analysis failed")
			} else {
				extraction = parsed
			}
		}
	}

	var geo *developments.Geolocation
	if listing.Postcode != "" && v.Geocoder != nil {
		lookup, err := v.Geocoder.Lookup(ctx, listing.Postcode)
		if err != nil {
			logging.Err(err).Str("listing", listing.Name).Msg("Postcode lookup failed")
		} else {
			geo = &lookup
		}
	}

	result = verify.CompareListing(listing, pages, extraction, geo)
	result.Comparisons = append(result.Comparisons, verify.SuggestEnrichments(listing, extraction, geo)...)

	logging.Info().
		Str("listing", listing.Name).
		Str("confidence", result.Overall.String()).
		Int("sources", result.SourcesChecked).
		Msg("Listing verified")

	return result
}
