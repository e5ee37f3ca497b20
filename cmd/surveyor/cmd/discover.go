package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/btrdirectory/surveyor/internal/crawler"
	"github.com/btrdirectory/surveyor/internal/extract"
	"github.com/btrdirectory/surveyor/internal/geocode"
	"github.com/btrdirectory/surveyor/internal/output"
	"github.com/btrdirectory/surveyor/internal/pipeline"
	"github.com/btrdirectory/surveyor/internal/search"
	"github.com/btrdirectory/surveyor/internal/store"
	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/resolve"
)

func newDiscoverCommand(root *rootOptions) *cobra.Command {
	var (
		testFlag    bool
		allFlag     bool
		queryFlag   string
		sqlFlag     bool
		noDBFlag    bool
		noCacheFlag bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Search the web for developments not yet in the directory",
		Example: `  surveyor discover --test                 # Base queries only
  surveyor discover --all                  # Full query set
  surveyor discover --query "BTR Leeds"    # One custom query
  surveyor discover --all --generate-sql   # Also write INSERT file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, srcs, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireSearch(); err != nil {
				return err
			}
			if err := cfg.RequireLLM(); err != nil {
				return err
			}

			searcher, err := search.New(cfg.SerpAPIKey, search.WithHTTPClient(httpClient(cfg.HTTPTimeout)))
			if err != nil {
				return err
			}

			crawlOpts := []crawler.Option{
				crawler.WithDelay(cfg.CrawlDelay),
				crawler.WithHTTPClient(httpClient(cfg.HTTPTimeout)),
			}
			if !noCacheFlag && cfg.CachePath != "" {
				cache, err := crawler.OpenCache(cfg.CachePath, cfg.CacheMaxAge)
				if err != nil {
					logging.Err(err).Msg("Crawl cache unavailable, continuing without")
				} else {
					defer cache.Close() //nolint:errcheck // best-effort close
					crawlOpts = append(crawlOpts, crawler.WithCache(cache))
				}
			}

			extractor, err := extract.New(ctx, cfg.GeminiAPIKey, cfg.Model)
			if err != nil {
				return err
			}

			report, err := output.NewReport(root.outputDir, time.Now())
			if err != nil {
				return err
			}

			discovery := &pipeline.Discovery{
				Search:  searcher,
				Crawler: crawler.New(crawlOpts...),
				Extract: extractor,
				Geocoder: geocode.New(
					geocode.WithBaseURL(cfg.GeocoderBaseURL),
					geocode.WithHTTPClient(httpClient(cfg.HTTPTimeout)),
				),
				Report:       report,
				Resolver:     resolve.New(),
				TestMode:     !allFlag || testFlag,
				CustomQuery:  queryFlag,
				ExtraQueries: srcs.ExtraQueries,
				SearchLimit:  cfg.SearchLimit,
				GenerateSQL:  sqlFlag,
			}

			if !noDBFlag && cfg.DatabaseURL != "" {
				db, err := store.New(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer db.Close()
				discovery.Store = db
			}

			result, err := discovery.Run(ctx)
			if err != nil {
				return err
			}

			logging.Info().
				Int("developments", len(result.Developments)).
				Str("csv", result.CSVPath).
				Str("summary", result.SummaryPath).
				Msg("Discovery complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&testFlag, "test", false, "Run base queries only")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Run the full query set")
	cmd.Flags().StringVar(&queryFlag, "query", "", "Run one custom query instead of the built-in set")
	cmd.Flags().BoolVar(&sqlFlag, "generate-sql", false, "Also write an INSERT file for new developments")
	cmd.Flags().BoolVar(&noDBFlag, "no-db", false, "Skip the database check; mark everything NEW")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the crawl cache")
	cmd.MarkFlagsMutuallyExclusive("test", "all")

	return cmd
}
