package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/btrdirectory/surveyor/internal/crawler"
	"github.com/btrdirectory/surveyor/internal/extract"
	"github.com/btrdirectory/surveyor/internal/geocode"
	"github.com/btrdirectory/surveyor/internal/output"
	"github.com/btrdirectory/surveyor/internal/pipeline"
	"github.com/btrdirectory/surveyor/internal/store"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

func newVerifyCommand(root *rootOptions) *cobra.Command {
	var (
		testFlag     bool
		allFlag      bool
		operatorFlag string
		nameFlag     string
		sqlFlag      bool
		noLLMFlag    bool
		noCacheFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-check stored listings against fresh web evidence",
		Example: `  surveyor verify --test                    # First 20 listings
  surveyor verify --all                     # Every published listing
  surveyor verify --operator "Grainger"     # One operator's listings
  surveyor verify --name "The Quarters"     # Listings matching a name
  surveyor verify --all --generate-sql      # Also write UPDATE file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, srcs, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}

			db, err := store.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

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

			var extractor *extract.Extractor
			if !noLLMFlag {
				if err := cfg.RequireLLM(); err != nil {
					return err
				}
				if extractor, err = extract.New(ctx, cfg.GeminiAPIKey, cfg.Model); err != nil {
					return err
				}
			}

			report, err := output.NewReport(root.outputDir, time.Now())
			if err != nil {
				return err
			}

			verifier := &pipeline.Verifier{
				Store:   db,
				Crawler: crawler.New(crawlOpts...),
				Extract: extractor,
				Geocoder: geocode.New(
					geocode.WithBaseURL(cfg.GeocoderBaseURL),
					geocode.WithHTTPClient(httpClient(cfg.HTTPTimeout)),
				),
				Report:          report,
				Fetch:           fetchOptions(testFlag, allFlag, operatorFlag, nameFlag, cfg.TestLimit),
				OperatorDomains: srcs.OperatorDomains,
				Concurrency:     cfg.Concurrency,
				MaxPages:        cfg.MaxPages,
				GenerateSQL:     sqlFlag,
			}

			result, err := verifier.Run(ctx)
			if err != nil {
				return err
			}

			logging.Info().
				Int("listings", len(result.Verifications)).
				Str("csv", result.CSVPath).
				Str("summary", result.SummaryPath).
				Msg("Verification complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&testFlag, "test", false, "Verify only the first listings up to the test limit")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Verify every published listing")
	cmd.Flags().StringVar(&operatorFlag, "operator", "", "Verify listings for one operator")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Verify listings whose name matches")
	cmd.Flags().BoolVar(&sqlFlag, "generate-sql", false, "Also write a suggested-updates SQL file")
	cmd.Flags().BoolVar(&noLLMFlag, "no-llm", false, "Skip LLM content analysis")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the crawl cache")
	cmd.MarkFlagsMutuallyExclusive("test", "all", "operator", "name")

	return cmd
}

func fetchOptions(testFlag, allFlag bool, operator, name string, testLimit int) store.FetchOptions {
	opts := store.FetchOptions{Mode: store.ModeTest, TestLimit: testLimit}
	switch {
	case name != "":
		opts.Mode = store.ModeName
		opts.Name = name
	case operator != "":
		opts.Mode = store.ModeOperator
		opts.Operator = operator
	case allFlag:
		opts.Mode = store.ModeAll
	}
	return opts
}

// httpClient builds the shared outbound HTTP client.
func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
