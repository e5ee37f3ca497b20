// Package extract turns crawled page text into structured development
// data using the Gemini API. Two operations are exposed: Discover pulls
// every development mentioned on a page, Verify extracts fields for one
// known listing with per-field confidence.
package extract

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

// Content shorter than these is not worth an API call.
const (
	minDiscoveryContent = 100
	minVerifyContent    = 50
)

// Truncation limits keep token costs bounded.
const (
	discoveryWindow = 12000
	verifyWindow    = 8000
)

// Extractor calls the Gemini API to extract development data from page
// content.
type Extractor struct {
	client *genai.Client
	model  string
}

// New creates an Extractor backed by the Gemini API.
func New(ctx context.Context, apiKey, model string) (*Extractor, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.NewAPIError("gemini", 0, "", "create client", err)
	}

	return &Extractor{client: client, model: model}, nil
}

// Discover extracts every development mentioned in page content. Pages
// too short to carry real evidence return no observations. Extracted
// records with missing or too-short names are dropped; region, status,
// and type values outside their vocabularies are cleared rather than
// guessed.
func (e *Extractor) Discover(ctx context.Context, content, sourceURL string) ([]developments.Observation, error) {
	if len(strings.TrimSpace(content)) < minDiscoveryContent {
		return nil, nil
	}

	prompt := fmt.Sprintf(discoveryPrompt, sourceURL, truncate(content, discoveryWindow))
	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, ok := parseObject(raw)
	if !ok {
		logging.Warn().Str("source_url", sourceURL).Msg("Unparseable discovery response")
		return nil, nil
	}

	items, ok := parsed["developments"].([]any)
	if !ok {
		return nil, nil
	}

	var observations []developments.Observation
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		obs, ok := observationFrom(fields, sourceURL)
		if !ok {
			continue
		}
		observations = append(observations, obs)
	}

	logging.Debug().
		Str("source_url", sourceURL).
		Int("observations", len(observations)).
		Msg("Discovery extraction complete")

	return observations, nil
}

// Verify extracts fields for one known listing, with per-field
// confidence tiers. Returns nil when the content is too short or the
// response cannot be parsed.
func (e *Extractor) Verify(ctx context.Context, content, listingName, listingArea string) (*verify.Extraction, error) {
	if len(strings.TrimSpace(content)) < minVerifyContent {
		return nil, nil
	}

	locality := listingArea
	if locality == "" {
		locality = "the UK"
	}

	prompt := fmt.Sprintf(verifyPrompt, listingName, locality, truncate(content, verifyWindow))
	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, ok := parseObject(raw)
	if !ok {
		logging.Warn().Str("listing", listingName).Msg("Unparseable verification response")
		return nil, nil
	}

	return extractionFrom(parsed), nil
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", errors.NewAPIError("gemini", 0, e.model, "generate content", err)
	}
	return resp.Text(), nil
}

// observationFrom validates one extracted record. The name gate and the
// vocabulary checks mirror what the resolver expects downstream.
func observationFrom(fields map[string]any, sourceURL string) (developments.Observation, bool) {
	name := strings.TrimSpace(stringField(fields, "name"))
	if len(name) < 3 {
		return developments.Observation{}, false
	}

	obs := developments.Observation{
		Name:           name,
		SourceURL:      sourceURL,
		OperatorName:   optional(fields, "operator_name"),
		AssetOwnerName: optional(fields, "asset_owner_name"),
		Area:           optional(fields, "area"),
		Postcode:       optional(fields, "postcode"),
		NumberOfUnits:  optional(fields, "number_of_units"),
		CompletionDate: optional(fields, "completion_date"),
		Description:    optional(fields, "description"),
		WebsiteURL:     optional(fields, "website_url"),
	}

	// Closed vocabularies: out-of-vocabulary values are dropped, except
	// type which defaults to Multifamily.
	if raw := stringField(fields, "region"); raw != "" {
		if region, ok := developments.ParseRegion(raw); ok {
			value := region.String()
			obs.Region = &value
		}
	}
	if raw := stringField(fields, "status"); raw != "" {
		if status, ok := developments.ParseStatus(raw); ok {
			value := status.String()
			obs.Status = &value
		}
	}
	if raw := stringField(fields, "development_type"); raw != "" {
		devType, ok := developments.ParseType(raw)
		if !ok {
			devType = developments.TypeMultifamily
		}
		value := devType.String()
		obs.DevelopmentType = &value
	}

	return obs, true
}

// extractionFrom converts a parsed verification response into an
// Extraction, splitting "*_confidence" keys from value keys.
func extractionFrom(parsed map[string]any) *verify.Extraction {
	extraction := &verify.Extraction{
		Fields:     make(map[string]string),
		Confidence: make(map[string]developments.Confidence),
	}

	for key, value := range parsed {
		if field, ok := strings.CutSuffix(key, "_confidence"); ok {
			if c, valid := developments.ParseConfidence(fmt.Sprint(value)); valid {
				extraction.Confidence[field] = c
			}
			continue
		}
		if s := coerceString(value); s != "" {
			extraction.Fields[key] = s
		}
	}

	if len(extraction.Fields) == 0 {
		return nil
	}
	return extraction
}

func optional(fields map[string]any, key string) *string {
	s := strings.TrimSpace(stringField(fields, key))
	if s == "" {
		return nil
	}
	return &s
}

func stringField(fields map[string]any, key string) string {
	return coerceString(fields[key])
}

// coerceString renders scalar JSON values as strings. The extractor
// sometimes returns numbers where strings are expected; everything else
// is discarded.
func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
