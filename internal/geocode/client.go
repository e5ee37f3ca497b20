// Package geocode resolves UK postcodes to coordinates and regions
// using the postcodes.io API, with offline prefix and city fallbacks.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

// DefaultBaseURL is the public postcodes.io endpoint.
const DefaultBaseURL = "https://api.postcodes.io"

// Client looks up postcodes against the postcodes.io API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a postcodes.io client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type lookupResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode      string   `json:"postcode"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Region        string   `json:"region"`
		Country       string   `json:"country"`
		AdminDistrict string   `json:"admin_district"`
	} `json:"result"`
}

// Lookup resolves a postcode to coordinates and a region. An invalid
// or unknown postcode returns a Geolocation with Valid false rather
// than an error; errors are reserved for transport failures.
func (c *Client) Lookup(ctx context.Context, postcode string) (developments.Geolocation, error) {
	invalid := developments.Geolocation{Postcode: postcode}

	cleaned := developments.NormalizePostcode(postcode)
	if cleaned == "" {
		return invalid, nil
	}

	endpoint := fmt.Sprintf("%s/postcodes/%s", c.baseURL, url.PathEscape(cleaned))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return invalid, errors.NewAPIError("postcodes.io", 0, endpoint, "build request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return invalid, errors.NewAPIError("postcodes.io", 0, endpoint, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode == http.StatusNotFound {
		// Unknown postcode, not a transport failure.
		return invalid, nil
	}
	if resp.StatusCode != http.StatusOK {
		return invalid, errors.NewAPIError("postcodes.io", resp.StatusCode, endpoint, "unexpected status", nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return invalid, errors.NewAPIError("postcodes.io", resp.StatusCode, endpoint, "read body", err)
	}

	var lr lookupResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return invalid, errors.NewParseError("json", endpoint, "decode lookup response", err)
	}

	geo := developments.Geolocation{
		Postcode:      lr.Result.Postcode,
		Latitude:      lr.Result.Latitude,
		Longitude:     lr.Result.Longitude,
		AdminDistrict: lr.Result.AdminDistrict,
		Valid:         true,
	}
	if region, ok := onsToRegion(lr.Result.Region, lr.Result.Country); ok {
		geo.Region = region
	}

	logging.Debug().
		Str("postcode", geo.Postcode).
		Str("region", string(geo.Region)).
		Msg("Postcode resolved")

	return geo, nil
}
