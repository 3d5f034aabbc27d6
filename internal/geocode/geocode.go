// Package geocode resolves free-form addresses to coordinates using the
// OSM Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	defaultTimeout = 10 * time.Second

	// userAgent identifies this service per the Nominatim usage policy.
	userAgent = "antwerp-accessibility/1.0"
)

// ErrNoResults is returned when the geocoder finds no match for a query.
var ErrNoResults = errors.New("no geocoding results")

// Result is a single resolved location.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Client queries a Nominatim-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client. An empty baseURL selects the
// public Nominatim instance.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// nominatimPlace mirrors the fields we use from the search response.
// Nominatim serializes coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search resolves a query to its best match, restricted to Belgium so
// ambiguous street names resolve locally.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	params := url.Values{
		"q":            {query},
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {"be"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Result{}, fmt.Errorf("decoding geocode response: %w", err)
	}
	if len(places) == 0 {
		return Result{}, ErrNoResults
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing geocode latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parsing geocode longitude: %w", err)
	}

	return Result{Lat: lat, Lon: lon, DisplayName: places[0].DisplayName}, nil
}
