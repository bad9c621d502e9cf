// Package tmdb is a small client for The Movie Database API, covering the
// search and detail endpoints the catalog needs.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable wraps network failures, unexpected statuses and
	// undecodable bodies.
	ErrUnavailable = errors.New("tmdb: provider unavailable")
	ErrNotFound    = errors.New("tmdb: movie not found")
)

// SearchResult is one candidate returned by a title search.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

func (r SearchResult) Year() int {
	return releaseYear(r.ReleaseDate)
}

// MovieDetail is the record used to populate a new catalog entry.
type MovieDetail struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Overview    string `json:"overview"`
}

func (d MovieDetail) Year() int {
	return releaseYear(d.ReleaseDate)
}

// releaseYear returns the year of a YYYY-MM-DD date, or 0 when the provider
// has none.
func releaseYear(date string) int {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}
	return t.Year()
}

type searchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	imageURL   string
	language   string
	log        *zap.Logger
}

func NewClient(config utils.TMDBConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		imageURL:   strings.TrimRight(config.ImageURL, "/"),
		language:   config.Language,
		log:        log.With(zap.String("client", "tmdb")),
	}
}

// Search looks movies up by title.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	c.log.Debug("Search completed", zap.String("query", query), zap.Int("results", len(resp.Results)))
	return resp.Results, nil
}

// Movie fetches the detail record for a provider id.
func (c *Client) Movie(ctx context.Context, id int) (*MovieDetail, error) {
	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}

	var detail MovieDetail
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), params, &detail); err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}

	return &detail, nil
}

// PosterURL turns a poster_path into an absolute image URL.
func (c *Client) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warn("Unexpected status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.log.Warn("Malformed response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: decode body: %v", ErrUnavailable, err)
	}

	return nil
}
