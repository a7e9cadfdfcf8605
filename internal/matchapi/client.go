// Package matchapi is the HTTP client for the wall art matching service.
package matchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/model"
)

// Config holds client settings.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// Client talks to the matching service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the service rooted at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", common.ErrMissingConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Match submits a match request. It performs exactly one HTTP call.
func (c *Client) Match(ctx context.Context, req model.MatchRequest) (model.MatchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.MatchResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	slog.Debug("Calling match API",
		"categories", req.Categories,
		"colors", req.Colors,
		"image_mb", fmt.Sprintf("%.2f", float64(len(req.WallImage))/1024/1024))

	var resp model.MatchResponse
	if err := c.do(ctx, http.MethodPost, "/api/match", body, &resp); err != nil {
		return model.MatchResponse{}, err
	}

	slog.Debug("Match API response received",
		"success", resp.Success,
		"artworks", len(resp.Artworks),
		"has_composite", resp.CompositeImage != "")

	return resp, nil
}

// Categories fetches the category catalog.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Colors fetches the color catalog.
func (c *Client) Colors(ctx context.Context) ([]model.ColorOption, error) {
	var colors []model.ColorOption
	if err := c.do(ctx, http.MethodGet, "/api/colors", nil, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

// Catalog fetches both facet catalogs, falling back to the built-in lists
// for any that cannot be loaded.
func (c *Client) Catalog(ctx context.Context) model.Catalog {
	catalog := model.DefaultCatalog()

	if categories, err := c.Categories(ctx); err != nil {
		slog.Warn("Using default categories", "error", err)
	} else if len(categories) > 0 {
		catalog.Categories = categories
	}

	if colors, err := c.Colors(ctx); err != nil {
		slog.Warn("Using default colors", "error", err)
	} else if len(colors) > 0 {
		catalog.Colors = colors
	}

	return catalog
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("Match API error response", "status", resp.StatusCode, "body", string(respBody))
		return &common.APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &common.ParseError{Err: err}
	}

	return nil
}
