// Package pixabay searches stock photos for slide backgrounds and images.
package pixabay

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Hit is a single photo result.
type Hit struct {
	ID            int    `json:"id"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	Tags          string `json:"tags"`
}

type searchResponse struct {
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Client queries the Pixabay image search API.
type Client struct {
	http     *resty.Client
	apiKey   string
	proxyURL string
	logger   zerolog.Logger
}

// NewClient builds a Pixabay client. proxyURL is optional; when set,
// photo URLs are rewritten to go through the proxy.
func NewClient(baseURL, apiKey, proxyURL string, logger zerolog.Logger) *Client {
	return &Client{
		http:     resty.New().SetBaseURL(baseURL),
		apiKey:   apiKey,
		proxyURL: proxyURL,
		logger:   logger.With().Str("component", "pixabay").Logger(),
	}
}

// SearchPhoto returns the URL of the best horizontal photo for query.
func (c *Client) SearchPhoto(ctx context.Context, query string) (string, error) {
	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":         c.apiKey,
			"q":           query,
			"image_type":  "photo",
			"orientation": "horizontal",
			"safesearch":  "true",
			"per_page":    "3",
		}).
		SetResult(&result).
		Get("/api/")
	if err != nil {
		return "", fmt.Errorf("pixabay search: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("pixabay search: status %d", resp.StatusCode())
	}
	if len(result.Hits) == 0 {
		return "", fmt.Errorf("pixabay search: no photo for %q", query)
	}

	hit := result.Hits[0]
	photoURL := hit.WebformatURL
	if photoURL == "" {
		photoURL = hit.LargeImageURL
	}
	if photoURL == "" {
		return "", fmt.Errorf("pixabay search: hit %d has no usable URL", hit.ID)
	}

	if c.proxyURL != "" {
		photoURL = c.proxyURL + "?url=" + url.QueryEscape(photoURL)
	}
	return photoURL, nil
}

// FetchAsDataURI downloads a photo and encodes it as a base64 data URI,
// for embedding directly into rendered documents.
func (c *Client) FetchAsDataURI(ctx context.Context, photoURL string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(photoURL)
	if err != nil {
		return "", fmt.Errorf("pixabay download: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("pixabay download: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	encoded := base64.StdEncoding.EncodeToString(resp.Body())
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
