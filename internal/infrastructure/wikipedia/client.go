// Package wikipedia searches Wikipedia and extracts readable article text.
package wikipedia

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const (
	userAgent       = "NyxAI/1.0 (https://nyx.ai; contact@nyx.ai)"
	maxArticleChars = 5000
	maxSummaryChars = 300
)

// Result holds an extracted article.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// Client queries the Wikipedia opensearch API and fetches article pages.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetHeader("User-Agent", userAgent),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With().Str("component", "wikipedia").Logger(),
	}
}

// Search looks up the best matching article for query and returns its
// extracted text, truncated to a size suitable for model context.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	title, pageURL, description, err := c.opensearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return nil, fmt.Errorf("no article found for %q", query)
	}

	content, err := c.fetchArticle(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	summary := description
	if summary == "" {
		summary = content
	}

	return &Result{
		Title:   title,
		URL:     pageURL,
		Summary: truncate(summary, maxSummaryChars),
		Content: truncate(content, maxArticleChars),
	}, nil
}

// opensearch returns the first hit of the opensearch endpoint. The
// response is a positional array: [echo, [titles], [descriptions], [urls]].
func (c *Client) opensearch(ctx context.Context, query string) (title, pageURL, description string, err error) {
	var payload []any
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action": "opensearch",
			"search": query,
			"limit":  "1",
			"format": "json",
		}).
		SetResult(&payload).
		Get(c.baseURL + "/w/api.php")
	if err != nil {
		return "", "", "", fmt.Errorf("wikipedia opensearch: %w", err)
	}
	if resp.IsError() {
		return "", "", "", fmt.Errorf("wikipedia opensearch: status %d", resp.StatusCode())
	}
	if len(payload) < 4 {
		return "", "", "", fmt.Errorf("wikipedia opensearch: malformed response")
	}

	title = firstString(payload[1])
	description = firstString(payload[2])
	pageURL = firstString(payload[3])
	return title, pageURL, description, nil
}

func (c *Client) fetchArticle(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("wikipedia article fetch: %w", err)
	}
	defer resp.RawBody().Close()
	if resp.IsError() {
		return "", fmt.Errorf("wikipedia article fetch: status %d", resp.StatusCode())
	}

	doc, err := html.Parse(resp.RawBody())
	if err != nil {
		return "", fmt.Errorf("wikipedia article parse: %w", err)
	}
	return ExtractContent(doc), nil
}

var skipTags = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
	"table":  true,
}

var skipClasses = []string{
	"mw-editsection",
	"infobox",
	"thumb",
	"mw-jump-link",
	"toc",
	"reflist",
}

// ExtractContent walks an HTML tree and returns its visible text with
// navigation chrome, tables and reference boilerplate stripped out.
func ExtractContent(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] || hasSkippedClass(n) {
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func hasSkippedClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			for _, skipped := range skipClasses {
				if class == skipped {
					return true
				}
			}
		}
	}
	return false
}

func firstString(v any) string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return ""
	}
	s, _ := items[0].(string)
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
