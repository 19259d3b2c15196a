package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestExtractContent(t *testing.T) {
	page := `<html><head><style>.x{}</style><script>var a;</script></head>
	<body>
	<nav>Menu</nav>
	<header>Site header</header>
	<span class="mw-jump-link">Jump to content</span>
	<div class="toc">Table of contents</div>
	<p>First   paragraph
	with broken whitespace.</p>
	<table class="infobox"><tr><td>Born: 1900</td></tr></table>
	<span class="mw-editsection">[edit]</span>
	<p>Second paragraph.</p>
	<div class="reflist">[1] Some reference</div>
	<footer>Footer text</footer>
	</body></html>`

	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)

	got := ExtractContent(doc)

	assert.Equal(t, "First paragraph with broken whitespace. Second paragraph.", got)
}

func TestSearch(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			assert.Equal(t, "opensearch", r.URL.Query().Get("action"))
			assert.Equal(t, "go language", r.URL.Query().Get("search"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Contains(t, r.Header.Get("User-Agent"), "NyxAI")
			payload := []any{
				"go language",
				[]string{"Go (linguagem de programação)"},
				[]string{"Linguagem de programação"},
				[]string{srv.URL + "/wiki/Go"},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(payload)
		case "/wiki/Go":
			fmt.Fprint(w, `<html><body><nav>skip</nav><p>Go foi criada em 2009.</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	result, err := client.Search(context.Background(), "go language")
	require.NoError(t, err)

	assert.Equal(t, "Go (linguagem de programação)", result.Title)
	assert.Equal(t, srv.URL+"/wiki/Go", result.URL)
	assert.Equal(t, "Linguagem de programação", result.Summary)
	assert.Equal(t, "Go foi criada em 2009.", result.Content)
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := []any{"nothing", []string{}, []string{}, []string{}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	_, err := client.Search(context.Background(), "nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no article found")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxArticleChars+100)
	assert.Len(t, truncate(long, maxArticleChars), maxArticleChars+3)
	assert.Equal(t, "short", truncate("short", maxArticleChars))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("x", maxSummaryChars-1) + "éç"
	got := truncate(s, maxSummaryChars)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", maxSummaryChars-1)+"...", got)

	accented := strings.Repeat("ã", 200)
	got = truncate(accented, maxSummaryChars)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
