package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"nyx-server/internal/infrastructure/wikipedia"
)

const searchApology = "Desculpe, não consegui pesquisar essa informação no momento."

// Searcher looks up information on the web.
type Searcher interface {
	Search(ctx context.Context, query string) (*wikipedia.Result, error)
}

// WebSearch answers search tool calls with extracted article text. A
// failed lookup never fails the turn: the result carries an apology
// instead, so the conversation can continue.
type WebSearch struct {
	searcher Searcher
	logger   zerolog.Logger
}

func NewWebSearch(searcher Searcher, logger zerolog.Logger) *WebSearch {
	return &WebSearch{
		searcher: searcher,
		logger:   logger.With().Str("component", "search_tool").Logger(),
	}
}

func (s *WebSearch) Handle(ctx context.Context, call *Call) (*Result, error) {
	query := strings.TrimSpace(call.StringArg("query"))
	if query == "" {
		return &Result{Content: searchApology}, nil
	}

	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("web search failed")
		return &Result{Content: searchApology}, nil
	}

	return &Result{
		Content: fmt.Sprintf("Fonte: %s (%s)\n\n%s", result.Title, result.URL, result.Content),
	}, nil
}
