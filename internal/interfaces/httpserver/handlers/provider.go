package handlers

import (
	"time"

	"github.com/rs/zerolog"
)

// Provider wires HTTP handlers.
type Provider struct {
	Chat  *ChatHandler
	Deck  *DeckHandler
	Proxy *ProxyHandler
}

func NewProvider(dispatcher Dispatcher, titler Titler, engine DeckGenerator, resolver AssetResolver, timeZone *time.Location, minSlides, maxSlides int, proxyAllowInsecure bool, log zerolog.Logger) *Provider {
	return &Provider{
		Chat:  NewChatHandler(dispatcher, titler, timeZone, log),
		Deck:  NewDeckHandler(engine, resolver, minSlides, maxSlides, log),
		Proxy: NewProxyHandler(proxyAllowInsecure, log),
	}
}
