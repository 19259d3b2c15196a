package v1

import (
	"github.com/gin-gonic/gin"

	"nyx-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/chat/dispatch", r.handlers.Chat.Dispatch)
	group.POST("/chat/title", r.handlers.Chat.Title)
	group.GET("/chat/starter", r.handlers.Chat.Starter)
	group.POST("/decks", r.handlers.Deck.Generate)
	group.POST("/decks/export", r.handlers.Deck.Export)
	group.GET("/image-proxy", r.handlers.Proxy.Image)
}
