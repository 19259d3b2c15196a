package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nyx-server/internal/domain/deck"
	"nyx-server/internal/domain/deck/pptx"
	"nyx-server/internal/infrastructure/metrics"
	"nyx-server/internal/interfaces/httpserver/requests"
	"nyx-server/internal/interfaces/httpserver/responses"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// DeckGenerator produces presentation descriptions.
type DeckGenerator interface {
	Generate(ctx context.Context, topic string, numContentSlides int) (*deck.PresentationSpec, error)
}

// AssetResolver fetches a deck's visual assets.
type AssetResolver interface {
	Resolve(ctx context.Context, spec *deck.PresentationSpec) map[int]*deck.AssetRecord
}

// DeckHandler serves deck generation and export.
type DeckHandler struct {
	engine    DeckGenerator
	resolver  AssetResolver
	minSlides int
	maxSlides int
	log       zerolog.Logger
}

func NewDeckHandler(engine DeckGenerator, resolver AssetResolver, minSlides, maxSlides int, log zerolog.Logger) *DeckHandler {
	return &DeckHandler{
		engine:    engine,
		resolver:  resolver,
		minSlides: minSlides,
		maxSlides: maxSlides,
		log:       log.With().Str("component", "deck_handler").Logger(),
	}
}

// clampSlides forces the requested content slide count into bounds.
func (h *DeckHandler) clampSlides(n int) int {
	if n < h.minSlides {
		return h.minSlides
	}
	if n > h.maxSlides {
		return h.maxSlides
	}
	return n
}

// Generate produces a validated PresentationSpec for a topic.
func (h *DeckHandler) Generate(c *gin.Context) {
	var req requests.DeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	numSlides := h.clampSlides(req.NumSlides)
	spec, err := h.engine.Generate(c.Request.Context(), req.Topic, numSlides)
	if err != nil {
		responses.HandleError(c, err, "Não foi possível gerar a apresentação.")
		return
	}
	c.JSON(http.StatusOK, responses.DeckResponse{Spec: spec})
}

// Export resolves a deck's assets and streams the rendered .pptx file.
// Rendering is idempotent; a failed export leaves the spec reusable.
func (h *DeckHandler) Export(c *gin.Context) {
	var req requests.DeckExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	var spec deck.PresentationSpec
	if err := json.Unmarshal(req.Spec, &spec); err != nil {
		responses.BadRequest(c, "spec não é um JSON de apresentação válido")
		return
	}
	if len(spec.Slides) == 0 {
		responses.BadRequest(c, "spec não contém slides")
		return
	}

	assets := h.resolver.Resolve(c.Request.Context(), &spec)

	start := time.Now()
	filename, data, err := pptx.Render(&spec, assets)
	metrics.DeckRenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.log.Error().Err(err).Str("title", spec.PresentationTitle).Msg("deck export failed")
		responses.HandleError(c, err, "Não foi possível exportar a apresentação.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, pptxContentType, data)
}
