package handlers

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"nyx-server/internal/interfaces/httpserver/responses"
)

// ProxyHandler relays remote images so browser clients avoid mixed
// content and hotlink restrictions on stock photo CDNs.
type ProxyHandler struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewProxyHandler(allowInsecure bool, log zerolog.Logger) *ProxyHandler {
	client := resty.New()
	if allowInsecure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return &ProxyHandler{
		http: client,
		log:  log.With().Str("component", "image_proxy").Logger(),
	}
}

// Image fetches the url query parameter and relays body and content type.
func (h *ProxyHandler) Image(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		responses.BadRequest(c, "parâmetro url é obrigatório")
		return
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		responses.BadRequest(c, "url inválida")
		return
	}

	resp, err := h.http.R().
		SetContext(c.Request.Context()).
		Get(target.String())
	if err != nil {
		h.log.Warn().Err(err).Str("url", target.String()).Msg("image proxy fetch failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{Error: "fetch_failed"})
		return
	}
	if resp.IsError() {
		c.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{Error: "fetch_failed"})
		return
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{Error: "not_an_image"})
		return
	}
	c.Data(http.StatusOK, contentType, resp.Body())
}
