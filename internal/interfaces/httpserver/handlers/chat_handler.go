package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nyx-server/internal/domain/chat"
	"nyx-server/internal/domain/tool"
	"nyx-server/internal/interfaces/httpserver/requests"
	"nyx-server/internal/interfaces/httpserver/responses"
)

// Dispatcher is the chat reasoning entry point.
type Dispatcher interface {
	Dispatch(ctx context.Context, params chat.DispatchParams, observer tool.Observer) (*chat.Result, error)
}

// Titler generates conversation titles and starters.
type Titler interface {
	GenerateTitle(ctx context.Context, firstMessage string) (string, error)
	Starter(ctx context.Context) (string, error)
}

// ChatHandler serves the conversation endpoints.
type ChatHandler struct {
	dispatcher Dispatcher
	titler     Titler
	timeZone   *time.Location
	log        zerolog.Logger
}

func NewChatHandler(dispatcher Dispatcher, titler Titler, timeZone *time.Location, log zerolog.Logger) *ChatHandler {
	if timeZone == nil {
		timeZone = time.UTC
	}
	return &ChatHandler{
		dispatcher: dispatcher,
		titler:     titler,
		timeZone:   timeZone,
		log:        log.With().Str("component", "chat_handler").Logger(),
	}
}

// Dispatch runs one reasoning turn. With stream=true the response is
// SSE: tool status events as they happen, then one result event.
func (h *ChatHandler) Dispatch(c *gin.Context) {
	var req requests.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	params := chat.DispatchParams{
		Prompt:          req.Prompt,
		Context:         req.Context,
		CurrentDateTime: time.Now().In(h.timeZone).Format("2006-01-02 15:04 (MST)"),
	}
	for _, turn := range req.History {
		params.History = append(params.History, chat.Turn{Role: chat.Role(turn.Role), Text: turn.Text})
	}

	if req.Stream {
		h.dispatchStream(c, params)
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), params, nil)
	if err != nil {
		responses.HandleError(c, err, "Não foi possível processar a mensagem.")
		return
	}
	c.JSON(http.StatusOK, dispatchResponse(result))
}

func (h *ChatHandler) dispatchStream(c *gin.Context, params chat.DispatchParams) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	observer := tool.ObserverFunc(func(inv tool.Invocation) {
		writeEvent(c, "status", responses.ToolStatusEvent{
			InvocationID: inv.ID,
			Tool:         string(inv.Call.Name),
			Status:       string(inv.Status),
			Error:        inv.Error,
		})
	})

	result, err := h.dispatcher.Dispatch(c.Request.Context(), params, observer)
	if err != nil {
		writeEvent(c, "error", responses.ErrorResponse{
			Error:   "dispatch_failed",
			Message: "Não foi possível processar a mensagem.",
		})
		return
	}
	writeEvent(c, "result", dispatchResponse(result))
}

func writeEvent(c *gin.Context, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
	c.Writer.Flush()
}

func dispatchResponse(result *chat.Result) responses.DispatchResponse {
	resp := responses.DispatchResponse{
		Content:    result.Content,
		Attachment: responses.NewAttachment(result.Attachment),
	}
	if result.ToolCall != nil {
		resp.ToolName = string(result.ToolCall.Name)
	}
	return resp
}

// Title generates a short title for a conversation's first message.
func (h *ChatHandler) Title(c *gin.Context) {
	var req requests.TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	title, err := h.titler.GenerateTitle(c.Request.Context(), req.FirstMessage)
	if err != nil {
		responses.HandleError(c, err, "Não foi possível gerar o título.")
		return
	}
	c.JSON(http.StatusOK, responses.TitleResponse{Title: title})
}

// Starter suggests an opening question for an empty conversation.
func (h *ChatHandler) Starter(c *gin.Context) {
	starter, err := h.titler.Starter(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "Não foi possível sugerir uma pergunta.")
		return
	}
	c.JSON(http.StatusOK, responses.StarterResponse{Starter: starter})
}
