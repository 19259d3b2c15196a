package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/chat"
	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/tool"
	"nyx-server/internal/interfaces/httpserver/responses"
)

type fakeDispatcher struct {
	result *chat.Result
	err    error
	params chat.DispatchParams
	invs   []tool.Invocation
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params chat.DispatchParams, observer tool.Observer) (*chat.Result, error) {
	f.params = params
	for _, inv := range f.invs {
		if observer != nil {
			observer.ToolStatusChanged(inv)
		}
	}
	return f.result, f.err
}

type fakeTitler struct {
	title   string
	starter string
	err     error
}

func (f *fakeTitler) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	return f.title, f.err
}

func (f *fakeTitler) Starter(ctx context.Context) (string, error) {
	return f.starter, f.err
}

func chatRouter(dispatcher Dispatcher, titler Titler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(dispatcher, titler, time.UTC, zerolog.Nop())
	engine := gin.New()
	engine.POST("/v1/chat/dispatch", h.Dispatch)
	engine.POST("/v1/chat/title", h.Title)
	engine.GET("/v1/chat/starter", h.Starter)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestDispatchEndpoint(t *testing.T) {
	dispatcher := &fakeDispatcher{result: &chat.Result{
		Content:    "Aqui está a imagem que você pediu.",
		ToolCall:   &tool.Call{Name: tool.NameGenerateImage},
		Attachment: &tool.Attachment{Name: "imagem-gerada", URL: "data:image/png;base64,xx", Type: "image/png"},
	}}
	engine := chatRouter(dispatcher, &fakeTitler{})

	rec := doJSON(t, engine, http.MethodPost, "/v1/chat/dispatch",
		`{"prompt":"gere uma imagem de um gato","history":[{"role":"user","text":"oi"},{"role":"model","text":"olá"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.DispatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Aqui está a imagem que você pediu.", resp.Content)
	assert.Equal(t, string(tool.NameGenerateImage), resp.ToolName)
	require.NotNil(t, resp.Attachment)
	assert.Equal(t, "image/png", resp.Attachment.Type)

	assert.Len(t, dispatcher.params.History, 2)
	assert.NotEmpty(t, dispatcher.params.CurrentDateTime)
}

func TestDispatchEndpointValidation(t *testing.T) {
	engine := chatRouter(&fakeDispatcher{}, &fakeTitler{})

	rec := doJSON(t, engine, http.MethodPost, "/v1/chat/dispatch", `{"history":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/v1/chat/dispatch", `{"prompt":"oi","history":[{"role":"system","text":"x"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatchEndpointQuota(t *testing.T) {
	dispatcher := &fakeDispatcher{err: &llm.ProviderError{StatusCode: 429, Message: "quota"}}
	engine := chatRouter(dispatcher, &fakeTitler{})

	rec := doJSON(t, engine, http.MethodPost, "/v1/chat/dispatch", `{"prompt":"oi"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "quota_exhausted", resp.Error)
}

func TestDispatchEndpointStream(t *testing.T) {
	dispatcher := &fakeDispatcher{
		result: &chat.Result{Content: "pronto"},
		invs: []tool.Invocation{
			{ID: "inv-1", Call: tool.Call{Name: tool.NameGenerateImage}, Status: tool.StatusRunning},
			{ID: "inv-1", Call: tool.Call{Name: tool.NameGenerateImage}, Status: tool.StatusSucceeded},
		},
	}
	engine := chatRouter(dispatcher, &fakeTitler{})

	rec := doJSON(t, engine, http.MethodPost, "/v1/chat/dispatch", `{"prompt":"gere","stream":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: status")
	assert.Contains(t, body, `"status":"running"`)
	assert.Contains(t, body, `"status":"succeeded"`)
	assert.Contains(t, body, "event: result")
	assert.Contains(t, body, `"content":"pronto"`)

	running := strings.Index(body, `"running"`)
	result := strings.Index(body, "event: result")
	assert.Less(t, running, result, "status events precede the result")
}

func TestTitleEndpoint(t *testing.T) {
	engine := chatRouter(&fakeDispatcher{}, &fakeTitler{title: "História do Café"})

	rec := doJSON(t, engine, http.MethodPost, "/v1/chat/title", `{"first_message":"me fale sobre café"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.TitleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "História do Café", resp.Title)
}

func TestStarterEndpoint(t *testing.T) {
	engine := chatRouter(&fakeDispatcher{}, &fakeTitler{starter: "Qual é a origem do universo?"})

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/starter", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.StarterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Qual é a origem do universo?", resp.Starter)
}
