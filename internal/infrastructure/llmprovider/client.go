package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/infrastructure/metrics"
)

// Client implements the llm.Provider interface against the generative
// language REST API.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a Resty-backed provider client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(120 * time.Second),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)

type generateBody struct {
	Contents          []llm.Content  `json:"contents"`
	SystemInstruction *llm.Content   `json:"systemInstruction,omitempty"`
	Tools             []llm.Tool     `json:"tools,omitempty"`
	GenerationConfig  map[string]any `json:"generationConfig,omitempty"`
}

// GenerateContent calls models/{model}:generateContent.
func (c *Client) GenerateContent(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	body := generateBody{
		Contents:          req.Contents,
		SystemInstruction: req.SystemInstruction,
		Tools:             req.Tools,
	}
	if len(req.ResponseSchema) > 0 {
		var schema map[string]any
		if err := json.Unmarshal(req.ResponseSchema, &schema); err != nil {
			return nil, fmt.Errorf("decode response schema: %w", err)
		}
		body.GenerationConfig = map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
		}
	}

	var completion llm.GenerateResponse
	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&completion).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", req.Model))
	metrics.LLMRequestDuration.WithLabelValues(req.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(req.Model, "error").Inc()
		return nil, &llm.ProviderError{Message: err.Error()}
	}
	if resp.IsError() {
		metrics.LLMRequestsTotal.WithLabelValues(req.Model, "error").Inc()
		return nil, &llm.ProviderError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("provider error (%d): %s", resp.StatusCode(), resp.String()),
		}
	}
	metrics.LLMRequestsTotal.WithLabelValues(req.Model, "success").Inc()
	return &completion, nil
}

type predictBody struct {
	Instances  []map[string]any `json:"instances"`
	Parameters map[string]any   `json:"parameters,omitempty"`
}

type imagePrediction struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MIMEType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateImage calls models/{model}:predict and returns the first image.
func (c *Client) GenerateImage(ctx context.Context, model, prompt string) (*llm.Media, error) {
	body := predictBody{
		Instances:  []map[string]any{{"prompt": prompt}},
		Parameters: map[string]any{"sampleCount": 1},
	}

	var prediction imagePrediction
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&prediction).
		Post(fmt.Sprintf("/v1beta/models/%s:predict", model))
	if err != nil {
		return nil, &llm.ProviderError{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, &llm.ProviderError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("image generation error (%d): %s", resp.StatusCode(), resp.String()),
		}
	}
	if len(prediction.Predictions) == 0 {
		return nil, &llm.ProviderError{Message: "image generation returned no predictions"}
	}
	first := prediction.Predictions[0]
	mime := first.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &llm.Media{MIMEType: mime, Data: first.BytesBase64Encoded}, nil
}

// StartMediaOperation calls models/{model}:predictLongRunning.
func (c *Client) StartMediaOperation(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
	body := predictBody{
		Instances: []map[string]any{{"prompt": req.Prompt}},
	}
	if req.AspectRatio != "" {
		body.Parameters = map[string]any{"aspectRatio": req.AspectRatio}
	}

	var raw operationPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&raw).
		Post(fmt.Sprintf("/v1beta/models/%s:predictLongRunning", req.Model))
	if err != nil {
		return nil, &llm.ProviderError{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, &llm.ProviderError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("media operation error (%d): %s", resp.StatusCode(), resp.String()),
		}
	}
	return raw.toOperation(), nil
}

// CheckOperation refreshes a long-running operation by name.
func (c *Client) CheckOperation(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
	var raw operationPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetResult(&raw).
		Get("/v1beta/" + op.Name)
	if err != nil {
		return nil, &llm.ProviderError{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, &llm.ProviderError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("operation status error (%d): %s", resp.StatusCode(), resp.String()),
		}
	}
	return raw.toOperation(), nil
}

// DownloadMedia fetches the generated binary, appending the API key query
// parameter the file endpoint requires.
func (c *Client) DownloadMedia(ctx context.Context, uri string) ([]byte, string, error) {
	target := uri
	if u, err := url.Parse(uri); err == nil {
		q := u.Query()
		q.Set("key", c.apiKey)
		u.RawQuery = q.Encode()
		target = u.String()
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(false).
		Get(target)
	if err != nil {
		return nil, "", &llm.ProviderError{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, "", &llm.ProviderError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("media download error (%d)", resp.StatusCode()),
		}
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	return resp.Body(), contentType, nil
}

// operationPayload mirrors the wire shape of a long-running video operation.
type operationPayload struct {
	Name     string              `json:"name"`
	Done     bool                `json:"done"`
	Error    *llm.OperationError `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse *struct {
			GeneratedSamples []struct {
				Video struct {
					URI      string `json:"uri"`
					MIMEType string `json:"mimeType"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

func (p *operationPayload) toOperation() *llm.Operation {
	op := &llm.Operation{
		Name:  p.Name,
		Done:  p.Done,
		Error: p.Error,
	}
	if p.Response != nil && p.Response.GenerateVideoResponse != nil {
		for _, sample := range p.Response.GenerateVideoResponse.GeneratedSamples {
			if sample.Video.URI == "" {
				continue
			}
			mime := sample.Video.MIMEType
			if mime == "" {
				mime = "video/mp4"
			}
			op.Media = append(op.Media, llm.Media{URI: sample.Video.URI, MIMEType: mime})
		}
	}
	return op
}
