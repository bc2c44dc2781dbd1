package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	model          = "gemini-2.5-flash"
)

// AdviceItem is one categorized advisory line returned by the model.
type AdviceItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Client calls the Gemini generateContent API and parses the structured
// JSON-array response.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey string) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: client}
}

// SetBaseURL redirects API calls, e.g. at a test server.
func (c *Client) SetBaseURL(url string) *Client {
	c.httpClient.SetBaseURL(url)
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
	ResponseSchema   any    `json:"responseSchema"`
}

// adviceSchema constrains the response to an array of {type, message}.
var adviceSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"type":    map[string]any{"type": "STRING"},
			"message": map[string]any{"type": "STRING"},
		},
		"required": []string{"type", "message"},
	},
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateAdvice sends the prompt and decodes the JSON array the schema
// forces the model to return.
func (c *Client) GenerateAdvice(ctx context.Context, prompt string) ([]AdviceItem, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   adviceSchema,
		},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))

	if err != nil {
		return nil, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	text := strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text)
	// Strip markdown fences in case the model wraps the JSON anyway.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var items []AdviceItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w. Response was: %s", err, text)
	}

	return items, nil
}
