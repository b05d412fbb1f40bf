package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfolio-server/pkg/llm"
)

// Client is a minimal OpenRouter (OpenAI-compatible) chat completions client.
type Client struct {
	APIKey   string
	BaseURL  string
	AppTitle string
	Referer  string
	httpDo   *http.Client
}

// requestTimeout bounds every provider call. The widget disables input while a
// send is outstanding, so an unbounded wait would freeze the conversation.
const requestTimeout = 30 * time.Second

func New(apiKey, baseURL, appTitle, referer string) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Client{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		AppTitle: appTitle,
		Referer:  referer,
		httpDo: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	// Keep defaults conservative; callers can change by editing fields if needed.
	Temperature float32 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type apiError struct {
	Error struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the whole conversation history and returns the model reply.
// Errors are wrapped into the llm taxonomy so callers never inspect HTTP
// status codes themselves.
func (c *Client) Chat(ctx context.Context, model string, history []llm.Message) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: api key is empty", llm.ErrConfiguration)
	}
	if model == "" {
		return "", fmt.Errorf("%w: empty model name", llm.ErrModelUnavailable)
	}
	msgs := make([]message, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, message{Role: m.Role, Content: m.Content})
	}
	reqBody := chatCompletionsRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: 0.2,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.AppTitle)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrTransient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyStatus(resp)
	}
	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", llm.ErrTransient, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned by model", llm.ErrTransient)
	}
	return out.Choices[0].Message.Content, nil
}

func classifyStatus(resp *http.Response) error {
	var body apiError
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error.Message

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: http %d: %s", llm.ErrConfiguration, resp.StatusCode, msg)
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", llm.ErrQuota, resp.StatusCode, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: http %d: %s", llm.ErrModelUnavailable, resp.StatusCode, msg)
	}
	// Some OpenAI-compatible backends report an unknown model as 400.
	if resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "model") {
		return fmt.Errorf("%w: http %d: %s", llm.ErrModelUnavailable, resp.StatusCode, msg)
	}
	return fmt.Errorf("%w: http %d: %s", llm.ErrTransient, resp.StatusCode, msg)
}
