// Package openai is a direct HTTP client for the OpenAI chat completions
// API, used for general natural-language queries that no intent rule claims.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds OpenAI API settings.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // defaults to api.openai.com
	MaxTokens   int
	Temperature *float64
}

// Client calls the OpenAI chat completions endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logging.Logger
}

// New creates an OpenAI client.
func New(cfg Config, log *logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 120 * time.Second},
		log:  log.Sub("openai"),
	}
}

// Query sends the user's raw text to the model along with conversation
// context and sentiment hints, and returns an agent-kind Result. The
// model's structured responses (JSON objects carrying a "type" field)
// are passed through untouched for the normalizer.
func (c *Client) Query(ctx context.Context, text string, convCtx domain.ConversationContext, sentiment domain.Sentiment) domain.Result {
	if c.cfg.APIKey == "" {
		return domain.Fail("OpenAI API key is not configured")
	}

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": buildSystemPrompt(convCtx, sentiment)},
			{"role": "user", "content": text},
		},
	}
	if c.cfg.MaxTokens > 0 {
		body["max_tokens"] = c.cfg.MaxTokens
	}
	if c.cfg.Temperature != nil {
		body["temperature"] = *c.cfg.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Fail("marshaling request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.Fail("creating request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.FailErr(&domain.UpstreamError{Service: "openai", Message: err.Error()})
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FailErr(&domain.UpstreamError{Service: "openai", Message: "reading response: " + err.Error()})
	}
	if resp.StatusCode != http.StatusOK {
		return domain.FailErr(&domain.UpstreamError{
			Service: "openai",
			Status:  resp.StatusCode,
			Message: apiErrorMessage(respBody),
		})
	}

	var result completionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return domain.FailErr(&domain.UpstreamError{Service: "openai", Message: "parsing response: " + err.Error()})
	}
	if len(result.Choices) == 0 {
		return domain.Fail("OpenAI returned no choices")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	c.log.Debug().
		Str("model", result.Model).
		Int("promptTokens", result.Usage.PromptTokens).
		Int("completionTokens", result.Usage.CompletionTokens).
		Msg("completion received")

	return domain.OK(domain.KindAgent, parseAgentPayload(content))
}

// parseAgentPayload detects structured model replies. A JSON object that
// carries a "type" field is passed through; everything else is plain text.
func parseAgentPayload(content string) domain.AgentPayload {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var structured map[string]any
		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			if t, ok := structured["type"].(string); ok && t != "" {
				return domain.AgentPayload{Type: t, Data: structured}
			}
		}
	}
	return domain.AgentPayload{Reply: content}
}

func buildSystemPrompt(convCtx domain.ConversationContext, sentiment domain.Sentiment) string {
	var b strings.Builder
	b.WriteString("You are a customer support assistant for a custom print shop. ")
	b.WriteString("Answer briefly and helpfully. If the question concerns a specific order, ")
	b.WriteString("quote, invoice, customer, or product, use the conversation context below.\n")

	if convCtx != (domain.ConversationContext{}) {
		b.WriteString("\nConversation context:\n")
		if convCtx.LastOrderID != "" {
			fmt.Fprintf(&b, "- last order: %s (%s)\n", convCtx.LastOrderID, convCtx.LastOrderType)
		}
		if convCtx.LastCustomerID != "" {
			fmt.Fprintf(&b, "- last customer: %s\n", convCtx.LastCustomerID)
		}
		if convCtx.LastSearchTerm != "" {
			fmt.Fprintf(&b, "- last search: %s\n", convCtx.LastSearchTerm)
		}
		if convCtx.LastIntent != "" {
			fmt.Fprintf(&b, "- last intent: %s\n", convCtx.LastIntent)
		}
	}

	switch {
	case sentiment.IsUrgent:
		b.WriteString("\nThe customer sounds urgent. Be direct and lead with the answer.\n")
	case sentiment.IsConfused:
		b.WriteString("\nThe customer sounds confused. Explain step by step.\n")
	case sentiment.IsNegative:
		b.WriteString("\nThe customer sounds frustrated. Acknowledge that before answering.\n")
	}

	return b.String()
}

func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}

// completionResponse mirrors the chat completions payload.
type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}
