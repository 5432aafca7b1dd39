// Package openai provides the OpenAI-compatible backend for weekly plan
// generation and query embeddings. Any endpoint speaking the chat
// completions API works, including self-hosted ones.
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

	"github.com/mealsmith/planner/internal/infrastructure/config"
	"github.com/mealsmith/planner/internal/infrastructure/monitoring"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client implements the plan generator against an OpenAI-compatible API
type Client struct {
	cfg            config.GeneratorConfig
	embeddingModel string
	client         *http.Client
	limiter        *rate.Limiter
	metrics        *monitoring.MetricsCollector
	logger         *zap.Logger
}

// NewClient creates a new OpenAI-compatible client. All requests share
// one rate limiter so plan generation and embedding calls together stay
// under the configured budget.
func NewClient(cfg *config.Config, metrics *monitoring.MetricsCollector, logger *zap.Logger) *Client {
	return &Client{
		cfg:            cfg.Generator,
		embeddingModel: cfg.Search.EmbeddingModel,
		client: &http.Client{
			Timeout: cfg.Generator.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Generator.RequestsPerMinute)), cfg.Generator.Burst),
		metrics: metrics,
		logger:  logger.Named("openai-client"),
	}
}

var _ outbound.PlanGeneratorService = (*Client)(nil)

// OpenAI API structures
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type EmbeddingResponse struct {
	Data []EmbeddingData `json:"data"`
}

type EmbeddingData struct {
	Embedding []float32 `json:"embedding"`
}

// Generate produces a raw weekly plan for the given context. One call,
// no retries; any failure surfaces to the caller with its cause.
func (c *Client) Generate(ctx context.Context, genCtx outbound.GenerationContext, instruction string) (*outbound.GeneratedPlan, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(genCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation context: %w", err)
	}

	userPrompt := fmt.Sprintf("%s\n\nHousehold and candidate data:\n%s", instruction, payload)

	response, err := c.chatCompletion(ctx, planSystemPrompt, userPrompt)
	duration := time.Since(start)
	if err != nil {
		c.metrics.GeneratorRequest("openai", "error", duration)
		return nil, err
	}
	c.metrics.GeneratorRequest("openai", "ok", duration)

	return parsePlanResponse(response)
}

// CreateEmbedding returns the embedding vector for one text
func (c *Client) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := EmbeddingRequest{
		Model: c.embeddingModel,
		Input: []string{text},
	}

	body, err := c.post(ctx, "/embeddings", reqBody)
	if err != nil {
		return nil, err
	}

	var embResp EmbeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
	}
	if len(embResp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return embResp.Data[0].Embedding, nil
}

// planSystemPrompt pins the output contract for plan generation
const planSystemPrompt = `You are a household meal planner. You receive the household profile, pantry contents and candidate recipes as JSON.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "days": [
    {
      "label": "Monday",
      "meals": [
        {
          "meal_type": "breakfast|lunch|dinner|snack|side_dish",
          "recipe_id": "candidate id when reusing a candidate, otherwise omit",
          "title": "Meal name",
          "prep_minutes": 15,
          "servings": 4,
          "note": "optional short note"
        }
      ]
    }
  ],
  "shopping_list": ["item 1", "item 2"]
}

The days array must contain exactly 7 entries, one per day of the week.
Remember: Respond with ONLY valid JSON. No additional text or formatting.`

// chatCompletion makes the actual API call
func (c *Client) chatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	body, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Chat completion succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// post sends one JSON request and returns the raw response body
func (c *Client) post(ctx context.Context, path string, reqBody interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// parsePlanResponse extracts the plan JSON from the model output.
// Models sometimes wrap the object in prose or fences, so everything
// outside the outermost braces is discarded.
func parsePlanResponse(response string) (*outbound.GeneratedPlan, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var generated outbound.GeneratedPlan
	if err := json.Unmarshal([]byte(response[start:end+1]), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	return &generated, nil
}
