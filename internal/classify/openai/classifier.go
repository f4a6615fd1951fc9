package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kosh/internal/config"
	"kosh/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Classifier implements port.Classifier using the OpenAI Chat Completions
// API. It returns spend-per-category for a whole bill; resolving that into
// per-item assignments is the category resolver's job.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClassifier creates an OpenAI-based classifier from a provider config.
func NewClassifier(cfg *config.AIProviderConfig) *Classifier {
	return newClassifier(cfg, apiURL)
}

// NewClassifierWithEndpoint creates a classifier pointing at a custom API endpoint (for testing).
func NewClassifierWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *Classifier {
	return newClassifier(cfg, endpoint)
}

func newClassifier(cfg *config.AIProviderConfig, endpoint string) *Classifier {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Classifier{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func buildPrompt(items []port.ClassifierItem, categories []string) string {
	type namedPrice struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	named := make([]namedPrice, 0, len(items))
	for _, it := range items {
		named = append(named, namedPrice{Name: it.Name, Price: it.TotalPrice})
	}
	itemsJSON, _ := json.MarshalIndent(named, "", "  ")
	catsJSON, _ := json.MarshalIndent(categories, "", "  ")

	return `You are an expert financial categorizer.

Given the following items from a bill:
` + string(itemsJSON) + `

And the following custom categories defined by the user:
` + string(catsJSON) + `

Categorize each item into exactly ONE of the provided custom categories.
Calculate the total price for each category.

Return a valid JSON object where the keys are the category names (MUST be exactly as provided in the list) and the values are the total price for that category (as a number).

Example output format:
{
  "Groceries": 45.50,
  "Utilities": 100.00
}

IMPORTANT: Respond ONLY with the JSON object. Do not include markdown formatting or any other text.`
}

func (c *Classifier) CategorizeItems(ctx context.Context, items []port.ClassifierItem, categories []string) (map[string]float64, error) {
	reqBody := map[string]interface{}{
		"model":       c.model,
		"temperature": 0.1,
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
		"messages": []map[string]interface{}{
			{"role": "user", "content": buildPrompt(items, categories)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classification API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classification API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

// apiResponse models the Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func parseResponse(body []byte) (map[string]float64, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	text := resp.Choices[0].Message.Content

	var prices map[string]float64
	if err := json.Unmarshal([]byte(text), &prices); err != nil {
		return nil, fmt.Errorf("parsing classification JSON output: %w (raw: %s)", err, truncate(text, 500))
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("empty classification result")
	}
	for cat, v := range prices {
		if v < 0 {
			return nil, fmt.Errorf("negative total %f for category %q", v, cat)
		}
	}
	return prices, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
