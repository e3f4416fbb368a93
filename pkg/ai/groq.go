package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/foyer-app/foyer-voice/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions, used to extract
// task signals from short household utterances
type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, model string
	timeout := 30 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		model = cfg.Model
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	base := os.Getenv("GROQ_API_URL")
	if base == "" {
		base = "https://api.groq.com"
	}

	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different endpoint, for tests
func (g *GroqClient) WithBaseURL(baseURL string) *GroqClient {
	g.baseURL = baseURL
	return g
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const signalsPromptTemplate = `You classify one short spoken household note into task signals.
Language of the note: %s
Known children names: %s

Return ONLY a JSON object with this exact shape, no prose:
{"action":{"verb":"...","object":"... or null"},
"category":{"primary":"transport|health|education|food|household|activities|social|other","secondary":null,"confidence":0.0,"reason":"..."},
"urgency":{"level":"critical|high|low|none","confidence":0.0,"reason":"..."},
"date":{"type":"none|relative|absolute","raw":"...","date":"YYYY-MM-DD or null","confidence":0.0,"reason":"..."},
"child":{"name":"...","confidence":0.0,"reason":"..."}}

"child" must be null when no known child is mentioned. "date.date" must be
null when "date.type" is "none". Every "confidence" is between 0 and 1 and
every "reason" is one short sentence.

Note:
%s`

// ExtractSignals asks the model to classify an utterance and returns the raw
// assistant content. Callers parse and validate the JSON themselves.
func (g *GroqClient) ExtractSignals(ctx context.Context, text, lang string, childNames []string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("groq api key not configured")
	}

	prompt := fmt.Sprintf(signalsPromptTemplate, lang, strings.Join(childNames, ", "), text)

	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: 0.1,
		MaxTokens:   512,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
