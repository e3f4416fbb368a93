package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// ChatClient is the minimal LLM surface the provider path needs. pkg/ai
// implements it against Groq.
type ChatClient interface {
	ExtractSignals(ctx context.Context, text, lang string, childNames []string) (string, error)
}

// LLMProvider adapts a chat-completion client into the Provider interface by
// parsing its JSON response into the extraction shape.
type LLMProvider struct {
	client ChatClient
}

// NewLLMProvider creates a provider backed by a chat client
func NewLLMProvider(client ChatClient) *LLMProvider {
	return &LLMProvider{client: client}
}

// llmResponse is the JSON contract with the extraction prompt
type llmResponse struct {
	Action struct {
		Verb   string  `json:"verb"`
		Object *string `json:"object"`
	} `json:"action"`
	Category struct {
		Primary    string  `json:"primary"`
		Secondary  *string `json:"secondary"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	} `json:"category"`
	Urgency struct {
		Level      string  `json:"level"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	} `json:"urgency"`
	Date struct {
		Type       string  `json:"type"`
		Raw        string  `json:"raw"`
		Date       *string `json:"date"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	} `json:"date"`
	Child *struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	} `json:"child"`
}

// Extract calls the LLM and parses its structured response. Any parse or
// validation failure is an error; the extractor falls back to heuristics.
func (p *LLMProvider) Extract(ctx context.Context, text, lang string, roster entities.Roster) (*entities.Extraction, error) {
	names := make([]string, 0, len(roster.Children))
	for _, child := range roster.Children {
		names = append(names, child.Name)
	}

	raw, err := p.client.ExtractSignals(ctx, text, lang, names)
	if err != nil {
		return nil, fmt.Errorf("extraction provider call failed: %w", err)
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	result := &entities.Extraction{
		Action: entities.BareAction{
			Raw:        text,
			Normalized: strings.Join(strings.Fields(text), " "),
			Verb:       strings.ToLower(resp.Action.Verb),
			Object:     resp.Action.Object,
		},
	}

	category := entities.TaskCategory(resp.Category.Primary)
	if !validCategory(category) {
		return nil, fmt.Errorf("provider returned unknown category %q", resp.Category.Primary)
	}
	result.Category = entities.CategoryResult{
		Primary:    category,
		Confidence: resp.Category.Confidence,
		Reason:     resp.Category.Reason,
	}
	if resp.Category.Secondary != nil {
		secondary := entities.TaskCategory(*resp.Category.Secondary)
		if validCategory(secondary) {
			result.Category.Secondary = &secondary
		}
	}

	level := entities.UrgencyLevel(resp.Urgency.Level)
	switch level {
	case entities.UrgencyCritical, entities.UrgencyHigh, entities.UrgencyLow, entities.UrgencyNone:
	default:
		return nil, fmt.Errorf("provider returned unknown urgency %q", resp.Urgency.Level)
	}
	result.Urgency = entities.UrgencyResult{
		Level:      level,
		Confidence: resp.Urgency.Confidence,
		Reason:     resp.Urgency.Reason,
	}

	result.Date = entities.DateResult{
		Type:       entities.DateType(resp.Date.Type),
		Raw:        resp.Date.Raw,
		Confidence: resp.Date.Confidence,
		Reason:     resp.Date.Reason,
	}
	switch result.Date.Type {
	case entities.DateTypeNone:
	case entities.DateTypeRelative, entities.DateTypeAbsolute:
		if resp.Date.Date != nil {
			parsed, err := time.Parse("2006-01-02", *resp.Date.Date)
			if err != nil {
				return nil, fmt.Errorf("provider returned unparsable date %q: %w", *resp.Date.Date, err)
			}
			result.Date.Parsed = &parsed
		}
	default:
		return nil, fmt.Errorf("provider returned unknown date type %q", resp.Date.Type)
	}

	if resp.Child != nil {
		// The provider names the child; the roster supplies the id.
		for _, child := range roster.Children {
			if strings.EqualFold(child.Name, resp.Child.Name) {
				result.Child = &entities.ChildMatch{
					ChildID:    child.ID,
					Name:       child.Name,
					Confidence: resp.Child.Confidence,
					Reason:     resp.Child.Reason,
				}
				break
			}
		}
	}

	return result, nil
}

func validCategory(c entities.TaskCategory) bool {
	for _, known := range entities.AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// extractJSON strips markdown code fences the model may wrap around its JSON
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
