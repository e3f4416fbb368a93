package extraction

import (
	"fmt"
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// DetectCategory scores the text against the weighted keyword table for the
// given language. Primary is the highest-scoring category, with ties broken
// toward category declaration order; secondary is the runner-up when its
// score clears the configured threshold. Confidence is a normalized function
// of the margin between first and second place. Text matching no category
// yields "other" with low confidence.
func DetectCategory(text, lang string, cfg *KeywordConfig) entities.CategoryResult {
	lower := strings.ToLower(text)
	table := cfg.categoryTable(lang)

	scores := make(map[entities.TaskCategory]float64)
	matches := make(map[entities.TaskCategory]int)
	for category, patterns := range table {
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p.Pattern)) {
				scores[category] += p.Weight
				matches[category]++
			}
		}
	}

	var best, second entities.TaskCategory
	var bestScore, secondScore float64
	for _, category := range entities.AllCategories {
		score := scores[category]
		if score <= 0 {
			continue
		}
		// Strict comparisons keep declaration order as the tie-breaker.
		if score > bestScore {
			second, secondScore = best, bestScore
			best, bestScore = category, score
		} else if score > secondScore {
			second, secondScore = category, score
		}
	}

	if bestScore == 0 {
		return entities.CategoryResult{
			Primary:    entities.CategoryOther,
			Confidence: 0.2,
			Reason:     "no category keywords matched",
		}
	}

	margin := (bestScore - secondScore) / bestScore
	confidence := 0.4 + 0.55*margin
	if confidence > 0.95 {
		confidence = 0.95
	}

	result := entities.CategoryResult{
		Primary:    best,
		Confidence: confidence,
		Reason: fmt.Sprintf("matched %d %s pattern(s) with score %.1f",
			matches[best], best, bestScore),
	}
	if second != "" && secondScore >= cfg.SecondaryThreshold {
		secondary := second
		result.Secondary = &secondary
		result.Reason += fmt.Sprintf("; runner-up %s with score %.1f", second, secondScore)
	}
	return result
}
