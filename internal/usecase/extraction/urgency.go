package extraction

import (
	"fmt"
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// urgencyOrder ranks levels from most to least urgent; when several levels
// match, the most urgent one with the highest score wins.
var urgencyOrder = []entities.UrgencyLevel{
	entities.UrgencyCritical,
	entities.UrgencyHigh,
	entities.UrgencyLow,
}

// DetectUrgency scores the text against the urgency keyword table. No match
// yields the baseline level "none" with full certainty that nothing was
// signaled, never an error.
func DetectUrgency(text, lang string, cfg *KeywordConfig) entities.UrgencyResult {
	lower := strings.ToLower(text)
	table := cfg.urgencyTable(lang)

	scores := make(map[entities.UrgencyLevel]float64)
	matched := make(map[entities.UrgencyLevel][]string)
	for level, patterns := range table {
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p.Pattern)) {
				scores[level] += p.Weight
				matched[level] = append(matched[level], p.Pattern)
			}
		}
	}

	var best entities.UrgencyLevel
	var bestScore float64
	for _, level := range urgencyOrder {
		score := scores[level]
		if score > bestScore {
			best, bestScore = level, score
		}
	}

	if bestScore == 0 {
		return entities.UrgencyResult{
			Level:      entities.UrgencyNone,
			Confidence: 0.6,
			Reason:     "no urgency keywords matched, defaulting to baseline",
		}
	}

	confidence := 0.5 + bestScore/10
	if confidence > 0.95 {
		confidence = 0.95
	}
	return entities.UrgencyResult{
		Level:      best,
		Confidence: confidence,
		Reason:     fmt.Sprintf("matched %s keyword(s): %s", best, strings.Join(matched[best], ", ")),
	}
}
