package extraction

import (
	"fmt"
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// Match specificity scores: exact name > nickname > partial.
const (
	matchScoreExact    = 0.95
	matchScoreNickname = 0.85
	matchScorePartial  = 0.6
)

// MatchChild looks for a roster child referenced in the text. Names and
// nicknames are matched case-insensitively; a whole-token match beats a
// nickname, which beats a bare substring. Ties keep the earlier roster
// entry. An empty roster or no match returns nil, not an error.
func MatchChild(text string, roster entities.Roster) *entities.ChildMatch {
	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	var best *entities.ChildMatch
	for _, child := range roster.Children {
		score, reason := matchScore(lower, tokens, child)
		if score == 0 {
			continue
		}
		if best == nil || score > best.Confidence {
			best = &entities.ChildMatch{
				ChildID:    child.ID,
				Name:       child.Name,
				Confidence: score,
				Reason:     reason,
			}
		}
	}
	return best
}

func matchScore(lower string, tokens map[string]bool, child entities.Child) (float64, string) {
	name := strings.ToLower(strings.TrimSpace(child.Name))
	if name == "" {
		return 0, ""
	}
	if tokens[name] {
		return matchScoreExact, fmt.Sprintf("exact name match %q", child.Name)
	}
	for _, nickname := range child.Nicknames {
		nick := strings.ToLower(strings.TrimSpace(nickname))
		if nick != "" && tokens[nick] {
			return matchScoreNickname, fmt.Sprintf("nickname match %q for %s", nickname, child.Name)
		}
	}
	if strings.Contains(lower, name) {
		return matchScorePartial, fmt.Sprintf("partial match on name %q", child.Name)
	}
	return 0, ""
}

// tokenSet splits the text into lowercase tokens, trimming punctuation so
// "Marie," still matches "marie".
func tokenSet(lower string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.Fields(lower) {
		token := strings.Trim(field, ".,;:!?'\"()")
		if token != "" {
			tokens[token] = true
		}
	}
	return tokens
}
