package extraction

import (
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// ExtractAction splits the text into a leading verb token and a trailing
// object phrase. The raw input is preserved unmodified for audit; the
// normalized form collapses whitespace. Single-token input has no object.
// A leading urgency prefix like "Urgent:" is not stripped here; the verb is
// simply the first token of whatever the caller passes.
func ExtractAction(text string) entities.BareAction {
	normalized := strings.Join(strings.Fields(text), " ")
	action := entities.BareAction{
		Raw:        text,
		Normalized: normalized,
	}
	if normalized == "" {
		return action
	}

	tokens := strings.Fields(normalized)
	action.Verb = strings.ToLower(strings.Trim(tokens[0], ".,;:!?"))
	if len(tokens) > 1 {
		object := strings.Join(tokens[1:], " ")
		action.Object = &object
	}
	return action
}

// actionConfidence scores how much structure the fallback split recovered.
// Used when aggregating the overall extraction confidence.
func actionConfidence(action entities.BareAction) float64 {
	switch {
	case action.Verb == "":
		return 0.1
	case action.Object == nil:
		return 0.5
	default:
		return 0.7
	}
}
