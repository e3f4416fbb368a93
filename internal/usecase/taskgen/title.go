package taskgen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// Generic fallback titles per category, used when action extraction came up
// empty. A title is never empty.
var fallbackTitles = map[string]map[entities.TaskCategory]string{
	"fr": {
		entities.CategoryTransport:  "Trajet à organiser",
		entities.CategoryHealth:     "Tâche santé",
		entities.CategoryEducation:  "Tâche école",
		entities.CategoryFood:       "Tâche repas",
		entities.CategoryHousehold:  "Tâche maison",
		entities.CategoryActivities: "Activité à organiser",
		entities.CategorySocial:     "Événement à préparer",
		entities.CategoryOther:      "Nouvelle tâche",
	},
	"en": {
		entities.CategoryTransport:  "Trip to organize",
		entities.CategoryHealth:     "Health task",
		entities.CategoryEducation:  "School task",
		entities.CategoryFood:       "Meal task",
		entities.CategoryHousehold:  "Home task",
		entities.CategoryActivities: "Activity to organize",
		entities.CategorySocial:     "Event to prepare",
		entities.CategoryOther:      "New task",
	},
}

var categoryLabels = map[string]map[entities.TaskCategory]string{
	"fr": {
		entities.CategoryTransport:  "Transport",
		entities.CategoryHealth:     "Santé",
		entities.CategoryEducation:  "École",
		entities.CategoryFood:       "Repas",
		entities.CategoryHousehold:  "Maison",
		entities.CategoryActivities: "Activités",
		entities.CategorySocial:     "Social",
		entities.CategoryOther:      "Divers",
	},
	"en": {
		entities.CategoryTransport:  "Transport",
		entities.CategoryHealth:     "Health",
		entities.CategoryEducation:  "School",
		entities.CategoryFood:       "Meals",
		entities.CategoryHousehold:  "Home",
		entities.CategoryActivities: "Activities",
		entities.CategorySocial:     "Social",
		entities.CategoryOther:      "Misc",
	},
}

// GenerateTitle derives a human-readable title from the extracted action, and
// proposes a small set of alternative phrasings. When a child was matched and
// the action does not already name them, the child's name is appended.
func GenerateTitle(extraction *entities.Extraction, lang string) (string, []string) {
	if _, ok := fallbackTitles[lang]; !ok {
		lang = "fr"
	}

	action := extraction.Action
	if action.Verb == "" {
		title := fallbackTitles[lang][extraction.Category.Primary]
		if title == "" {
			title = fallbackTitles[lang][entities.CategoryOther]
		}
		return title, nil
	}

	caser := cases.Title(language.Make(lang))
	verb := caser.String(action.Verb)

	var base string
	if action.Object != nil {
		base = verb + " " + *action.Object
	} else {
		base = verb
	}

	title := base
	if child := extraction.Child; child != nil && !strings.Contains(strings.ToLower(base), strings.ToLower(child.Name)) {
		switch lang {
		case "en":
			title = base + " for " + child.Name
		default:
			title = base + " pour " + child.Name
		}
	}

	var alts []string
	if label := categoryLabels[lang][extraction.Category.Primary]; label != "" {
		alts = append(alts, label+" : "+base)
	}
	if action.Object != nil && title != base {
		alts = append(alts, base)
	}
	if short := verb; short != title && action.Object != nil {
		alts = append(alts, short+" ("+strings.ToLower(categoryLabels[lang][extraction.Category.Primary])+")")
	}
	return title, alts
}
