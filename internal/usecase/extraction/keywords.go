package extraction

import "github.com/foyer-app/foyer-voice/internal/domain/entities"

// KeywordPattern is one weighted keyword or phrase. Matching is a
// case-insensitive substring scan over the normalized text.
type KeywordPattern struct {
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight"`
}

// KeywordConfig holds the classification tables per supported language.
// The tables are data, not code: new languages or keywords are added here
// without touching the classification logic.
type KeywordConfig struct {
	Categories map[string]map[entities.TaskCategory][]KeywordPattern `json:"categories"`
	Urgencies  map[string]map[entities.UrgencyLevel][]KeywordPattern `json:"urgencies"`

	// SecondaryThreshold is the minimum score for a runner-up category to be
	// reported as secondary.
	SecondaryThreshold float64 `json:"secondary_threshold"`
}

// DefaultKeywordConfig returns the built-in French and English tables
func DefaultKeywordConfig() *KeywordConfig {
	return &KeywordConfig{
		SecondaryThreshold: 1.0,
		Categories: map[string]map[entities.TaskCategory][]KeywordPattern{
			"fr": {
				entities.CategoryTransport: {
					{Pattern: "conduire", Weight: 2},
					{Pattern: "déposer", Weight: 2},
					{Pattern: "récupérer", Weight: 1.5},
					{Pattern: "aller chercher", Weight: 2},
					{Pattern: "voiture", Weight: 1},
					{Pattern: "bus", Weight: 1},
					{Pattern: "train", Weight: 1},
					{Pattern: "trajet", Weight: 1},
				},
				entities.CategoryHealth: {
					{Pattern: "médecin", Weight: 3},
					{Pattern: "docteur", Weight: 3},
					{Pattern: "pédiatre", Weight: 3},
					{Pattern: "dentiste", Weight: 3},
					{Pattern: "pharmacie", Weight: 2},
					{Pattern: "médicament", Weight: 2},
					{Pattern: "vaccin", Weight: 2},
					{Pattern: "ordonnance", Weight: 2},
					{Pattern: "rendez-vous médical", Weight: 3},
				},
				entities.CategoryEducation: {
					{Pattern: "école", Weight: 2},
					{Pattern: "devoirs", Weight: 2.5},
					{Pattern: "leçon", Weight: 2},
					{Pattern: "cartable", Weight: 1.5},
					{Pattern: "réunion parents", Weight: 2.5},
					{Pattern: "maîtresse", Weight: 1.5},
					{Pattern: "collège", Weight: 2},
				},
				entities.CategoryFood: {
					{Pattern: "courses", Weight: 2.5},
					{Pattern: "repas", Weight: 2},
					{Pattern: "dîner", Weight: 2},
					{Pattern: "déjeuner", Weight: 2},
					{Pattern: "goûter", Weight: 1.5},
					{Pattern: "cuisiner", Weight: 2},
					{Pattern: "acheter du pain", Weight: 2},
					{Pattern: "supermarché", Weight: 2},
				},
				entities.CategoryHousehold: {
					{Pattern: "ménage", Weight: 2.5},
					{Pattern: "lessive", Weight: 2.5},
					{Pattern: "linge", Weight: 2},
					{Pattern: "ranger", Weight: 2},
					{Pattern: "nettoyer", Weight: 2},
					{Pattern: "poubelles", Weight: 2},
					{Pattern: "vaisselle", Weight: 2},
					{Pattern: "réparer", Weight: 1.5},
				},
				entities.CategoryActivities: {
					{Pattern: "entraînement", Weight: 2},
					{Pattern: "piscine", Weight: 2},
					{Pattern: "foot", Weight: 2},
					{Pattern: "danse", Weight: 2},
					{Pattern: "musique", Weight: 1.5},
					{Pattern: "match", Weight: 1.5},
					{Pattern: "activité", Weight: 1},
				},
				entities.CategorySocial: {
					{Pattern: "anniversaire", Weight: 2.5},
					{Pattern: "cadeau", Weight: 2},
					{Pattern: "invitation", Weight: 2},
					{Pattern: "fête", Weight: 2},
					{Pattern: "copain", Weight: 1.5},
					{Pattern: "copine", Weight: 1.5},
				},
			},
			"en": {
				entities.CategoryTransport: {
					{Pattern: "drive", Weight: 2},
					{Pattern: "drop off", Weight: 2},
					{Pattern: "pick up", Weight: 2},
					{Pattern: "carpool", Weight: 2},
					{Pattern: "bus", Weight: 1},
					{Pattern: "train", Weight: 1},
				},
				entities.CategoryHealth: {
					{Pattern: "doctor", Weight: 3},
					{Pattern: "dentist", Weight: 3},
					{Pattern: "pediatrician", Weight: 3},
					{Pattern: "pharmacy", Weight: 2},
					{Pattern: "medicine", Weight: 2},
					{Pattern: "vaccine", Weight: 2},
					{Pattern: "appointment", Weight: 1.5},
				},
				entities.CategoryEducation: {
					{Pattern: "school", Weight: 2},
					{Pattern: "homework", Weight: 2.5},
					{Pattern: "teacher", Weight: 1.5},
					{Pattern: "parent meeting", Weight: 2.5},
					{Pattern: "lesson", Weight: 2},
				},
				entities.CategoryFood: {
					{Pattern: "groceries", Weight: 2.5},
					{Pattern: "dinner", Weight: 2},
					{Pattern: "lunch", Weight: 2},
					{Pattern: "cook", Weight: 2},
					{Pattern: "meal", Weight: 2},
					{Pattern: "supermarket", Weight: 2},
				},
				entities.CategoryHousehold: {
					{Pattern: "laundry", Weight: 2.5},
					{Pattern: "clean", Weight: 2},
					{Pattern: "tidy", Weight: 2},
					{Pattern: "trash", Weight: 2},
					{Pattern: "dishes", Weight: 2},
					{Pattern: "repair", Weight: 1.5},
				},
				entities.CategoryActivities: {
					{Pattern: "practice", Weight: 2},
					{Pattern: "swimming", Weight: 2},
					{Pattern: "soccer", Weight: 2},
					{Pattern: "dance", Weight: 2},
					{Pattern: "music", Weight: 1.5},
					{Pattern: "game", Weight: 1},
				},
				entities.CategorySocial: {
					{Pattern: "birthday", Weight: 2.5},
					{Pattern: "gift", Weight: 2},
					{Pattern: "present", Weight: 1.5},
					{Pattern: "party", Weight: 2},
					{Pattern: "playdate", Weight: 2},
				},
			},
		},
		Urgencies: map[string]map[entities.UrgencyLevel][]KeywordPattern{
			"fr": {
				entities.UrgencyCritical: {
					{Pattern: "immédiatement", Weight: 3},
					{Pattern: "tout de suite", Weight: 3},
					{Pattern: "d'urgence", Weight: 3},
					{Pattern: "urgence", Weight: 2.5},
				},
				entities.UrgencyHigh: {
					{Pattern: "urgent", Weight: 2.5},
					{Pattern: "vite", Weight: 2},
					{Pattern: "dès que possible", Weight: 2},
					{Pattern: "important", Weight: 1.5},
					{Pattern: "ne pas oublier", Weight: 1.5},
				},
				entities.UrgencyLow: {
					{Pattern: "quand tu peux", Weight: 2},
					{Pattern: "pas pressé", Weight: 2},
					{Pattern: "un de ces jours", Weight: 2},
					{Pattern: "à l'occasion", Weight: 1.5},
				},
			},
			"en": {
				entities.UrgencyCritical: {
					{Pattern: "immediately", Weight: 3},
					{Pattern: "right now", Weight: 3},
					{Pattern: "emergency", Weight: 3},
				},
				entities.UrgencyHigh: {
					{Pattern: "urgent", Weight: 2.5},
					{Pattern: "asap", Weight: 2.5},
					{Pattern: "as soon as possible", Weight: 2},
					{Pattern: "important", Weight: 1.5},
					{Pattern: "don't forget", Weight: 1.5},
				},
				entities.UrgencyLow: {
					{Pattern: "whenever", Weight: 2},
					{Pattern: "no rush", Weight: 2},
					{Pattern: "no hurry", Weight: 2},
					{Pattern: "someday", Weight: 1.5},
				},
			},
		},
	}
}

// categoryTable resolves the table for a language, falling back to French
func (c *KeywordConfig) categoryTable(lang string) map[entities.TaskCategory][]KeywordPattern {
	if table, ok := c.Categories[lang]; ok {
		return table
	}
	return c.Categories["fr"]
}

// urgencyTable resolves the urgency table for a language
func (c *KeywordConfig) urgencyTable(lang string) map[entities.UrgencyLevel][]KeywordPattern {
	if table, ok := c.Urgencies[lang]; ok {
		return table
	}
	return c.Urgencies["fr"]
}
