package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// absoluteDatePattern matches DD/MM/YYYY and DD-MM-YYYY
var absoluteDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)

// relativeTerm is a fixed day offset from the current date. endOfWeek
// resolves to the coming Sunday instead of a fixed offset.
type relativeTerm struct {
	term      string
	days      int
	endOfWeek bool
}

// Longer terms listed first so "après-demain" wins over "demain".
var relativeTerms = map[string][]relativeTerm{
	"fr": {
		{term: "après-demain", days: 2},
		{term: "apres-demain", days: 2},
		{term: "aujourd'hui", days: 0},
		{term: "demain", days: 1},
		{term: "ce soir", days: 0},
		{term: "ce matin", days: 0},
		{term: "la semaine prochaine", days: 7},
		{term: "cette semaine", endOfWeek: true},
	},
	"en": {
		{term: "day after tomorrow", days: 2},
		{term: "tomorrow", days: 1},
		{term: "today", days: 0},
		{term: "tonight", days: 0},
		{term: "next week", days: 7},
		{term: "this week", endOfWeek: true},
	},
}

var weekdayNames = map[string]map[string]time.Weekday{
	"fr": {
		"lundi":    time.Monday,
		"mardi":    time.Tuesday,
		"mercredi": time.Wednesday,
		"jeudi":    time.Thursday,
		"vendredi": time.Friday,
		"samedi":   time.Saturday,
		"dimanche": time.Sunday,
	},
	"en": {
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	},
}

// ParseDate recognizes relative terms and absolute DD/MM/YYYY dates in the
// text, resolved against now. It never fails on unparsable text: no match
// yields type "none" with a nil parsed date.
func ParseDate(text, lang string, now time.Time) entities.DateResult {
	lower := strings.ToLower(text)
	if _, ok := relativeTerms[lang]; !ok {
		lang = "fr"
	}

	// Absolute dates are the most specific signal, checked first.
	if m := absoluteDatePattern.FindStringSubmatchIndex(lower); m != nil {
		raw := text[m[0]:m[1]]
		day, _ := strconv.Atoi(lower[m[2]:m[3]])
		month, _ := strconv.Atoi(lower[m[4]:m[5]])
		year, _ := strconv.Atoi(lower[m[6]:m[7]])

		parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		// time.Date normalizes overflow (32/13 rolls over); reject those.
		if parsed.Day() != day || int(parsed.Month()) != month || parsed.Year() != year {
			return entities.DateResult{
				Type:       entities.DateTypeNone,
				Raw:        raw,
				Confidence: 0.2,
				Reason:     fmt.Sprintf("date-like pattern %q is not a valid calendar date", raw),
			}
		}
		return entities.DateResult{
			Type:       entities.DateTypeAbsolute,
			Raw:        raw,
			Parsed:     &parsed,
			Confidence: 0.95,
			Reason:     fmt.Sprintf("absolute date %q", raw),
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, rt := range relativeTerms[lang] {
		idx := strings.Index(lower, rt.term)
		if idx < 0 {
			continue
		}
		raw := text[idx : idx+len(rt.term)]
		var parsed time.Time
		if rt.endOfWeek {
			// End of the current week: the coming Sunday.
			daysToSunday := (int(time.Sunday) - int(today.Weekday()) + 7) % 7
			if daysToSunday == 0 {
				daysToSunday = 7
			}
			parsed = today.AddDate(0, 0, daysToSunday)
		} else {
			parsed = today.AddDate(0, 0, rt.days)
		}
		return entities.DateResult{
			Type:       entities.DateTypeRelative,
			Raw:        raw,
			Parsed:     &parsed,
			Confidence: 0.9,
			Reason:     fmt.Sprintf("relative term %q resolved against current date", rt.term),
		}
	}

	if result, ok := parseWeekday(text, lower, lang, today); ok {
		return result
	}

	return entities.DateResult{
		Type:       entities.DateTypeNone,
		Confidence: 0.7,
		Reason:     "no date expression found",
	}
}

// parseWeekday handles "lundi prochain" / "next monday" and bare weekday
// names. "next" always lands in the following occurrence: a bare weekday
// matching today resolves to today plus seven days.
func parseWeekday(text, lower, lang string, today time.Time) (entities.DateResult, bool) {
	for name, weekday := range weekdayNames[lang] {
		var phrase string
		switch lang {
		case "fr":
			phrase = name + " prochain"
		default:
			phrase = "next " + name
		}

		term, explicit := phrase, true
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			term, explicit = name, false
			idx = strings.Index(lower, name)
		}
		if idx < 0 {
			continue
		}

		days := (int(weekday) - int(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		parsed := today.AddDate(0, 0, days)

		confidence := 0.85
		reason := fmt.Sprintf("weekday %q resolved to next occurrence", term)
		if !explicit {
			confidence = 0.7
		}
		return entities.DateResult{
			Type:       entities.DateTypeRelative,
			Raw:        text[idx : idx+len(term)],
			Parsed:     &parsed,
			Confidence: confidence,
			Reason:     reason,
		}, true
	}
	return entities.DateResult{}, false
}
