package transcription

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported language codes. Anything else normalizes to the configured
// fallback.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)

// languageAliases maps free-form language names and locales onto supported
// codes. Keys are lowercase.
var languageAliases = map[string]string{
	"fr":       LanguageFrench,
	"fra":      LanguageFrench,
	"fre":      LanguageFrench,
	"french":   LanguageFrench,
	"français": LanguageFrench,
	"francais": LanguageFrench,
	"en":       LanguageEnglish,
	"eng":      LanguageEnglish,
	"english":  LanguageEnglish,
	"anglais":  LanguageEnglish,
	"es":       LanguageSpanish,
	"spa":      LanguageSpanish,
	"spanish":  LanguageSpanish,
	"espagnol": LanguageSpanish,
	"español":  LanguageSpanish,
}

// NormalizeLanguage maps free-form language names and locales ("french",
// "FR", "en-US") onto the supported set, defaulting to fallback when
// unrecognized. Region subtags are stripped before lookup.
func NormalizeLanguage(input, fallback string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" || key == "auto" {
		return fallback
	}
	if i := strings.IndexAny(key, "-_"); i > 0 {
		key = key[:i]
	}
	if code, ok := languageAliases[key]; ok {
		return code
	}
	return fallback
}

// NormalizeText collapses irregular whitespace into single spaces and trims
// the ends. The raw provider text is preserved elsewhere; this is the working
// form for extraction.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatDisplayText normalizes whitespace and applies locale-aware
// capitalization to the first rune for display.
func FormatDisplayText(text, lang string) string {
	normalized := NormalizeText(text)
	if normalized == "" {
		return ""
	}
	tag := language.Make(lang)
	caser := cases.Title(tag)
	runes := []rune(normalized)
	first := caser.String(string(runes[0]))
	return first + string(runes[1:])
}
