package transcription

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"french", LanguageFrench},
		{"FR", LanguageFrench},
		{"fr-FR", LanguageFrench},
		{"Français", LanguageFrench},
		{"en-US", LanguageEnglish},
		{"English", LanguageEnglish},
		{"es", LanguageSpanish},
		{"", LanguageFrench},
		{"auto", LanguageFrench},
		{"klingon", LanguageFrench},
	}
	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input, LanguageFrench); got != tc.want {
			t.Errorf("NormalizeLanguage(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("  ranger \t la \n chambre  "); got != "ranger la chambre" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizeText("   "); got != "" {
		t.Fatalf("whitespace-only input must normalize to empty, got %q", got)
	}
}

func TestFormatDisplayText(t *testing.T) {
	if got := FormatDisplayText("emmener   marie chez le médecin", "fr"); got != "Emmener marie chez le médecin" {
		t.Fatalf("unexpected display text: %q", got)
	}
	if got := FormatDisplayText("", "fr"); got != "" {
		t.Fatalf("empty input must stay empty, got %q", got)
	}
	if got := FormatDisplayText("étendre le linge", "fr"); got != "Étendre le linge" {
		t.Fatalf("capitalization must be locale aware: %q", got)
	}
}
