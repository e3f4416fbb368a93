package extraction

import (
	"testing"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func TestDetectUrgency(t *testing.T) {
	cfg := DefaultKeywordConfig()
	cases := []struct {
		text string
		lang string
		want entities.UrgencyLevel
	}{
		{"il faut y aller tout de suite", "fr", entities.UrgencyCritical},
		{"urgent: appeler le médecin", "fr", entities.UrgencyHigh},
		{"répare l'étagère quand tu peux", "fr", entities.UrgencyLow},
		{"acheter du pain", "fr", entities.UrgencyNone},
		{"call the doctor asap", "en", entities.UrgencyHigh},
		{"no rush on the laundry", "en", entities.UrgencyLow},
	}
	for _, tc := range cases {
		got := DetectUrgency(tc.text, tc.lang, cfg)
		if got.Level != tc.want {
			t.Errorf("DetectUrgency(%q) = %s, want %s (reason: %s)", tc.text, got.Level, tc.want, got.Reason)
		}
		if got.Reason == "" {
			t.Errorf("DetectUrgency(%q) must carry a reason", tc.text)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("DetectUrgency(%q) confidence %f out of bounds", tc.text, got.Confidence)
		}
	}
}

func TestDetectUrgency_BaselineIsNotAnError(t *testing.T) {
	got := DetectUrgency("", "fr", DefaultKeywordConfig())
	if got.Level != entities.UrgencyNone {
		t.Fatalf("empty text must yield the baseline level, got %s", got.Level)
	}
}
