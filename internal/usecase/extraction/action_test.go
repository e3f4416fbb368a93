package extraction

import "testing"

func TestExtractAction_VerbAndObject(t *testing.T) {
	got := ExtractAction("  Emmener   Marie chez le médecin ")
	if got.Verb != "emmener" {
		t.Fatalf("unexpected verb %q", got.Verb)
	}
	if got.Object == nil || *got.Object != "Marie chez le médecin" {
		t.Fatalf("unexpected object %+v", got.Object)
	}
	if got.Raw != "  Emmener   Marie chez le médecin " {
		t.Fatalf("raw text must be preserved unmodified, got %q", got.Raw)
	}
	if got.Normalized != "Emmener Marie chez le médecin" {
		t.Fatalf("unexpected normalized text %q", got.Normalized)
	}
}

func TestExtractAction_SingleToken(t *testing.T) {
	got := ExtractAction("ranger")
	if got.Verb != "ranger" {
		t.Fatalf("unexpected verb %q", got.Verb)
	}
	if got.Object != nil {
		t.Fatalf("single-token input must have no object, got %q", *got.Object)
	}
}

func TestExtractAction_Empty(t *testing.T) {
	got := ExtractAction("   ")
	if got.Verb != "" || got.Object != nil {
		t.Fatalf("empty input must yield an empty action, got %+v", got)
	}
}
