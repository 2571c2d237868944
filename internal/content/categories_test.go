package content

import "testing"

func TestNormalizeCategoryExactMatch(t *testing.T) {
	if got := NormalizeCategory("مغامرة"); got != "مغامرة" {
		t.Fatalf("expected exact match, got %q", got)
	}
}

func TestNormalizeCategoryTrimsAndIgnoresCase(t *testing.T) {
	// Latin case only matters if the model answers with a transliterated
	// or padded value; Arabic has no case, so trimming is the main path.
	if got := NormalizeCategory("  قصص أطفال "); got != "قصص أطفال" {
		t.Fatalf("expected trimmed match, got %q", got)
	}
}

func TestNormalizeCategoryFallsBackToFirst(t *testing.T) {
	if got := NormalizeCategory("science fiction"); got != Categories[0] {
		t.Fatalf("expected fallback %q, got %q", Categories[0], got)
	}
	if got := NormalizeCategory(""); got != Categories[0] {
		t.Fatalf("expected fallback for empty, got %q", got)
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("أخلاقية") {
		t.Fatal("expected enumerated category to be valid")
	}
	if IsValidCategory("غير موجود") {
		t.Fatal("expected unknown category to be invalid")
	}
}
