package content

import "strings"

// Categories is the fixed story category enumeration, in display order.
// The first entry doubles as the default when an external value (e.g. an
// AI draft) cannot be matched.
var Categories = []string{
	"مغامرة",
	"خيال علمي",
	"رومانسية",
	"رعب",
	"غموض",
	"قصص أطفال",
	"كوميديا",
	"دراما",
	"أخلاقية",
	"تاريخية",
}

// IsValidCategory reports whether value is exactly one of Categories.
func IsValidCategory(value string) bool {
	for _, category := range Categories {
		if category == value {
			return true
		}
	}
	return false
}

// NormalizeCategory coerces raw to the nearest enumerated category,
// matching case-insensitively, and falls back to the first category.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, category := range Categories {
		if strings.EqualFold(category, trimmed) {
			return category
		}
	}
	return Categories[0]
}
