package schema

import (
	"strings"
	"unicode"
)

// CapitalizeWords uppercases the first rune of every word and lowercases the
// rest, so "lesão  hepática A" becomes "Lesão Hepática A".
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		rr := []rune(strings.ToLower(w))
		if len(rr) > 0 {
			rr[0] = unicode.ToUpper(rr[0])
		}
		words[i] = string(rr)
	}
	return strings.Join(words, " ")
}

// CleanLesionID normalizes a raw lesion identifier for display:
// collapsed whitespace and capitalized words.
func CleanLesionID(id string) string {
	return CapitalizeWords(strings.TrimSpace(id))
}

// FormatTreatments joins treatment names as a single display string.
func FormatTreatments(treatments []string) string {
	if len(treatments) == 0 {
		return "-"
	}
	return strings.Join(treatments, ", ")
}

// ContainsSurgicalTreatment reports whether any treatment mentions a surgical
// intervention that could explain a sudden size reduction.
func ContainsSurgicalTreatment(treatments []string) bool {
	for _, t := range treatments {
		lower := strings.ToLower(t)
		for _, kw := range SurgicalKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
