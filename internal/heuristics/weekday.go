package heuristics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// Fold lowercases s and strips diacritics so "MIÉRCOLES" matches "miercoles"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Weekday returns the first weekday named as a whole word in text
func Weekday(text string) (lesson.Weekday, bool) {
	names := make(map[string]lesson.Weekday, lesson.SlotCount)
	for _, wd := range lesson.Weekdays() {
		names[Fold(string(wd))] = wd
	}

	words := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if wd, ok := names[w]; ok {
			return wd, true
		}
	}
	return "", false
}
