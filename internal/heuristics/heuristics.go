// Package heuristics holds the small pattern matchers that pull week-level
// metadata out of converted lesson text. Each matcher is independent and
// reports absence with a false second return rather than an error.
package heuristics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

var (
	titlePattern = regexp.MustCompile(`(?m)^##[ \t\p{Zs}]+(.+)$`)

	memoryVersePattern = regexp.MustCompile(
		`(?i)(?:PARA MEMORIZAR|Memory Verse)\s*(?:\*\*)?\s*:\s*(?:\*\*)?\s*["“«]([^"”»]+)["”»]?\s*\(([^)]+)\)`)

	lessonNumberPattern = regexp.MustCompile(`(?i)\b(?:lecci[oó]n|lesson)\**\s*(\d{1,2})\b`)

	isoDatePattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	spanishDatePattern = regexp.MustCompile(
		`(?i)\b\d{1,2}\s+de\s+(?:enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|setiembre|octubre|noviembre|diciembre)\b`)
	englishDatePattern = regexp.MustCompile(
		`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}\b`)
)

// Title returns the first level-2 heading in text, bold markers removed
func Title(text string) (string, bool) {
	for _, m := range titlePattern.FindAllStringSubmatch(text, -1) {
		title := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(m[1], "\r"), "**", ""))
		if title != "" {
			return title, true
		}
	}
	return "", false
}

// MemoryVerse finds a `PARA MEMORIZAR: "text" (reference)` line
func MemoryVerse(text string) (lesson.MemoryVerse, bool) {
	m := memoryVersePattern.FindStringSubmatch(text)
	if m == nil {
		return lesson.MemoryVerse{}, false
	}
	verse := lesson.MemoryVerse{
		Text:      collapseSpace(m[1]),
		Reference: strings.TrimSpace(m[2]),
	}
	if verse.Text == "" || verse.Reference == "" {
		return lesson.MemoryVerse{}, false
	}
	return verse, true
}

// LessonNumber reads "Lección 8" or "Lesson 8" from the lesson header
func LessonNumber(text string) (int, bool) {
	m := lessonNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// Date returns the first date-looking fragment: ISO first, then
// "17 de mayo", then "May 17"
func Date(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{isoDatePattern, spanishDatePattern, englishDatePattern} {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
