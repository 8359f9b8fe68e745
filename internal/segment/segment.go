// Package segment splits lesson markdown into heading sections.
//
// Only level-2 and level-3 headings open a section. Level-1 headings and
// anything deeper than level 3 are treated as ordinary body text, and text
// before the first section heading is discarded.
package segment

import (
	"regexp"
	"strings"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// headingPattern matches "## Title", "### **Title**" and friends. The lazy
// title group lets the optional closing ** fall outside the capture. The
// separator also accepts Unicode spaces such as U+00A0 from PDF converters.
var headingPattern = regexp.MustCompile(`^(#{2,3})[\s\p{Zs}]+\*{0,2}(.+?)\*{0,2}$`)

// MatchHeading reports whether line opens a section and returns its level
// and cleaned title
func MatchHeading(line string) (level int, title string, ok bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), CleanTitle(m[2]), true
}

// CleanTitle removes bold markers and surrounding whitespace from a heading
func CleanTitle(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

// Segment partitions markdown into sections at every level-2/3 heading.
// The result is never nil and is empty when no such heading exists.
func Segment(markdown string) []lesson.ParsedSection {
	sections := []lesson.ParsedSection{}

	var current *lesson.ParsedSection
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = JoinBody(body)
		sections = append(sections, *current)
		body = body[:0]
	}

	for i, line := range strings.Split(markdown, "\n") {
		if level, title, ok := MatchHeading(line); ok {
			flush()
			current = &lesson.ParsedSection{
				Title:         title,
				Level:         level,
				OriginalIndex: len(sections),
				Line:          i,
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// JoinBody joins body lines into flowing paragraphs. A lone newline becomes a
// space; runs of two or more newlines are kept as paragraph breaks.
func JoinBody(lines []string) string {
	var b strings.Builder
	newlines := 0

	writeBreak := func() {
		switch {
		case newlines == 1:
			b.WriteByte(' ')
		case newlines > 1:
			b.WriteString(strings.Repeat("\n", newlines))
		}
		newlines = 0
	}

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			line = ""
		}
		if i > 0 {
			newlines++
		}
		if line == "" {
			continue
		}
		writeBreak()
		b.WriteString(line)
	}

	return strings.TrimSpace(b.String())
}
