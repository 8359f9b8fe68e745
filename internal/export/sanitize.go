package export

import (
	"regexp"
	"strings"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

var (
	markdownPunct  = regexp.MustCompile("[#*_`~>-]")
	referencePunct = regexp.MustCompile("[#*_`~>]")
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// CleanText strips markdown punctuation and collapses whitespace
func CleanText(s string) string {
	return clean(markdownPunct, s)
}

// cleanReference keeps hyphens so verse ranges like 9:11-15 survive
func cleanReference(s string) string {
	return clean(referencePunct, s)
}

func clean(punct *regexp.Regexp, s string) string {
	s = punct.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func cleanAll(in []string, fn func(string) string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

// Sanitize returns a copy of week ready for download: day titles and section
// text are stripped of markdown and each section keeps only the fields its
// type uses. Week metadata and rawMarkdown are left as they are.
func Sanitize(week *lesson.WeekSchema) *lesson.WeekSchema {
	out := *week
	out.Days = make([]lesson.Day, len(week.Days))
	for i, d := range week.Days {
		d.Title = CleanText(d.Title)
		sections := make([]lesson.Section, len(d.Sections))
		for j, s := range d.Sections {
			sections[j] = sanitizeSection(s)
		}
		d.Sections = sections
		out.Days[i] = d
	}
	return &out
}

func sanitizeSection(s lesson.Section) lesson.Section {
	switch s.Type {
	case lesson.Paragraph:
		return lesson.Section{Type: s.Type, Content: CleanText(s.Content)}
	case lesson.BibleQuestion:
		return lesson.Section{Type: s.Type, Label: CleanText(s.Label), Question: CleanText(s.Question)}
	case lesson.Quote:
		return lesson.Section{
			Type:    s.Type,
			Author:  CleanText(s.Author),
			Source:  CleanText(s.Source),
			Content: CleanText(s.Content),
		}
	case lesson.Reading:
		return lesson.Section{
			Type:       s.Type,
			Label:      CleanText(s.Label),
			References: cleanAll(s.References, cleanReference),
		}
	case lesson.MemoryVerseBlock:
		return lesson.Section{
			Type:      s.Type,
			Label:     CleanText(s.Label),
			Content:   CleanText(s.Content),
			Reference: cleanReference(s.Reference),
		}
	case lesson.DiscussionQuestions:
		return lesson.Section{Type: s.Type, Questions: cleanAll(s.Questions, CleanText)}
	default:
		s.References = append(lesson.References(nil), s.References...)
		s.Questions = append([]string(nil), s.Questions...)
		return s
	}
}
