// Package importer turns a converted lesson document into a WeekSchema. It
// strings together front matter parsing, text normalization, the metadata
// heuristics, heading segmentation and day classification.
package importer

import (
	"context"
	"strings"
	"time"

	"github.com/gerunddev/lessonbridge/internal/classify"
	"github.com/gerunddev/lessonbridge/internal/heuristics"
	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/logger"
	"github.com/gerunddev/lessonbridge/internal/segment"
)

const dateLayout = "2006-01-02"

// Importer builds lesson weeks from markdown
type Importer struct {
	log      *logger.Logger
	tmpl     lesson.Template
	strategy classify.Strategy
}

// Option configures an Importer
type Option func(*Importer)

// WithTemplate replaces the default weekday template
func WithTemplate(t lesson.Template) Option {
	return func(im *Importer) {
		im.tmpl = t
	}
}

// WithStrategy sets how sections are matched to weekdays
func WithStrategy(s classify.Strategy) Option {
	return func(im *Importer) {
		im.strategy = s
	}
}

// New creates an Importer. A nil logger discards output.
func New(log *logger.Logger, opts ...Option) *Importer {
	if log == nil {
		log = logger.Discard()
	}
	im := &Importer{
		log:      log,
		tmpl:     lesson.DefaultTemplate(),
		strategy: classify.Positional,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Outcome is a finished import plus everything worth reporting about it
type Outcome struct {
	Week            *lesson.WeekSchema
	Sections        []lesson.ParsedSection
	Dropped         []lesson.ParsedSection
	Missing         []lesson.Weekday
	MissingMetadata []string
	HasFrontMatter  bool
}

// Import converts one document. name only labels log lines. Missing headings,
// surplus sections, absent metadata and a leading "---" block that is not
// valid front matter are reported in the Outcome; only a canceled context
// fails the import.
func (im *Importer) Import(ctx context.Context, name, markdown string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	im.log.ImportStarted(name, len(markdown))

	var missing []string
	fm, body, found, err := ParseFrontMatter(markdown)
	if err != nil {
		im.log.FrontMatterIgnored(name, err)
		fm, body, found = FrontMatter{}, markdown, false
		missing = append(missing, "front matter")
	}

	normalized := heuristics.Normalize(body)
	sections := segment.Segment(normalized)
	im.log.SectionsSegmented(name, len(sections))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := classify.Classify(sections, im.tmpl, classify.WithStrategy(im.strategy))
	im.log.DaysClassified(name, res.Matched(), len(res.Dropped), len(res.Missing), im.strategy.String())

	out := &Outcome{
		Sections:        sections,
		Dropped:         res.Dropped,
		Missing:         res.Missing,
		MissingMetadata: missing,
		HasFrontMatter:  found,
	}
	out.Week = im.assemble(fm, body, normalized, res.Days, out)

	if len(res.Dropped) > 0 {
		titles := make([]string, len(res.Dropped))
		for i, s := range res.Dropped {
			titles[i] = s.Title
		}
		im.log.SectionsDropped(name, titles)
	}
	if len(res.Missing) > 0 {
		days := make([]string, len(res.Missing))
		for i, d := range res.Missing {
			days[i] = string(d)
		}
		im.log.SlotsMissing(name, days)
	}
	for _, field := range out.MissingMetadata {
		im.log.MetadataMissing(name, field)
	}

	return out, nil
}

func (im *Importer) assemble(fm FrontMatter, body, normalized string, days []lesson.Day, out *Outcome) *lesson.WeekSchema {
	week := &lesson.WeekSchema{
		ID:      strings.TrimSpace(fm.ID),
		Quarter: strings.TrimSpace(fm.Quarter),
		Year:    strings.TrimSpace(fm.Year),
		WeekRange: lesson.WeekRange{
			Start: strings.TrimSpace(fm.WeekRange.Start),
			End:   strings.TrimSpace(fm.WeekRange.End),
		},
		Days: days,
	}

	switch {
	case fm.LessonNumber > 0:
		week.LessonNumber = fm.LessonNumber
	default:
		if n, ok := heuristics.LessonNumber(body); ok {
			week.LessonNumber = n
		} else {
			week.LessonNumber = 1
			out.MissingMetadata = append(out.MissingMetadata, "lesson_number")
		}
	}

	if t := strings.TrimSpace(fm.Title); t != "" {
		week.Title = t
	} else if t, ok := heuristics.Title(normalized); ok {
		week.Title = t
	} else {
		out.MissingMetadata = append(out.MissingMetadata, "title")
	}

	if fm.MemoryVerse.Text != "" && fm.MemoryVerse.Reference != "" {
		week.MemoryVerse = lesson.MemoryVerse{
			Text:      strings.TrimSpace(fm.MemoryVerse.Text),
			Reference: strings.TrimSpace(fm.MemoryVerse.Reference),
		}
	} else if v, ok := heuristics.MemoryVerse(normalized); ok {
		week.MemoryVerse = v
	} else {
		out.MissingMetadata = append(out.MissingMetadata, "memory_verse")
	}

	fillDates(week)

	if week.ID == "" {
		week.ID = week.WeekRange.End
	}

	return week
}

// fillDates derives the end of the week and each day's date from an ISO
// start date. Anything already set is kept.
func fillDates(week *lesson.WeekSchema) {
	start, err := time.Parse(dateLayout, week.WeekRange.Start)
	if err != nil {
		return
	}
	if week.WeekRange.End == "" {
		week.WeekRange.End = start.AddDate(0, 0, lesson.SlotCount-1).Format(dateLayout)
	}
	for i := range week.Days {
		if week.Days[i].Date == "" {
			week.Days[i].Date = start.AddDate(0, 0, i).Format(dateLayout)
		}
	}
}
