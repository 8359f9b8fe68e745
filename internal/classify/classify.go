// Package classify assigns segmented sections to the seven weekday slots of
// a lesson template.
package classify

import (
	"fmt"

	"github.com/gerunddev/lessonbridge/internal/heuristics"
	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// Strategy selects how sections are matched to weekday slots
type Strategy int

const (
	// Positional puts the Nth section on the Nth weekday
	Positional Strategy = iota
	// ByWeekday first honours a weekday named in the section title, then
	// falls back to position for everything else
	ByWeekday
)

// ParseStrategy maps a config value to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "positional":
		return Positional, nil
	case "weekday":
		return ByWeekday, nil
	default:
		return Positional, fmt.Errorf("unknown day matching strategy '%s': must be one of: positional, weekday", s)
	}
}

func (s Strategy) String() string {
	if s == ByWeekday {
		return "weekday"
	}
	return "positional"
}

type options struct {
	strategy Strategy
}

// Option configures Classify
type Option func(*options)

// WithStrategy overrides the default positional matching
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// Result is the outcome of a classification. Days always holds exactly
// lesson.SlotCount entries in canonical order.
type Result struct {
	Days    []lesson.Day
	Dropped []lesson.ParsedSection // sections that found no free slot
	Missing []lesson.Weekday       // slots left as template stubs
}

// Matched returns how many slots received a section
func (r Result) Matched() int {
	return len(r.Days) - len(r.Missing)
}

// Classify merges sections onto tmpl. It never fails: surplus sections end up
// in Dropped and unfilled slots in Missing. When two sections compete for a
// slot the first one wins.
func Classify(sections []lesson.ParsedSection, tmpl lesson.Template, opts ...Option) Result {
	o := options{strategy: Positional}
	for _, opt := range opts {
		opt(&o)
	}

	var assigned [lesson.SlotCount]*lesson.ParsedSection
	var dropped []lesson.ParsedSection

	place := func(slot int, s lesson.ParsedSection) bool {
		if slot < 0 || slot >= lesson.SlotCount || assigned[slot] != nil {
			return false
		}
		assigned[slot] = &s
		return true
	}

	pending := sections
	if o.strategy == ByWeekday {
		pending = nil
		for _, s := range sections {
			if wd, ok := heuristics.Weekday(s.Title); ok && place(tmpl.Index(wd), s) {
				continue
			}
			pending = append(pending, s)
		}
	}

	for _, s := range pending {
		if place(s.OriginalIndex, s) {
			continue
		}
		if o.strategy == ByWeekday && placeAfter(s.OriginalIndex, s, place) {
			continue
		}
		dropped = append(dropped, s)
	}

	res := Result{
		Days:    make([]lesson.Day, lesson.SlotCount),
		Dropped: dropped,
	}
	for i := range res.Days {
		day := tmpl.Stub(i)
		if s := assigned[i]; s != nil {
			day.Title = s.Title
			day.RawMarkdown = s.Content
		} else {
			res.Missing = append(res.Missing, tmpl.Slot(i).Day)
		}
		res.Days[i] = day
	}

	return res
}

// placeAfter puts s into the first free slot after its own one. Slots are
// only ever filled forward so the week keeps the document's order.
func placeAfter(index int, s lesson.ParsedSection, place func(int, lesson.ParsedSection) bool) bool {
	for slot := index + 1; slot < lesson.SlotCount; slot++ {
		if place(slot, s) {
			return true
		}
	}
	return false
}
