package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/segment"
)

func sections(n int) []lesson.ParsedSection {
	out := make([]lesson.ParsedSection, n)
	for i := range out {
		out[i] = lesson.ParsedSection{
			Title:         fmt.Sprintf("Title %d", i),
			Content:       fmt.Sprintf("Body %d", i),
			Level:         3,
			OriginalIndex: i,
		}
	}
	return out
}

func TestClassifyEmpty(t *testing.T) {
	res := Classify(nil, lesson.DefaultTemplate())

	require.Len(t, res.Days, lesson.SlotCount)
	for i, d := range res.Days {
		assert.Empty(t, d.RawMarkdown, "day %d", i)
		assert.NotNil(t, d.Sections)
		assert.Empty(t, d.Date)
		switch i {
		case 0:
			assert.Equal(t, "Introducción", d.Title)
		case 6:
			assert.Equal(t, "PARA ESTUDIAR Y MEDITAR", d.Title)
		default:
			assert.Empty(t, d.Title, "day %d", i)
		}
	}
	assert.Len(t, res.Missing, lesson.SlotCount)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, 0, res.Matched())
}

func TestClassifyWeekOrderAndTypes(t *testing.T) {
	res := Classify(sections(7), lesson.DefaultTemplate())

	wantDays := []string{"Sábado", "Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}
	wantTypes := []lesson.DayType{
		lesson.Introduction, lesson.Devotional, lesson.Devotional, lesson.Devotional,
		lesson.Devotional, lesson.Devotional, lesson.Review,
	}
	require.Len(t, res.Days, 7)
	for i, d := range res.Days {
		assert.Equal(t, wantDays[i], d.Day)
		assert.Equal(t, wantTypes[i], d.Type)
		assert.Equal(t, fmt.Sprintf("Title %d", i), d.Title)
		assert.Equal(t, fmt.Sprintf("Body %d", i), d.RawMarkdown)
	}
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, 7, res.Matched())
}

func TestClassifyFewerSections(t *testing.T) {
	for n := 0; n <= 7; n++ {
		t.Run(fmt.Sprintf("%d sections", n), func(t *testing.T) {
			res := Classify(sections(n), lesson.DefaultTemplate())

			require.Len(t, res.Days, 7)
			assert.Len(t, res.Missing, 7-n)
			for i := n; i < 7; i++ {
				d := res.Days[i]
				assert.Empty(t, d.RawMarkdown)
				if i != 0 && i != 6 {
					assert.Empty(t, d.Title)
				}
			}
		})
	}
}

// Sections past the seventh have no slot and are truncated without error.
func TestClassifyTruncatesExtraSections(t *testing.T) {
	input := sections(9)

	res := Classify(input, lesson.DefaultTemplate())

	require.Len(t, res.Days, 7)
	for i, d := range res.Days {
		assert.Equal(t, fmt.Sprintf("Title %d", i), d.Title)
	}
	require.Len(t, res.Dropped, 2)
	assert.Equal(t, input[7], res.Dropped[0])
	assert.Equal(t, input[8], res.Dropped[1])

	// the surplus never shows up in the week
	seven := Classify(input[:7], lesson.DefaultTemplate())
	assert.Equal(t, seven.Days, res.Days)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	input := []lesson.ParsedSection{
		{Title: "first", Content: "a", OriginalIndex: 1},
		{Title: "second", Content: "b", OriginalIndex: 1},
	}

	res := Classify(input, lesson.DefaultTemplate())

	assert.Equal(t, "first", res.Days[1].Title)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "second", res.Dropped[0].Title)
}

func TestClassifyCustomTemplate(t *testing.T) {
	tmpl := lesson.NewTemplate("Intro", "Review")

	res := Classify(nil, tmpl)

	assert.Equal(t, "Intro", res.Days[0].Title)
	assert.Equal(t, "Review", res.Days[6].Title)
	// the default template is untouched
	assert.Equal(t, "Introducción", lesson.DefaultTemplate().Stub(0).Title)
}

func TestClassifyByWeekday(t *testing.T) {
	input := []lesson.ParsedSection{
		{Title: "EN LOS SALMOS", Content: "intro", OriginalIndex: 0},
		{Title: "Front matter noise", Content: "noise", OriginalIndex: 1},
		{Title: "Lunes: EN EL MONTE SION", Content: "monday", OriginalIndex: 2},
		{Title: "MIERCOLES", Content: "wednesday", OriginalIndex: 3},
	}

	res := Classify(input, lesson.DefaultTemplate(), WithStrategy(ByWeekday))

	assert.Equal(t, "intro", res.Days[0].RawMarkdown)
	assert.Equal(t, "noise", res.Days[1].RawMarkdown)
	assert.Equal(t, "monday", res.Days[2].RawMarkdown)
	assert.Equal(t, "", res.Days[3].RawMarkdown)
	assert.Equal(t, "wednesday", res.Days[4].RawMarkdown)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, []lesson.Weekday{lesson.Martes, lesson.Jueves, lesson.Viernes}, res.Missing)
}

func TestClassifyByWeekdayFallsBackToPosition(t *testing.T) {
	input := []lesson.ParsedSection{
		{Title: "Domingo", Content: "sunday", OriginalIndex: 0},
		{Title: "second", Content: "positional", OriginalIndex: 1},
	}

	res := Classify(input, lesson.DefaultTemplate(), WithStrategy(ByWeekday))

	assert.Equal(t, "sunday", res.Days[1].RawMarkdown)
	// slot 1 is taken by the named section, so the next free slot is used
	assert.Equal(t, "positional", res.Days[2].RawMarkdown)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, "Introducción", res.Days[0].Title)
	assert.Equal(t, []lesson.Weekday{lesson.Sabado, lesson.Martes, lesson.Miercoles, lesson.Jueves, lesson.Viernes}, res.Missing)
}

func TestClassifyByWeekdayDropsWhenNoLaterSlotIsFree(t *testing.T) {
	input := []lesson.ParsedSection{
		{Title: "Viernes", Content: "friday", OriginalIndex: 0},
		{Title: "late", Content: "late", OriginalIndex: 6},
	}

	res := Classify(input, lesson.DefaultTemplate(), WithStrategy(ByWeekday))

	assert.Equal(t, "friday", res.Days[6].RawMarkdown)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "late", res.Dropped[0].Title)
}

func TestSegmentThenClassify(t *testing.T) {
	input := "## Week\nintro\n### Day Two\nsecond\n"

	res := Classify(segment.Segment(input), lesson.DefaultTemplate())

	assert.Equal(t, "Week", res.Days[0].Title)
	assert.Equal(t, "intro", res.Days[0].RawMarkdown)
	assert.Equal(t, "Day Two", res.Days[1].Title)
	assert.Len(t, res.Missing, 5)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, Positional, s)

	s, err = ParseStrategy("weekday")
	require.NoError(t, err)
	assert.Equal(t, ByWeekday, s)

	_, err = ParseStrategy("semantic")
	assert.Error(t, err)
}
