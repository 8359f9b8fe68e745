package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

func TestSegmentTwoSections(t *testing.T) {
	input := "## Title One\nBody line 1\nBody line 2\n\n### Day Two\nMore body"

	got := Segment(input)

	require.Len(t, got, 2)
	assert.Equal(t, lesson.ParsedSection{
		Title: "Title One", Content: "Body line 1 Body line 2", Level: 2, OriginalIndex: 0, Line: 0,
	}, got[0])
	assert.Equal(t, lesson.ParsedSection{
		Title: "Day Two", Content: "More body", Level: 3, OriginalIndex: 1, Line: 4,
	}, got[1])
}

func TestSegmentNoHeadings(t *testing.T) {
	inputs := []string{
		"",
		"plain text\nwith lines",
		"# Only a level one heading\nbody",
		"#### Too deep\nbody",
		"##NoSpace",
		"\x00\x01\xff garbage \n\n\t",
	}

	for _, in := range inputs {
		got := Segment(in)
		require.NotNil(t, got, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}
}

func TestSegmentDiscardsPreamble(t *testing.T) {
	input := "**Lección 8** : Para el 24 de mayo\n\n## **EN LOS SALMOS**\n\nSábado 17 de mayo"

	got := Segment(input)

	require.Len(t, got, 1)
	assert.Equal(t, "EN LOS SALMOS", got[0].Title)
	assert.Equal(t, "Sábado 17 de mayo", got[0].Content)
}

func TestSegmentEmptyBody(t *testing.T) {
	got := Segment("## First\n## Second\nbody")

	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].Content)
	assert.Equal(t, "body", got[1].Content)
}

func TestSegmentKeepsParagraphBreaks(t *testing.T) {
	input := "### Heading\nfirst line\nwrapped\n\nsecond paragraph\n  \n\nthird"

	got := Segment(input)

	require.Len(t, got, 1)
	assert.Equal(t, "first line wrapped\n\nsecond paragraph\n\n\nthird", got[0].Content)
}

func TestSegmentIgnoresOtherHeadingLevelsAsBoundaries(t *testing.T) {
	input := "## Top\n# stray h1\n#### deep\ntext"

	got := Segment(input)

	require.Len(t, got, 1)
	assert.Equal(t, "# stray h1 #### deep text", got[0].Content)
}

func TestSegmentOrdinalsStrictlyIncreasing(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString("### Section\nbody\n\nnoise line\n")
	}

	got := Segment(b.String())

	require.Len(t, got, 12)
	for i, s := range got {
		assert.Equal(t, i, s.OriginalIndex)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	input := "## A\none\ntwo\n\n### B\nthree\n## C"

	assert.Equal(t, Segment(input), Segment(input))
}

func TestSegmentCarriageReturns(t *testing.T) {
	got := Segment("## Title\r\nline one\r\nline two\r\n")

	require.Len(t, got, 1)
	assert.Equal(t, "Title", got[0].Title)
	assert.Equal(t, "line one line two", got[0].Content)
}

func TestSegmentWhitespaceOnlyLineBreaksParagraph(t *testing.T) {
	got := Segment("## A\none\n  \t\ntwo")

	require.Len(t, got, 1)
	assert.Equal(t, "one\n\ntwo", got[0].Content)
}

func TestSegmentNoBreakSpaceHeadings(t *testing.T) {
	got := Segment("##\u00a0Título\nbody\n###\u00a0Domingo\nmore")

	require.Len(t, got, 2)
	assert.Equal(t, "Título", got[0].Title)
	assert.Equal(t, "body", got[0].Content)
	assert.Equal(t, "Domingo", got[1].Title)
	assert.Equal(t, 1, got[1].OriginalIndex)
}

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		level int
		title string
		ok    bool
	}{
		{"level two", "## Title", 2, "Title", true},
		{"level three bold", "### **NUESTRO SUMO SACERDOTE**", 3, "NUESTRO SUMO SACERDOTE", true},
		{"split bold", "## **EN LOS SALMOS - PRIMERA ** **PARTE**", 2, "EN LOS SALMOS - PRIMERA  PARTE", true},
		{"tab separator", "##\tTabbed", 2, "Tabbed", true},
		{"no-break space separator", "###\u00a0Domingo", 3, "Domingo", true},
		{"level one", "# Title", 0, "", false},
		{"level four", "#### Title", 0, "", false},
		{"no space", "##Title", 0, "", false},
		{"indented", "  ## Title", 0, "", false},
		{"plain", "Title", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, title, ok := MatchHeading(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.title, title)
		})
	}
}
