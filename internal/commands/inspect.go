package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/gerunddev/lessonbridge/internal/analyze"
	"github.com/gerunddev/lessonbridge/internal/heuristics"
	"github.com/gerunddev/lessonbridge/internal/importer"
	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/segment"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

// Segment prints the heading sections of a document
func Segment(args []string) {
	path, err := requireFile(args, "segment <file.md> [--json]")
	if err != nil {
		fail("Invalid arguments", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fail("Error reading file", err)
	}

	sections := segmentDocument(content)
	if hasFlag(args, "--json") {
		if err := writeJSON(os.Stdout, sections); err != nil {
			fail("Error encoding sections", err)
		}
		return
	}

	printSections(os.Stdout, path, sections)
}

// segmentDocument splits a document the same way an import does
func segmentDocument(content []byte) []lesson.ParsedSection {
	return segment.Segment(heuristics.Normalize(documentBody(content)))
}

func printSections(w io.Writer, path string, sections []lesson.ParsedSection) {
	fmt.Fprintln(w, styles.TitleStyle.Render(fmt.Sprintf("Sections in %s: %d", path, len(sections))))
	fmt.Fprintln(w)

	weekdays := lesson.Weekdays()
	for _, s := range sections {
		slot := styles.DimStyle.Render("(no slot)")
		if s.OriginalIndex < lesson.SlotCount {
			slot = string(weekdays[s.OriginalIndex])
		}
		fmt.Fprintf(w, "%s %-10s %s %s\n",
			styles.DimStyle.Render(fmt.Sprintf("#%d L%d line %-4d", s.OriginalIndex, s.Level, s.Line)),
			slot,
			styles.HighlightStyle.Render(s.Title),
			styles.DimStyle.Render(fmt.Sprintf("(%d chars)", utf8.RuneCountInString(s.Content))))
	}
}

// Analyze prints the block structure of a document and suggested splits
func Analyze(args []string) {
	path, err := requireFile(args, "analyze <file.md> [--json]")
	if err != nil {
		fail("Invalid arguments", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fail("Error reading file", err)
	}

	st := analyze.Analyze(documentBody(content))
	if hasFlag(args, "--json") {
		payload := struct {
			analyze.Structure
			AutoSplit []analyze.SplitMarker `json:"autoSplit"`
		}{st, st.AutoSplit()}
		if err := writeJSON(os.Stdout, payload); err != nil {
			fail("Error encoding analysis", err)
		}
		return
	}

	printStructure(os.Stdout, path, st)
}

func printStructure(w io.Writer, path string, st analyze.Structure) {
	fmt.Fprintln(w, styles.TitleStyle.Render("Structure of "+path))
	fmt.Fprintln(w)

	if h, ok := st.LessonHeading(); ok {
		fmt.Fprintf(w, "%s %s\n\n", styles.DimStyle.Render("Lesson heading:"), segment.CleanTitle(h.Text))
	}

	fmt.Fprintln(w, styles.HeaderStyle.Render(fmt.Sprintf("Blocks (%d)", len(st.Blocks))))
	for _, b := range st.Blocks {
		preview := []rune(b.Content)
		if len(preview) > 60 {
			preview = append(preview[:57], []rune("...")...)
		}
		fmt.Fprintf(w, "  %s %-9s %s\n",
			styles.DimStyle.Render(fmt.Sprintf("%-9s line %-4d", b.ID, b.Line)),
			b.Kind,
			string(preview))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.HeaderStyle.Render(fmt.Sprintf("Candidate sections (%d)", len(st.Candidates))))
	for _, c := range st.Candidates {
		fmt.Fprintf(w, "  %-20s %s %s\n", c.Type, c.BlockID, styles.DimStyle.Render(fmt.Sprintf("%.0f%%", c.Confidence*100)))
	}
	fmt.Fprintln(w)

	markers := st.AutoSplit()
	fmt.Fprintln(w, styles.HeaderStyle.Render(fmt.Sprintf("Suggested day splits (%d)", len(markers))))
	for _, m := range markers {
		fmt.Fprintf(w, "  %s %s\n", styles.DimStyle.Render(fmt.Sprintf("line %-4d", m.Line)), segment.CleanTitle(m.Content))
	}
}

// documentBody strips a front matter block. Malformed front matter is left in
// place so it shows up in the output.
func documentBody(content []byte) string {
	_, body, found, err := importer.ParseFrontMatter(string(content))
	if err != nil || !found {
		return string(content)
	}
	return body
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
