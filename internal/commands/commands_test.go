package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/lessonbridge/internal/analyze"
	"github.com/gerunddev/lessonbridge/internal/config"
	"github.com/gerunddev/lessonbridge/internal/export"
	"github.com/gerunddev/lessonbridge/internal/logger"
	"github.com/gerunddev/lessonbridge/internal/segment"
	"github.com/gerunddev/lessonbridge/internal/state"
)

const weekDoc = `---
quarter: Q2
year: 2025
week_range:
  start: 2025-05-17
---
**Lección 8**

## **EN LOS SALMOS**

PARA MEMORIZAR: "Sample verse text" (John 3:16)

### **Domingo**
sunday

### Lunes
monday

### Martes
tuesday

### Miércoles
wednesday

### Jueves
thursday

### Viernes
friday
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.LogFile = filepath.Join(t.TempDir(), "lessonbridge.log")
	return cfg
}

func writeSource(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lesson-08.md")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseImportArgs(t *testing.T) {
	opts, err := parseImportArgs([]string{"--out", "dir", "lesson.md", "--dry-run"})
	require.NoError(t, err)
	assert.Equal(t, importOptions{Source: "lesson.md", OutDir: "dir", DryRun: true}, opts)

	opts, err = parseImportArgs([]string{"lesson.md", "--out=elsewhere", "--by-weekday"})
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", opts.OutDir)
	assert.True(t, opts.ByWeekday)

	_, err = parseImportArgs([]string{"--dry-run"})
	assert.Error(t, err)

	_, err = parseImportArgs([]string{"a.md", "b.md"})
	assert.Error(t, err)
}

func TestPositional(t *testing.T) {
	assert.Equal(t, []string{"a.md"}, positional([]string{"a.md", "--interval", "10s", "--json"}))
	assert.Empty(t, positional([]string{"--out", "dir"}))
}

func TestRunImportWritesAndRecords(t *testing.T) {
	cfg := testConfig(t)
	st := state.NewState()
	source := writeSource(t, weekDoc)

	report, err := runImport(context.Background(), cfg, logger.Discard(), st, importOptions{Source: source})
	require.NoError(t, err)

	assert.True(t, report.Written)
	assert.Empty(t, report.Problems)
	assert.Empty(t, report.Diff)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "lesson-8-week-2025-05-23.json"), report.OutputPath)

	week, err := export.Read(report.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "Domingo", week.Days[1].Title)
	assert.Equal(t, "sunday", week.Days[1].RawMarkdown)

	abs, err := filepath.Abs(source)
	require.NoError(t, err)
	rec := st.Imports[abs]
	require.NotNil(t, rec)
	assert.Equal(t, report.OutputPath, rec.OutputPath)
	assert.Equal(t, 8, rec.Lesson)
	assert.Equal(t, 0, rec.Missing)
}

func TestRunImportUnchangedAndDiff(t *testing.T) {
	cfg := testConfig(t)
	st := state.NewState()
	source := writeSource(t, weekDoc)
	opts := importOptions{Source: source}

	_, err := runImport(context.Background(), cfg, logger.Discard(), st, opts)
	require.NoError(t, err)

	again, err := runImport(context.Background(), cfg, logger.Discard(), st, opts)
	require.NoError(t, err)
	assert.True(t, again.Unchanged)
	assert.False(t, again.Written)

	require.NoError(t, os.WriteFile(source, []byte(strings.Replace(weekDoc, "monday", "lunes nuevo", 1)), 0644))
	changed, err := runImport(context.Background(), cfg, logger.Discard(), st, opts)
	require.NoError(t, err)
	assert.True(t, changed.Written)
	assert.NotEmpty(t, changed.Diff)
}

func TestRunImportDryRun(t *testing.T) {
	cfg := testConfig(t)
	st := state.NewState()
	source := writeSource(t, "## Only\nbody\n")

	report, err := runImport(context.Background(), cfg, logger.Discard(), st, importOptions{Source: source, DryRun: true})
	require.NoError(t, err)

	assert.False(t, report.Written)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "lesson-1-week-undated.json"), report.OutputPath)
	assert.NotEmpty(t, report.Problems)
	assert.Empty(t, st.Imports)
	_, err = os.Stat(report.OutputPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	notes := importNotes(report.Outcome)
	assert.NotEmpty(t, notes)
	assert.Contains(t, notes[0], "No content for: Domingo")
}

func TestRunImportOutDirOverride(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "custom")

	report, err := runImport(context.Background(), cfg, logger.Discard(), nil, importOptions{Source: writeSource(t, weekDoc), OutDir: out})
	require.NoError(t, err)
	assert.Equal(t, out, filepath.Dir(report.OutputPath))
}

func TestRunImportMissingFile(t *testing.T) {
	_, err := runImport(context.Background(), testConfig(t), logger.Discard(), nil, importOptions{Source: "/nonexistent/lesson.md"})
	assert.Error(t, err)
}

func TestImportIfChanged(t *testing.T) {
	cfg := testConfig(t)
	st := state.NewState()
	statePath := filepath.Join(t.TempDir(), "state.json")
	opts := importOptions{Source: writeSource(t, weekDoc)}

	first, err := importIfChanged(context.Background(), cfg, logger.Discard(), st, statePath, opts)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Written)

	saved, err := state.Load(statePath)
	require.NoError(t, err)
	assert.Len(t, saved.Imports, 1)

	second, err := importIfChanged(context.Background(), cfg, logger.Discard(), st, statePath, opts)
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestWatchLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var buf bytes.Buffer

	calls := 0
	watchLoop(ctx, 5*time.Millisecond, logger.New(&buf), func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("source vanished")
		}
		cancel()
		return nil
	})

	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "watch tick failed")
	assert.Contains(t, buf.String(), "watch stopping")
}

func TestFlattenErrors(t *testing.T) {
	err := validation.Errors{
		"title": errors.New("cannot be blank"),
		"days": validation.Errors{
			"10": errors.New("x"),
			"2":  errors.New("y"),
		},
	}

	assert.Equal(t, []string{"days.2: y", "days.10: x", "title: cannot be blank"}, flattenErrors("", err))
	assert.Equal(t, []string{"boom"}, flattenErrors("", errors.New("boom")))
}

func TestCheckLessonFile(t *testing.T) {
	cfg := testConfig(t)
	report, err := runImport(context.Background(), cfg, logger.Discard(), nil, importOptions{Source: writeSource(t, weekDoc)})
	require.NoError(t, err)

	var out bytes.Buffer
	assert.True(t, checkLessonFile(&out, report.OutputPath), out.String())
	assert.Contains(t, out.String(), "lesson 8, 7/7 days")

	incomplete := filepath.Join(t.TempDir(), "incomplete.json")
	week := cfg.Template().EmptyWeek()
	require.NoError(t, export.Write(incomplete, &week))
	out.Reset()
	assert.False(t, checkLessonFile(&out, incomplete))
	assert.Contains(t, out.String(), "not ready to publish")
	assert.Contains(t, out.String(), "title: cannot be blank")

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"days": 3}`), 0644))
	out.Reset()
	assert.False(t, checkLessonFile(&out, broken))
	assert.Contains(t, out.String(), "does not match the lesson schema")
}

func TestPrintSectionsAndStructure(t *testing.T) {
	var out bytes.Buffer

	printSections(&out, "lesson.md", segment.Segment(weekDoc))
	assert.Contains(t, out.String(), "Sections in lesson.md: 7")
	assert.Contains(t, out.String(), "EN LOS SALMOS")

	out.Reset()
	printStructure(&out, "lesson.md", analyze.Analyze(weekDoc))
	assert.Contains(t, out.String(), "Lesson heading:")
	assert.Contains(t, out.String(), "Suggested day splits (6)")
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, state.NewState())
	assert.Contains(t, out.String(), "No imports recorded yet.")

	st := state.NewState()
	st.Imports["/docs/lesson-08.md"] = &state.ImportRecord{
		ID:         "abc",
		OutputPath: "/out/lesson-8-week-2025-05-23.json",
		ImportedAt: time.Now(),
		Lesson:     8,
		Dropped:    1,
	}
	out.Reset()
	printHistory(&out, st)
	assert.Contains(t, out.String(), "/docs/lesson-08.md")
	assert.Contains(t, out.String(), "lesson 8")
	assert.Contains(t, out.String(), "1 dropped, 0 empty days")
}

func TestParseLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonbridge.log")
	log := strings.Join([]string{
		"2025-05-17 09:00:00 INFO import started source=a.md",
		"2025-05-17 09:00:01 INFO export written path=/out/a.json lesson=8",
		"2025-05-17 10:00:00 INFO import started source=b.md",
		"2025-05-17 10:00:02 INFO export written path=/out/b.json lesson=9",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(log), 0644))

	lines, last, count := ParseLogFile(path, 3)

	assert.Len(t, lines, 3)
	assert.Equal(t, 1, count)
	assert.Equal(t, "10:00:02", last.Format(time.TimeOnly))

	lines, _, count = ParseLogFile(filepath.Join(t.TempDir(), "missing.log"), 10)
	assert.Equal(t, []string{"Unable to read log file"}, lines)
	assert.Equal(t, 0, count)
}

func TestDocumentBody(t *testing.T) {
	body := documentBody([]byte(weekDoc))
	assert.True(t, strings.HasPrefix(body, "**Lección 8**"))

	assert.Equal(t, "## Plain\n", documentBody([]byte("## Plain\n")))
	assert.Equal(t, "---\nunterminated\n", documentBody([]byte("---\nunterminated\n")))
}

func TestSegmentDocumentMatchesImport(t *testing.T) {
	doc := "---\nquarter: Q2\n---\npreamble\n\n## Week\nwrapped\nline\n\n\n\n### Domingo\nbody\n"

	got := segmentDocument([]byte(doc))

	require.Len(t, got, 2)
	assert.Equal(t, "wrapped line", got[0].Content)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, "Domingo", got[1].Title)
	assert.Equal(t, 5, got[1].Line)
}
