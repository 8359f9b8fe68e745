package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/lessonbridge/internal/export"
	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/styles"
	"github.com/gerunddev/lessonbridge/internal/tui"
)

// checkLessonFile reads a lesson file and reports schema and completeness
// problems. ok is false when anything was reported.
func checkLessonFile(w io.Writer, path string) (ok bool) {
	week, err := export.Read(path)
	if err != nil {
		if !errors.Is(err, export.ErrSchema) {
			fmt.Fprintln(w, styles.Failure(err.Error()))
			return false
		}
		fmt.Fprintln(w, styles.Failure(path+" does not match the lesson schema"))
		for _, issue := range export.Issues(err) {
			loc := issue.Location
			if loc == "" {
				loc = "/"
			}
			fmt.Fprintf(w, "  %s %s\n", styles.DimStyle.Render(loc), issue.Message)
		}
		return false
	}

	if err := export.Validate(week); err != nil {
		fmt.Fprintln(w, styles.Warning(fmt.Sprintf("%s is not ready to publish", path)))
		for _, line := range flattenErrors("", err) {
			fmt.Fprintln(w, "  "+line)
		}
		return false
	}

	fmt.Fprintln(w, styles.Success(fmt.Sprintf("%s: lesson %d, %d/%d days with content",
		path, week.LessonNumber, week.DaysWithContent(), lesson.SlotCount)))
	return true
}

// Validate checks a lesson JSON file against the schema and the publishing
// requirements
func Validate(args []string) {
	path, err := requireFile(args, "validate <lesson.json>")
	if err != nil {
		fail("Invalid arguments", err)
	}

	if !checkLessonFile(os.Stdout, path) {
		os.Exit(1)
	}
}

// Review opens the day browser for a lesson JSON file or, for markdown, for
// a fresh import that is not written anywhere
func Review(args []string) {
	path, err := requireFile(args, "review <lesson.json|file.md>")
	if err != nil {
		fail("Invalid arguments", err)
	}

	var week *lesson.WeekSchema
	var notes []string

	if strings.EqualFold(filepath.Ext(path), ".json") {
		week, err = export.Read(path)
		if err != nil {
			fail("Error reading lesson", err)
		}
	} else {
		cfg, log, cleanup := loadConfig(false)
		defer cleanup()

		content, err := os.ReadFile(path)
		if err != nil {
			fail("Error reading file", err)
		}
		im, err := newImporter(cfg, log, hasFlag(args, "--by-weekday"))
		if err != nil {
			fail("Invalid configuration", err)
		}
		outcome, err := im.Import(context.Background(), filepath.Base(path), string(content))
		if err != nil {
			fail("Import failed", err)
		}
		week = outcome.Week
		notes = importNotes(outcome)
	}

	p := tea.NewProgram(tui.InitReviewModel(week, path, notes), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}
}
