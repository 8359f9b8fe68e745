package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/lessonbridge/internal/classify"
	"github.com/gerunddev/lessonbridge/internal/config"
	"github.com/gerunddev/lessonbridge/internal/diff"
	"github.com/gerunddev/lessonbridge/internal/export"
	"github.com/gerunddev/lessonbridge/internal/importer"
	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/logger"
	"github.com/gerunddev/lessonbridge/internal/state"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

type importOptions struct {
	Source    string
	OutDir    string
	DryRun    bool
	ByWeekday bool
}

func parseImportArgs(args []string) (importOptions, error) {
	source, err := requireFile(args, "import <file.md> [--out DIR] [--dry-run] [--by-weekday] [--verbose]")
	if err != nil {
		return importOptions{}, err
	}
	opts := importOptions{
		Source:    source,
		DryRun:    hasFlag(args, "--dry-run"),
		ByWeekday: hasFlag(args, "--by-weekday"),
	}
	if out, ok := flagValue(args, "--out"); ok {
		opts.OutDir = out
	}
	return opts, nil
}

// importReport is everything the import command prints
type importReport struct {
	Outcome    *importer.Outcome
	OutputPath string
	Unchanged  bool
	Diff       string
	Problems   []string
	Written    bool
}

// newImporter builds an importer from configuration; byWeekday forces the
// weekday strategy
func newImporter(cfg *config.Config, log *logger.Logger, byWeekday bool) (*importer.Importer, error) {
	strategy, err := classify.ParseStrategy(cfg.DayMatching)
	if err != nil {
		return nil, err
	}
	if byWeekday {
		strategy = classify.ByWeekday
	}
	return importer.New(log,
		importer.WithTemplate(cfg.Template()),
		importer.WithStrategy(strategy),
	), nil
}

// runImport imports one document and, unless this is a dry run, writes the
// lesson file and records the import in st
func runImport(ctx context.Context, cfg *config.Config, log *logger.Logger, st *state.State, opts importOptions) (*importReport, error) {
	content, err := os.ReadFile(opts.Source)
	if err != nil {
		log.FileError(opts.Source, err)
		return nil, fmt.Errorf("failed to read %s: %w", opts.Source, err)
	}

	im, err := newImporter(cfg, log, opts.ByWeekday)
	if err != nil {
		return nil, err
	}

	outcome, err := im.Import(ctx, filepath.Base(opts.Source), string(content))
	if err != nil {
		return nil, err
	}

	week := outcome.Week
	if cfg.SanitizeExport {
		week = export.Sanitize(week)
	}

	data, err := export.Marshal(week)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	name := export.FileName(week)
	report := &importReport{
		Outcome:    outcome,
		OutputPath: filepath.Join(outDir, name),
	}

	if vErr := export.Validate(week); vErr != nil {
		report.Problems = flattenErrors("", vErr)
	}

	previous, err := os.ReadFile(report.OutputPath)
	switch {
	case err == nil:
		if bytes.Equal(previous, data) {
			report.Unchanged = true
		} else {
			report.Diff, err = diff.Generate(previous, data, name+" (previous)", name, diff.FormatRendered)
			if err != nil {
				return nil, err
			}
		}
	case !errors.Is(err, os.ErrNotExist):
		log.FileError(report.OutputPath, err)
	}

	if opts.DryRun || report.Unchanged {
		log.Skipped(opts.Source, skipReason(opts.DryRun))
		return report, nil
	}

	if err := export.Write(report.OutputPath, week); err != nil {
		log.FileError(report.OutputPath, err)
		return nil, err
	}
	report.Written = true
	log.ExportWritten(report.OutputPath, week.LessonNumber, week.DaysWithContent())

	if st != nil {
		source, err := filepath.Abs(opts.Source)
		if err != nil {
			source = opts.Source
		}
		if _, err := st.Record(source, report.OutputPath, week.LessonNumber, len(outcome.Dropped), len(outcome.Missing)); err != nil {
			log.StateError("record", err)
		}
	}

	return report, nil
}

func skipReason(dryRun bool) string {
	if dryRun {
		return "dry run"
	}
	return "output unchanged"
}

// Import converts a lesson document into a lesson JSON file
func Import(args []string) {
	opts, err := parseImportArgs(args)
	if err != nil {
		fail("Invalid arguments", err)
	}

	cfg, log, cleanup := loadConfig(hasFlag(args, "--verbose"))
	defer cleanup()

	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state", err)
	}

	title := "LessonBridge Import"
	if opts.DryRun {
		title += " (DRY RUN)"
	}
	fmt.Println(styles.TitleStyle.Render(title))
	fmt.Println()

	report, err := runImport(context.Background(), cfg, log, st, opts)
	if err != nil {
		fail("Import failed", err)
	}

	printImportReport(opts, report)

	if report.Written {
		if err := st.Save(config.StateFilePath()); err != nil {
			log.StateError("save", err)
			fail("Error saving state", err)
		}
	}
}

func printImportReport(opts importOptions, r *importReport) {
	week := r.Outcome.Week

	fmt.Printf("%s %s\n", styles.DimStyle.Render("Source:"), opts.Source)
	fmt.Printf("%s %d  %s\n", styles.DimStyle.Render("Lesson:"), week.LessonNumber, week.Title)
	fmt.Printf("%s %d sections, %d/%d days with content\n",
		styles.DimStyle.Render("Found: "), len(r.Outcome.Sections), week.DaysWithContent(), lesson.SlotCount)
	fmt.Println()

	for _, note := range importNotes(r.Outcome) {
		fmt.Println(styles.Warning(note))
	}

	if len(r.Problems) > 0 {
		fmt.Println(styles.DimStyle.Render("Still missing before publishing:"))
		for _, p := range r.Problems {
			fmt.Println(styles.DimStyle.Render("  " + p))
		}
		fmt.Println()
	}

	if r.Diff != "" {
		fmt.Println(r.Diff)
	}

	switch {
	case r.Unchanged:
		fmt.Println(styles.Success("Up to date: " + r.OutputPath))
	case opts.DryRun:
		fmt.Println(styles.DimStyle.Render("(dry run - would write " + r.OutputPath + ")"))
	case r.Written:
		fmt.Println(styles.Success("Wrote " + r.OutputPath))
	}
}

// importNotes lists the warnings of an import as one line each
func importNotes(o *importer.Outcome) []string {
	var notes []string
	if n := len(o.Dropped); n > 0 {
		titles := make([]string, n)
		for i, s := range o.Dropped {
			titles[i] = s.Title
		}
		notes = append(notes, fmt.Sprintf("%d section(s) had no weekday slot: %s", n, strings.Join(titles, ", ")))
	}
	if len(o.Missing) > 0 {
		days := make([]string, len(o.Missing))
		for i, d := range o.Missing {
			days[i] = string(d)
		}
		notes = append(notes, "No content for: "+strings.Join(days, ", "))
	}
	for _, field := range o.MissingMetadata {
		notes = append(notes, "Not found in document: "+field)
	}
	return notes
}
