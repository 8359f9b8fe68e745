package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gerunddev/lessonbridge/internal/config"
	"github.com/gerunddev/lessonbridge/internal/logger"
	"github.com/gerunddev/lessonbridge/internal/state"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

// watchLoop runs tick once right away and then on every interval until ctx
// is done. Tick errors are logged and never stop the loop.
func watchLoop(ctx context.Context, interval time.Duration, log *logger.Logger, tick func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		if err := tick(ctx); err != nil && ctx.Err() == nil {
			log.Error("watch tick failed", "error", err)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopping")
			return
		case <-ticker.C:
			run()
		}
	}
}

// importIfChanged re-imports source when its content changed since the last
// recorded import
func importIfChanged(ctx context.Context, cfg *config.Config, log *logger.Logger, st *state.State, statePath string, opts importOptions) (*importReport, error) {
	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, err
	}

	changed, err := st.HasChanged(source)
	if err != nil {
		log.FileError(source, err)
		return nil, err
	}
	if !changed {
		log.Skipped(source, "unchanged since last import")
		return nil, nil
	}

	opts.Source = source
	report, err := runImport(ctx, cfg, log, st, opts)
	if err != nil {
		return nil, err
	}

	if report.Written || report.Unchanged {
		if report.Unchanged {
			// identical output: refresh the record so the mtime check matches again
			if _, err := st.Record(source, report.OutputPath, report.Outcome.Week.LessonNumber,
				len(report.Outcome.Dropped), len(report.Outcome.Missing)); err != nil {
				log.StateError("record", err)
			}
		}
		if err := st.Save(statePath); err != nil {
			log.StateError("save", err)
			return report, err
		}
	}
	return report, nil
}

// Watch re-imports a document whenever it changes, until interrupted
func Watch(args []string) {
	path, err := requireFile(args, "watch <file.md> [--interval 30s] [--out DIR] [--by-weekday] [--verbose]")
	if err != nil {
		fail("Invalid arguments", err)
	}

	cfg, log, cleanup := loadConfig(hasFlag(args, "--verbose"))
	defer cleanup()

	if v, ok := flagValue(args, "--interval"); ok {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			fail("Invalid interval", fmt.Errorf("'%s' is not a positive duration", v))
		}
		cfg.Interval = interval
	}

	statePath := config.StateFilePath()
	st, err := state.Load(statePath)
	if err != nil {
		fail("Error loading state", err)
	}

	opts := importOptions{Source: path, ByWeekday: hasFlag(args, "--by-weekday")}
	if out, ok := flagValue(args, "--out"); ok {
		opts.OutDir = out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(styles.TitleStyle.Render("LessonBridge Watch"))
	fmt.Printf("%s every %s %s\n\n",
		styles.DimStyle.Render("Checking "+path),
		cfg.Interval,
		styles.DimStyle.Render("(ctrl+c to stop)"))
	log.Info("watch started", "source", path, "interval", cfg.Interval)

	watchLoop(ctx, cfg.Interval, log, func(ctx context.Context) error {
		report, err := importIfChanged(ctx, cfg, log, st, statePath, opts)
		stamp := styles.DimStyle.Render(time.Now().Format(time.TimeOnly))
		switch {
		case err != nil:
			fmt.Println(stamp, styles.Failure(err.Error()))
		case report == nil:
		case report.Unchanged:
			fmt.Println(stamp, styles.Success("Up to date: "+report.OutputPath))
		case report.Written:
			fmt.Println(stamp, styles.Success("Wrote "+report.OutputPath))
			for _, note := range importNotes(report.Outcome) {
				fmt.Println(stamp, styles.Warning(note))
			}
		}
		return err
	})

	fmt.Println(styles.DimStyle.Render("Stopped."))
}
