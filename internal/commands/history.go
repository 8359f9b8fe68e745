package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gerunddev/lessonbridge/internal/config"
	"github.com/gerunddev/lessonbridge/internal/state"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

// History lists past imports, most recent first
func History() {
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state", err)
	}

	printHistory(os.Stdout, st)

	cfg, err := config.Load()
	if err != nil {
		return
	}
	_, lastExport, exports := ParseLogFile(cfg.LogFile, 200)
	if !lastExport.IsZero() {
		fmt.Println()
		fmt.Println(styles.DimStyle.Render(fmt.Sprintf("Log: %d export(s) in recent entries, last at %s",
			exports, lastExport.Format(time.DateTime))))
	}
}

func printHistory(w io.Writer, st *state.State) {
	entries := st.History()

	fmt.Fprintln(w, styles.TitleStyle.Render(fmt.Sprintf("Import history (%d)", len(entries))))
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("No imports recorded yet."))
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s %s\n",
			styles.DimStyle.Render(e.ImportedAt.Local().Format(time.DateTime)),
			styles.HighlightStyle.Render(fmt.Sprintf("lesson %d", e.Lesson)),
			e.Source)
		fmt.Fprintf(w, "  %s %s\n", styles.DimStyle.Render("→"), e.OutputPath)

		if e.Dropped > 0 || e.Missing > 0 {
			fmt.Fprintf(w, "  %s\n", styles.Warning(fmt.Sprintf("%d dropped, %d empty days", e.Dropped, e.Missing)))
		}
		fmt.Fprintf(w, "  %s\n", styles.DimStyle.Render("id "+e.ID))
	}
}
