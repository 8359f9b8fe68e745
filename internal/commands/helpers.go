package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gerunddev/lessonbridge/internal/config"
	"github.com/gerunddev/lessonbridge/internal/logger"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

// valueFlags take the following argument as their value
var valueFlags = map[string]bool{
	"--out":      true,
	"--interval": true,
}

// hasFlag reports whether a boolean flag is present
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// flagValue returns the value following a flag
func flagValue(args []string, name string) (string, bool) {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1], true
		}
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v, true
		}
	}
	return "", false
}

// positional returns the arguments that are not flags or flag values
func positional(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--") {
			if valueFlags[arg] {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

// requireFile returns the single positional file argument
func requireFile(args []string, usage string) (string, error) {
	files := positional(args)
	if len(files) != 1 {
		return "", fmt.Errorf("usage: lessonbridge %s", usage)
	}
	return files[0], nil
}

// fail prints a styled error and exits
func fail(context string, err error) {
	fmt.Println(styles.Failure(context + ": " + err.Error()))
	os.Exit(1)
}

// loadConfig loads configuration and opens the log file, falling back to a
// discarding logger when the log file cannot be opened. verbose copies log
// entries to stderr.
func loadConfig(verbose bool) (*config.Config, *logger.Logger, func()) {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}

	var also []io.Writer
	if verbose {
		also = append(also, os.Stderr)
	}
	log, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel), also...)
	if err != nil {
		fmt.Println(styles.Warning("Cannot open log file: " + err.Error()))
		return cfg, logger.Discard(), func() {}
	}
	log.ConfigLoaded(cfg.OutputDir, cfg.DayMatching, cfg.Interval)
	return cfg, log, cleanup
}

// flattenErrors turns nested validation errors into sorted "path: message"
// lines
func flattenErrors(prefix string, err error) []string {
	errs, ok := err.(validation.Errors)
	if !ok {
		if prefix == "" {
			return []string{err.Error()}
		}
		return []string{prefix + ": " + err.Error()}
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})

	var lines []string
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		lines = append(lines, flattenErrors(path, errs[k])...)
	}
	return lines
}

// keyLess orders numeric keys numerically so day 10 never sorts before day 2
func keyLess(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseLogFile reads the last N lines from the log file and extracts the
// most recent export time and how many exports appear in that window
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastExport time.Time
	exports := 0
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if !strings.Contains(line, "export written") {
			continue
		}
		exports++
		// Format: 2025-05-17 14:11:57 INFO export written ...
		if lastExport.IsZero() && len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				lastExport = t
			}
		}
	}

	return recentLines, lastExport, exports
}
