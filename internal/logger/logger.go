package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// ParseLevel maps a config level name to a log level, defaulting to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewFileLogger creates a logger that appends to a file and copies every
// entry to the extra writers
func NewFileLogger(path string, level log.Level, also ...io.Writer) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(level, append([]io.Writer{f}, also...)...), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ImportStarted logs the start of an import
func (l *Logger) ImportStarted(source string, bytes int) {
	l.Info("import started",
		"source", source,
		"bytes", bytes)
}

// SectionsSegmented logs how many heading sections were found
func (l *Logger) SectionsSegmented(source string, count int) {
	l.Debug("sections segmented",
		"source", source,
		"sections", count)
}

// DaysClassified logs the outcome of day assignment
func (l *Logger) DaysClassified(source string, matched, dropped, missing int, strategy string) {
	l.Info("days classified",
		"source", source,
		"matched", matched,
		"dropped", dropped,
		"missing", missing,
		"strategy", strategy)
}

// SectionsDropped warns about sections that had no weekday slot
func (l *Logger) SectionsDropped(source string, titles []string) {
	l.Warn("sections dropped",
		"source", source,
		"count", len(titles),
		"titles", titles)
}

// SlotsMissing warns about weekdays left without content
func (l *Logger) SlotsMissing(source string, days []string) {
	l.Warn("weekday slots empty",
		"source", source,
		"days", days)
}

// MetadataMissing warns when a heuristic found nothing
func (l *Logger) MetadataMissing(source, field string) {
	l.Warn("metadata not found",
		"source", source,
		"field", field)
}

// FrontMatterIgnored warns when a leading "---" block is imported as body text
func (l *Logger) FrontMatterIgnored(source string, err error) {
	l.Warn("front matter ignored",
		"source", source,
		"error", err)
}

// ExportWritten logs a written lesson file
func (l *Logger) ExportWritten(path string, lessonNumber int, daysWithContent int) {
	l.Info("export written",
		"path", path,
		"lesson", lessonNumber,
		"days_with_content", daysWithContent)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(outputDir, dayMatching string, interval time.Duration) {
	l.Debug("config loaded",
		"output_dir", outputDir,
		"day_matching", dayMatching,
		"interval", interval)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
