// Package export writes lesson weeks as JSON files and reads them back,
// checking them against the lesson schema.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

//go:embed schema.json
var schemaJSON string

// ErrSchema marks a lesson file that does not match the lesson schema
var ErrSchema = errors.New("lesson file does not match schema")

var lessonSchema = jsonschema.MustCompileString("lesson.schema.json", schemaJSON)

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", " ", "-")

// FileName returns the export name for a week, lesson-{n}-week-{id}.json
func FileName(week *lesson.WeekSchema) string {
	id := strings.TrimSpace(week.ID)
	if id == "" {
		id = "undated"
	}
	return fmt.Sprintf("lesson-%d-week-%s.json", week.LessonNumber, fileNameReplacer.Replace(id))
}

// Marshal encodes a week as two-space indented JSON with a trailing newline
func Marshal(week *lesson.WeekSchema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(week); err != nil {
		return nil, fmt.Errorf("failed to marshal lesson: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores a week at path, creating parent directories
func Write(path string, week *lesson.WeekSchema) error {
	data, err := Marshal(week)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lesson file: %w", err)
	}

	return nil
}

// Read loads a lesson file. Files that fail the schema check return an
// error wrapping ErrSchema.
func Read(path string) (*lesson.WeekSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson file: %w", err)
	}
	return Decode(data)
}

// Decode checks data against the lesson schema and decodes it
func Decode(data []byte) (*lesson.WeekSchema, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := lessonSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	var week lesson.WeekSchema
	if err := json.Unmarshal(data, &week); err != nil {
		return nil, fmt.Errorf("failed to decode lesson: %w", err)
	}
	return &week, nil
}

// Issue is one leaf schema violation
type Issue struct {
	Location string
	Message  string
}

// Issues flattens a schema error into its leaf violations
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Message: err.Error()}}
	}

	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return issues
}
