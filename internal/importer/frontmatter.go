package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrFrontMatter marks a front matter block that is unterminated or not
// valid YAML
var ErrFrontMatter = errors.New("malformed front matter")

// FrontMatter is the optional YAML header of a lesson document. Any field
// set here wins over what the heuristics find in the body.
type FrontMatter struct {
	ID           string `yaml:"id"`
	Quarter      string `yaml:"quarter"`
	Year         string `yaml:"year"`
	LessonNumber int    `yaml:"lesson_number"`
	Title        string `yaml:"title"`
	WeekRange    struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"week_range"`
	MemoryVerse struct {
		Text      string `yaml:"text"`
		Reference string `yaml:"reference"`
	} `yaml:"memory_verse"`
}

// ParseFrontMatter splits a leading "---" delimited YAML block from doc.
// found is false when doc does not start with a delimiter line; body is then
// doc unchanged.
func ParseFrontMatter(doc string) (fm FrontMatter, body string, found bool, err error) {
	scanner := bufio.NewScanner(strings.NewReader(doc))
	scanner.Buffer(make([]byte, 0, 64*1024), len(doc)+1)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return FrontMatter{}, doc, false, nil
	}
	consumed := len(scanner.Text()) + 1

	var lines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		consumed += len(line) + 1
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return FrontMatter{}, doc, true, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if !closed {
		return FrontMatter{}, doc, true, fmt.Errorf("%w: missing closing ---", ErrFrontMatter)
	}

	// unknown keys mean the block is body text between two rules, not a header
	dec := yaml.NewDecoder(strings.NewReader(strings.Join(lines, "\n")))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil && !errors.Is(err, io.EOF) {
		return FrontMatter{}, doc, true, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	if consumed > len(doc) {
		consumed = len(doc)
	}
	return fm, doc[consumed:], true, nil
}
