// Package analyze breaks a lesson document into top-level markdown blocks and
// flags the ones that look like known lesson section types. It backs the
// `analyze` command, which helps decide where a document should be split.
package analyze

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gerunddev/lessonbridge/internal/heuristics"
	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// Kind is the coarse type of a block
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindBold      Kind = "bold"
	KindItalic    Kind = "italic"
	KindList      Kind = "list"
	KindQuote     Kind = "quote"
	KindUnknown   Kind = "unknown"
)

// Flags are the per-block hints shown next to each block
type Flags struct {
	IsBold        bool `json:"isBold,omitempty"`
	IsItalic      bool `json:"isItalic,omitempty"`
	IsDate        bool `json:"isDate,omitempty"`
	IsMemoryVerse bool `json:"isMemoryVerse,omitempty"`
	IsQuestion    bool `json:"isQuestion,omitempty"`
	IsQuote       bool `json:"isQuote,omitempty"`
}

// Block is one top-level markdown block
type Block struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Kind    Kind   `json:"type"`
	Level   int    `json:"level,omitempty"`
	Index   int    `json:"originalIndex"`
	Line    int    `json:"line"`
	Flags   Flags  `json:"metadata"`
}

// Heading is a heading found anywhere at the top level of the document
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"position"`
}

// Candidate marks a block that probably holds a given section type
type Candidate struct {
	Type       lesson.SectionType `json:"type"`
	BlockID    string             `json:"blockId"`
	Confidence float64            `json:"confidence"`
}

// SplitMarker is a proposed day boundary
type SplitMarker struct {
	Line    int    `json:"position"`
	Content string `json:"content"`
}

// Structure is the result of Analyze
type Structure struct {
	Blocks     []Block     `json:"blocks"`
	Headings   []Heading   `json:"headings"`
	Candidates []Candidate `json:"potentialSections"`
}

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+?)\*`)
	memoryPattern = regexp.MustCompile(`(?i)memorizar|memory verse`)
)

// Analyze parses markdown and classifies its top-level blocks
func Analyze(markdown string) Structure {
	src := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	st := Structure{
		Blocks:     []Block{},
		Headings:   []Heading{},
		Candidates: []Candidate{},
	}

	lastLine := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		content := strings.TrimSpace(blockText(n, src))
		line := lastLine
		if start, ok := firstOffset(n); ok {
			line = bytes.Count(src[:start], []byte("\n"))
			lastLine = line
		}

		b := Block{
			ID:      fmt.Sprintf("block-%d", len(st.Blocks)),
			Content: content,
			Kind:    kindOf(n, content),
			Index:   len(st.Blocks),
			Line:    line,
			Flags:   flagsFor(content),
		}
		if h, ok := n.(*ast.Heading); ok {
			b.Level = h.Level
			st.Headings = append(st.Headings, Heading{Level: h.Level, Text: content, Line: line})
		}
		if content == "" && b.Kind != KindHeading {
			continue
		}
		if _, ok := n.(*ast.Blockquote); ok {
			b.Flags.IsQuote = true
		}

		st.Blocks = append(st.Blocks, b)
		st.Candidates = append(st.Candidates, candidatesFor(b)...)
	}

	return st
}

// AutoSplit proposes a split at every level-3 heading, the usual start of a
// day in lesson documents
func (s Structure) AutoSplit() []SplitMarker {
	markers := []SplitMarker{}
	for _, h := range s.Headings {
		if h.Level == 3 {
			markers = append(markers, SplitMarker{Line: h.Line, Content: h.Text})
		}
	}
	return markers
}

// LessonHeading returns the first level-2 heading, which names the lesson
func (s Structure) LessonHeading() (Heading, bool) {
	for _, h := range s.Headings {
		if h.Level == 2 {
			return h, true
		}
	}
	return Heading{}, false
}

func kindOf(n ast.Node, content string) Kind {
	switch n.(type) {
	case *ast.Heading:
		return KindHeading
	case *ast.Blockquote:
		return KindQuote
	case *ast.List:
		return KindList
	case *ast.Paragraph, *ast.TextBlock:
		switch {
		case boldPattern.MatchString(content):
			return KindBold
		case italicPattern.MatchString(content):
			return KindItalic
		}
		return KindParagraph
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return KindParagraph
	}
	return KindUnknown
}

func flagsFor(content string) Flags {
	_, isDate := heuristics.Date(content)
	return Flags{
		IsBold:        boldPattern.MatchString(content),
		IsItalic:      italicPattern.MatchString(boldPattern.ReplaceAllString(content, "$1")),
		IsDate:        isDate,
		IsMemoryVerse: memoryPattern.MatchString(content),
		IsQuestion:    strings.Contains(content, "?") && utf8.RuneCountInString(content) < 300,
		IsQuote:       strings.ContainsAny(content, "\"“”«»"),
	}
}

func candidatesFor(b Block) []Candidate {
	lower := strings.ToLower(b.Content)
	var out []Candidate
	add := func(t lesson.SectionType, confidence float64) {
		out = append(out, Candidate{Type: t, BlockID: b.ID, Confidence: confidence})
	}

	if strings.Contains(lower, "memorizar") || strings.Contains(lower, "memory verse") {
		add(lesson.MemoryVerseBlock, 0.9)
	}
	if strings.Contains(lower, "lee para") || strings.Contains(lower, "read for") {
		add(lesson.Reading, 0.8)
	}
	if b.Kind == KindQuote || strings.Contains(lower, "elena") || strings.Contains(lower, "white") {
		add(lesson.Quote, 0.7)
	}
	if strings.Contains(lower, "?") && utf8.RuneCountInString(b.Content) < 200 {
		add(lesson.BibleQuestion, 0.6)
	}
	return out
}

// blockText concatenates the source lines of n and every block beneath it
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
			if v := seg.Value(src); len(v) > 0 && v[len(v)-1] != '\n' {
				buf.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func firstOffset(n ast.Node) (int, bool) {
	start, found := 0, false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if lines := c.Lines(); lines.Len() > 0 {
			start, found = lines.At(0).Start, true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return start, found
}
