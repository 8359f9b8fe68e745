package lesson

import (
	"encoding/json"
	"fmt"
)

// SectionType names a typed content block inside a day
type SectionType string

const (
	Reading             SectionType = "reading"
	MemoryVerseBlock    SectionType = "memory_verse"
	Paragraph           SectionType = "paragraph"
	BibleQuestion       SectionType = "bible_question"
	Quote               SectionType = "quote"
	DiscussionQuestions SectionType = "discussion_questions"
	Reflection          SectionType = "reflection"
)

// Section is a content block filled in by editing tools after import.
// Which fields are meaningful depends on Type.
type Section struct {
	Type       SectionType `json:"type"`
	Label      string      `json:"label,omitempty"`
	Content    string      `json:"content,omitempty"`
	Reference  string      `json:"reference,omitempty"`
	References References  `json:"references,omitempty"`
	Question   string      `json:"question,omitempty"`
	Author     string      `json:"author,omitempty"`
	Source     string      `json:"source,omitempty"`
	Questions  []string    `json:"questions,omitempty"`
}

// References is a list of bible references. Reflection blocks store a single
// string, reading blocks a list; both decode into References.
type References []string

// UnmarshalJSON accepts either a JSON string or an array of strings
func (r *References) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("references must be a string or a list of strings: %w", err)
	}
	if single == "" {
		*r = nil
		return nil
	}
	*r = References{single}
	return nil
}
