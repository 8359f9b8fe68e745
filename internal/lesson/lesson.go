package lesson

import "strings"

// ParsedSection is a heading plus the body text that follows it, as found by
// the segmenter. It is transient and never serialized into a lesson record.
type ParsedSection struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Level         int    `json:"level"`
	OriginalIndex int    `json:"originalIndex"`
	Line          int    `json:"line"`
}

// DayType classifies a day within the lesson week
type DayType string

const (
	Introduction DayType = "introduction"
	Devotional   DayType = "devotional"
	Review       DayType = "review"
)

// MemoryVerse is the verse the week asks readers to memorize
type MemoryVerse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// WeekRange holds the first and last date of the lesson week
type WeekRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Day is one weekday slot of a lesson week
type Day struct {
	Day         string    `json:"day"`
	Date        string    `json:"date"`
	Type        DayType   `json:"type"`
	Title       string    `json:"title"`
	Sections    []Section `json:"sections"`
	RawMarkdown string    `json:"rawMarkdown"`
}

// WeekSchema is the full lesson record produced by an import
type WeekSchema struct {
	ID           string      `json:"id"`
	Quarter      string      `json:"quarter"`
	Year         string      `json:"year"`
	LessonNumber int         `json:"lesson_number"`
	Title        string      `json:"title"`
	WeekRange    WeekRange   `json:"week_range"`
	MemoryVerse  MemoryVerse `json:"memory_verse"`
	Days         []Day       `json:"days"`
}

// DaysWithContent counts days whose raw markdown is not blank
func (w *WeekSchema) DaysWithContent() int {
	n := 0
	for _, d := range w.Days {
		if strings.TrimSpace(d.RawMarkdown) != "" {
			n++
		}
	}
	return n
}
