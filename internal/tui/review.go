package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/lessonbridge/internal/lesson"
	"github.com/gerunddev/lessonbridge/internal/styles"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.Border))
)

// RenderMsg carries a rendered day preview
type RenderMsg struct {
	Index   int
	Content string
}

// ReviewModel browses the seven days of an imported week
type ReviewModel struct {
	table    table.Model
	viewport viewport.Model
	week     *lesson.WeekSchema
	source   string
	notes    []string
	showing  bool
	selected int
	width    int
	height   int
}

// InitReviewModel creates a day browser for week. notes are shown under the
// table, typically import warnings.
func InitReviewModel(week *lesson.WeekSchema, source string, notes []string) ReviewModel {
	columns := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Type", Width: 14},
		{Title: "Title", Width: 48},
		{Title: "Chars", Width: 8},
	}

	rows := make([]table.Row, 0, len(week.Days))
	for _, d := range week.Days {
		size := "-"
		if n := utf8.RuneCountInString(d.RawMarkdown); n > 0 {
			size = fmt.Sprintf("%d", n)
		}
		title := d.Title
		if title == "" {
			title = "(untitled)"
		}
		rows = append(rows, table.Row{d.Day, string(d.Type), title, size})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(lesson.SlotCount+3),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return ReviewModel{
		table:    t,
		viewport: vp,
		week:     week,
		source:   source,
		notes:    notes,
		width:    100,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8

	case tea.KeyMsg:
		if m.showing {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showing = false
				return m, nil
			case "left", "h":
				return m.open(m.selected - 1)
			case "right", "l":
				return m.open(m.selected + 1)
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			return m.open(m.table.Cursor())
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case RenderMsg:
		if m.showing && msg.Index == m.selected {
			m.viewport.SetContent(msg.Content)
			m.viewport.GotoTop()
		}
		return m, nil
	}

	return m, nil
}

func (m ReviewModel) open(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.week.Days) {
		return m, nil
	}
	m.showing = true
	m.selected = i
	m.table.SetCursor(i)
	m.viewport.SetContent(m.week.Days[i].RawMarkdown)
	m.viewport.GotoTop()

	day := m.week.Days[i]
	width := m.viewport.Width - 4
	return m, func() tea.Msg {
		return RenderMsg{Index: i, Content: RenderDay(day, width)}
	}
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Lesson %d: %s", m.week.LessonNumber, m.week.Title)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.source))
	b.WriteString("\n\n")

	if m.showing {
		day := m.week.Days[m.selected]
		b.WriteString(styles.HighlightStyle.Render(day.Day))
		b.WriteString(" ")
		b.WriteString(styles.DayType(day.Type))
		if day.Date != "" {
			b.WriteString(labelStyle.Render("  " + day.Date))
		}
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • ←/h prev day • →/l next day • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	if v := m.week.MemoryVerse; v.Text != "" {
		b.WriteString(labelStyle.Render("Memory verse: "))
		b.WriteString(fmt.Sprintf("%q (%s)", v.Text, v.Reference))
		b.WriteString("\n\n")
	}

	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")

	for _, note := range m.notes {
		b.WriteString(styles.Warning(note))
		b.WriteString("\n")
	}
	if len(m.notes) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter view day • q quit"))
	b.WriteString("\n")

	return b.String()
}

// RenderDay renders a day's markdown for the terminal, falling back to the
// raw text when glamour cannot render it
func RenderDay(day lesson.Day, width int) string {
	if strings.TrimSpace(day.RawMarkdown) == "" {
		return styles.DimStyle.Render("(no content imported for this day)")
	}

	doc := day.RawMarkdown
	if day.Title != "" {
		doc = "## " + day.Title + "\n\n" + doc
	}

	if width < 20 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return doc
	}

	rendered, err := renderer.Render(doc)
	if err != nil {
		return doc
	}

	return rendered
}
