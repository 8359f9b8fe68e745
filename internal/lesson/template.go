package lesson

// Weekday identifies one of the seven fixed slots of a lesson week
type Weekday string

const (
	Sabado    Weekday = "Sábado"
	Domingo   Weekday = "Domingo"
	Lunes     Weekday = "Lunes"
	Martes    Weekday = "Martes"
	Miercoles Weekday = "Miércoles"
	Jueves    Weekday = "Jueves"
	Viernes   Weekday = "Viernes"
)

// SlotCount is the number of days in every lesson week
const SlotCount = 7

// Weekdays returns the canonical Saturday-first order
func Weekdays() [SlotCount]Weekday {
	return [SlotCount]Weekday{Sabado, Domingo, Lunes, Martes, Miercoles, Jueves, Viernes}
}

// Default titles for the two slots that carry one when nothing was imported
const (
	DefaultIntroTitle  = "Introducción"
	DefaultReviewTitle = "PARA ESTUDIAR Y MEDITAR"
)

// Slot is the template entry for one weekday
type Slot struct {
	Day          Weekday
	Type         DayType
	DefaultTitle string
}

// Template is the canonical 7-day skeleton every import is merged onto.
// It is a value type; copies never share state.
type Template struct {
	slots [SlotCount]Slot
}

// DefaultTemplate returns the standard week: Sábado introduces, Viernes
// reviews, everything in between is devotional
func DefaultTemplate() Template {
	return NewTemplate(DefaultIntroTitle, DefaultReviewTitle)
}

// NewTemplate builds the standard week with custom default titles for the
// introduction and review slots
func NewTemplate(introTitle, reviewTitle string) Template {
	var t Template
	for i, wd := range Weekdays() {
		slot := Slot{Day: wd, Type: Devotional}
		switch i {
		case 0:
			slot.Type = Introduction
			slot.DefaultTitle = introTitle
		case SlotCount - 1:
			slot.Type = Review
			slot.DefaultTitle = reviewTitle
		}
		t.slots[i] = slot
	}
	return t
}

// Slot returns the template entry at position i
func (t Template) Slot(i int) Slot {
	return t.slots[i]
}

// Slots returns a copy of all entries in canonical order
func (t Template) Slots() [SlotCount]Slot {
	return t.slots
}

// Index returns the position of a weekday, or -1
func (t Template) Index(day Weekday) int {
	for i, s := range t.slots {
		if s.Day == day {
			return i
		}
	}
	return -1
}

// Stub returns the empty Day for slot i
func (t Template) Stub(i int) Day {
	s := t.slots[i]
	return Day{
		Day:      string(s.Day),
		Type:     s.Type,
		Title:    s.DefaultTitle,
		Sections: []Section{},
	}
}

// EmptyWeek returns a week holding only template stubs
func (t Template) EmptyWeek() WeekSchema {
	days := make([]Day, SlotCount)
	for i := range days {
		days[i] = t.Stub(i)
	}
	return WeekSchema{LessonNumber: 1, Days: days}
}
