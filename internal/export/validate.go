package export

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

const dateLayout = "2006-01-02"

// Validate reports what a week still lacks before it can be published.
// The result is nil or validation.Errors keyed by JSON field name.
func Validate(week *lesson.WeekSchema) error {
	return validation.ValidateStruct(week,
		validation.Field(&week.Title, validation.Required),
		validation.Field(&week.WeekRange, validation.By(validateRange)),
		validation.Field(&week.MemoryVerse, validation.By(validateVerse)),
		validation.Field(&week.Days,
			validation.Required,
			validation.Length(lesson.SlotCount, lesson.SlotCount),
			validation.Each(validation.By(validateDay)),
		),
	)
}

func validateRange(value any) error {
	r, _ := value.(lesson.WeekRange)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Start, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.End, validation.Required, validation.Date(dateLayout)),
	)
}

func validateVerse(value any) error {
	v, _ := value.(lesson.MemoryVerse)
	return validation.ValidateStruct(&v,
		validation.Field(&v.Text, validation.Required),
		validation.Field(&v.Reference, validation.Required),
	)
}

func validateDay(value any) error {
	d, _ := value.(lesson.Day)
	return validation.ValidateStruct(&d,
		validation.Field(&d.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&d.Title, validation.Required),
	)
}
