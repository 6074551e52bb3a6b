package model

// Типы занятий
const (
	LessonTypeIndividual = "individual"
	LessonTypeGroup      = "group"
)

// Уровни образования
const (
	LevelElementary = "elementary"
	LevelMiddle     = "middle"
	LevelSecondary  = "secondary"
)

// Lesson одно проведённое занятие. Записи неизменяемы после загрузки,
// принадлежат создавшему их учителю.
type Lesson struct {
	ID              int64  `json:"id"`
	Subject         string `json:"subject"`
	LessonType      string `json:"lesson_type"`
	EducationLevel  string `json:"education_level"`
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date"` // YYYY-MM-DD, как отдаёт API
}

// KnownLevel проверяет что уровень образования один из трёх известных
func KnownLevel(level string) bool {
	switch level {
	case LevelElementary, LevelMiddle, LevelSecondary:
		return true
	}
	return false
}
