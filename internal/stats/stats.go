package stats

import (
	"math"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// Агрегация статистики занятий: один проход по списку, никаких запросов.
// Аккумуляторы часов держатся в полной точности; округление до двух знаков
// применяется только при выводе (Round2), независимо на каждом уровне.
// Из-за этого округлённый итог по предмету может на последний знак
// расходиться с суммой его округлённых под-корзин — это принятое поведение.

// TypeStats счётчики занятий и часов одного типа
type TypeStats struct {
	Lessons int
	Hours   float64
}

// Overall сводные счётчики по всем занятиям
type Overall struct {
	TotalLessons      int
	TotalHours        float64
	IndividualLessons int
	IndividualHours   float64
	GroupLessons      int
	GroupHours        float64
}

// SubjectStats разбивка по одному предмету
type SubjectStats struct {
	TotalLessons int
	TotalHours   float64
	Individual   TypeStats
	Group        TypeStats
}

// Summary полная сводка: итоги, по предметам, по уровням образования
type Summary struct {
	Overall   Overall
	BySubject map[string]*SubjectStats
	ByLevel   map[string]map[string]*TypeStats // тип занятия -> уровень -> счётчики
}

// Compute строит сводку за один проход по списку занятий.
// Пустой вход даёт нулевую сводку, ошибок не бывает.
//
// Занятие с неизвестным education_level учитывается в Overall и BySubject,
// но не попадает в ByLevel. Занятие без известного lesson_type считается
// групповым в итогах, но в сетку ByLevel тоже не попадает.
func Compute(lessons []model.Lesson) *Summary {
	summary := &Summary{
		BySubject: make(map[string]*SubjectStats),
		ByLevel: map[string]map[string]*TypeStats{
			model.LessonTypeIndividual: newLevelRow(),
			model.LessonTypeGroup:      newLevelRow(),
		},
	}

	for _, lesson := range lessons {
		hours := float64(lesson.DurationMinutes) / 60

		summary.Overall.TotalLessons++
		summary.Overall.TotalHours += hours

		individual := lesson.LessonType == model.LessonTypeIndividual
		if individual {
			summary.Overall.IndividualLessons++
			summary.Overall.IndividualHours += hours
		} else {
			summary.Overall.GroupLessons++
			summary.Overall.GroupHours += hours
		}

		// В сетку по уровням попадают только известный тип и известный уровень
		if row, ok := summary.ByLevel[lesson.LessonType]; ok && model.KnownLevel(lesson.EducationLevel) {
			cell := row[lesson.EducationLevel]
			cell.Lessons++
			cell.Hours += hours
		}

		subject, ok := summary.BySubject[lesson.Subject]
		if !ok {
			subject = &SubjectStats{}
			summary.BySubject[lesson.Subject] = subject
		}
		subject.TotalLessons++
		subject.TotalHours += hours
		if individual {
			subject.Individual.Lessons++
			subject.Individual.Hours += hours
		} else {
			subject.Group.Lessons++
			subject.Group.Hours += hours
		}
	}

	return summary
}

func newLevelRow() map[string]*TypeStats {
	return map[string]*TypeStats{
		model.LevelElementary: {},
		model.LevelMiddle:     {},
		model.LevelSecondary:  {},
	}
}

// Round2 округляет значение для показа до двух знаков
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
