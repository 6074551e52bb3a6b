package stats

import (
	"testing"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(subject, lessonType, level string, minutes int) model.Lesson {
	return model.Lesson{
		Subject:         subject,
		LessonType:      lessonType,
		EducationLevel:  level,
		DurationMinutes: minutes,
	}
}

func TestComputeEmpty(t *testing.T) {
	summary := Compute(nil)

	assert.Equal(t, 0, summary.Overall.TotalLessons)
	assert.Zero(t, summary.Overall.TotalHours)
	assert.Empty(t, summary.BySubject)

	// Сетка по уровням всегда полная, даже без занятий
	for _, lessonType := range []string{model.LessonTypeIndividual, model.LessonTypeGroup} {
		row := summary.ByLevel[lessonType]
		require.Len(t, row, 3)
		for _, cell := range row {
			assert.Zero(t, cell.Lessons)
			assert.Zero(t, cell.Hours)
		}
	}
}

func TestComputeExample(t *testing.T) {
	lessons := []model.Lesson{
		lesson("Math", model.LessonTypeIndividual, model.LevelElementary, 60),
		lesson("Math", model.LessonTypeGroup, model.LevelMiddle, 90),
	}

	summary := Compute(lessons)

	assert.Equal(t, 2, summary.Overall.TotalLessons)
	assert.InDelta(t, 2.5, summary.Overall.TotalHours, 1e-9)
	assert.Equal(t, 1, summary.Overall.IndividualLessons)
	assert.InDelta(t, 1.0, summary.Overall.IndividualHours, 1e-9)
	assert.Equal(t, 1, summary.Overall.GroupLessons)
	assert.InDelta(t, 1.5, summary.Overall.GroupHours, 1e-9)

	math := summary.BySubject["Math"]
	require.NotNil(t, math)
	assert.Equal(t, 2, math.TotalLessons)
	assert.InDelta(t, 2.5, math.TotalHours, 1e-9)
	assert.Equal(t, 1, math.Individual.Lessons)
	assert.Equal(t, 1, math.Group.Lessons)

	assert.Equal(t, 1, summary.ByLevel[model.LessonTypeIndividual][model.LevelElementary].Lessons)
	assert.Equal(t, 1, summary.ByLevel[model.LessonTypeGroup][model.LevelMiddle].Lessons)
	assert.Equal(t, 0, summary.ByLevel[model.LessonTypeGroup][model.LevelSecondary].Lessons)
}

func TestComputeTotalsAddUp(t *testing.T) {
	lessons := []model.Lesson{
		lesson("Math", model.LessonTypeIndividual, model.LevelElementary, 45),
		lesson("Physics", model.LessonTypeGroup, model.LevelSecondary, 90),
		lesson("Math", model.LessonTypeGroup, model.LevelMiddle, 30),
		lesson("English", model.LessonTypeIndividual, model.LevelMiddle, 60),
		lesson("English", model.LessonTypeIndividual, "kindergarten", 50),
		lesson("Chemistry", "", model.LevelMiddle, 40),
	}

	summary := Compute(lessons)

	assert.Equal(t, len(lessons), summary.Overall.TotalLessons)
	assert.Equal(t, summary.Overall.TotalLessons,
		summary.Overall.IndividualLessons+summary.Overall.GroupLessons)

	bySubjectTotal := 0
	for _, s := range summary.BySubject {
		bySubjectTotal += s.TotalLessons
	}
	assert.Equal(t, summary.Overall.TotalLessons, bySubjectTotal)
}

func TestComputeUnknownLevelExcludedFromByLevel(t *testing.T) {
	lessons := []model.Lesson{
		lesson("Math", model.LessonTypeIndividual, "kindergarten", 60),
	}

	summary := Compute(lessons)

	// Запись учтена в итогах и по предмету, но не в сетке уровней
	assert.Equal(t, 1, summary.Overall.TotalLessons)
	assert.Equal(t, 1, summary.Overall.IndividualLessons)
	assert.Equal(t, 1, summary.BySubject["Math"].TotalLessons)

	for _, row := range summary.ByLevel {
		for _, cell := range row {
			assert.Zero(t, cell.Lessons)
		}
	}
}

func TestComputeMissingTypeCountsAsGroup(t *testing.T) {
	lessons := []model.Lesson{
		lesson("Math", "", model.LevelMiddle, 60),
	}

	summary := Compute(lessons)

	assert.Equal(t, 1, summary.Overall.GroupLessons)
	assert.Equal(t, 0, summary.Overall.IndividualLessons)
	assert.Equal(t, 1, summary.BySubject["Math"].Group.Lessons)
	// Без известного типа запись не попадает в сетку уровней
	assert.Zero(t, summary.ByLevel[model.LessonTypeGroup][model.LevelMiddle].Lessons)
}

func TestComputeDeterministic(t *testing.T) {
	lessons := []model.Lesson{
		lesson("Math", model.LessonTypeIndividual, model.LevelElementary, 45),
		lesson("Physics", model.LessonTypeGroup, model.LevelSecondary, 90),
	}

	first := Compute(lessons)
	second := Compute(lessons)

	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.BySubject, second.BySubject)
	assert.Equal(t, first.ByLevel, second.ByLevel)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.33, Round2(80.0/60.0))
	assert.Equal(t, 1.67, Round2(100.0/60.0))
	assert.Equal(t, 2.5, Round2(2.5))
	assert.Equal(t, 0.83, Round2(50.0/60.0))
}
