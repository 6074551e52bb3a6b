package formatting

import "github.com/Freeeeeet/institute_admin_bot/internal/model"

// RoleLabel возвращает отображаемое название роли
func RoleLabel(role string) string {
	switch role {
	case model.RoleAdmin:
		return "👑 Администратор"
	case model.RoleTeacher:
		return "🎓 Учитель"
	default:
		return role
	}
}

// StatusLabel возвращает отображаемое название статуса пользователя
func StatusLabel(status string) string {
	switch status {
	case model.StatusActive:
		return "✅ Активен"
	case model.StatusInactive:
		return "⏸ Неактивен"
	case model.StatusSuspended:
		return "🚫 Заблокирован"
	default:
		return status
	}
}

// LessonTypeLabel возвращает отображаемое название типа занятия
func LessonTypeLabel(lessonType string) string {
	switch lessonType {
	case model.LessonTypeIndividual:
		return "Индивидуальные"
	case model.LessonTypeGroup:
		return "Групповые"
	default:
		return lessonType
	}
}

// LevelLabel возвращает отображаемое название уровня образования
func LevelLabel(level string) string {
	switch level {
	case model.LevelElementary:
		return "Начальная школа"
	case model.LevelMiddle:
		return "Средняя школа"
	case model.LevelSecondary:
		return "Старшая школа"
	default:
		return level
	}
}
