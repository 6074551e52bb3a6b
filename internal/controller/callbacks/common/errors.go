package common

import (
	"errors"

	"github.com/Freeeeeet/institute_admin_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNotAdmin      = errors.New("user is not an admin")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		return "❌ Вы не авторизованы. Используйте /login"
	case errors.Is(err, ErrNotAdmin):
		return "❌ Эта функция доступна только администраторам"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
