package model

import (
	"time"

	"github.com/google/uuid"
)

// Session авторизация Telegram-пользователя на платформе.
// Токен выдаётся API при логине и хранится в нашей базе,
// чтобы не просить пароль после каждого рестарта бота.
type Session struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired проверяет истёк ли срок действия сессии
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
