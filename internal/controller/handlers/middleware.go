package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession проверяет что пользователь залогинен на платформе.
// Возвращает сессию и true если OK, nil и false если нет
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.authService.Session(ctx, telegramID)

	if errors.Is(err, service.ErrNotAuthorized) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Вы не авторизованы. Используйте /login")
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	return session, true
}

// requireAdmin проверяет что залогиненный пользователь является администратором
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if session.Role != model.RoleAdmin {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Эта операция доступна только администраторам.")
		return nil, false
	}

	return session, true
}
