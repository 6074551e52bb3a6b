package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Common Navigation Handlers
// ========================

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}
	telegramID := callback.From.ID

	// Очищаем состояние пользователя
	h.StateManager.ClearState(telegramID)

	// Удаляем старое сообщение
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	session, err := h.AuthService.Session(ctx, telegramID)
	if err != nil && !errors.Is(err, service.ErrNotAuthorized) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "❌ Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	var menuText string
	if session == nil {
		menuText = "📋 Главное меню\n\n" +
			"Вы не авторизованы на платформе.\n" +
			"/login - Войти\n" +
			"/help - Справка"
	} else {
		menuText = "📋 Главное меню\n\n" +
			"Вы вошли как " + session.Username + "\n\n" +
			"/dashboard - Статистика занятий\n" +
			"/users - Пользователи\n" +
			"/payments - Платежи\n" +
			"/pricing - Прайс\n" +
			"/logout - Выйти"
	}

	params := &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   menuText,
	}
	if session != nil {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📊 Открыть дашборд", CallbackData: "open_dashboard"}},
			},
		}
	}
	b.SendMessage(ctx, params)

	AnswerCallback(ctx, b, callback.ID, "Возврат в главное меню")
}

// HandleDashboardShortcut открывает дашборд из любого экрана
func HandleDashboardShortcut(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	update := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: msg.Chat.ID},
			From: &callback.From,
		},
	}

	if h.HandleDashboard != nil {
		h.HandleDashboard(ctx, b, update)
	}
	AnswerCallback(ctx, b, callback.ID, "")
}
