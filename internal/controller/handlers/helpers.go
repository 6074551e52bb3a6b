package handlers

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/dashboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/payments"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/pricing"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/users"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет HTML-сообщение с опциональной inline-клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// ========================
// Отрисовка экранов новым сообщением
// ========================
// Команды и шаги диалогов не привязаны к callback, поэтому рисуют
// экран свежим сообщением, а не правкой существующего.

func (h *Handlers) renderDashboard(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	screen := h.screens.For(telegramID).Dashboard
	dashboard.EnsurePeriod(screen)
	if !screen.Reload(ctx) {
		// Ответ устарел: актуальный рендер сделает более поздний вызов
		return
	}
	text, kb := dashboard.View(screen.Snapshot())
	h.sendHTML(ctx, b, chatID, text, kb)
}

func (h *Handlers) renderUsers(ctx context.Context, b *bot.Bot, chatID, telegramID int64, reload bool) {
	screen := h.screens.For(telegramID).Users
	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(ctx) {
			return
		}
	}
	text, kb := users.View(screen.Snapshot())
	h.sendHTML(ctx, b, chatID, text, kb)
}

func (h *Handlers) renderPayments(ctx context.Context, b *bot.Bot, chatID, telegramID int64, reload bool) {
	screen := h.screens.For(telegramID).Payments
	payments.EnsurePeriod(screen)
	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(ctx) {
			return
		}
	}
	text, kb := payments.View(screen.Snapshot())
	h.sendHTML(ctx, b, chatID, text, kb)
}

func (h *Handlers) renderPricing(ctx context.Context, b *bot.Bot, chatID, telegramID int64, reload bool) {
	screen := h.screens.For(telegramID).Pricing
	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(ctx) {
			return
		}
	}
	text, kb := pricing.View(screen.Snapshot())
	h.sendHTML(ctx, b, chatID, text, kb)
}

// findUser ищет пользователя платформы среди загруженных записей экрана
func (h *Handlers) findUser(telegramID, userID int64) (*model.User, bool) {
	snap := h.screens.For(telegramID).Users.Snapshot()
	for i := range snap.Items {
		if snap.Items[i].ID == userID {
			return &snap.Items[i], true
		}
	}
	return nil, false
}

// findPricing ищет позицию прайса среди загруженных записей экрана
func (h *Handlers) findPricing(telegramID, pricingID int64) (*model.Pricing, bool) {
	snap := h.screens.For(telegramID).Pricing.Snapshot()
	for i := range snap.Items {
		if snap.Items[i].ID == pricingID {
			return &snap.Items[i], true
		}
	}
	return nil, false
}
