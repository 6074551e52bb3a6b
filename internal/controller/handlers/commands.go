package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From
	session, err := h.authService.Session(ctx, user.ID)
	if err != nil && !errors.Is(err, service.ErrNotAuthorized) {
		h.logger.Error("Failed to load session on start", zap.Error(err))
	}

	if session != nil {
		text := fmt.Sprintf(
			"👋 Привет, %s!\n\n"+
				"Вы вошли как <b>%s</b>.\n\n"+
				"Доступные команды:\n"+
				"/dashboard - Статистика занятий\n"+
				"/users - Пользователи платформы\n"+
				"/payments - Платежи студентов\n"+
				"/pricing - Прайс по предметам\n"+
				"/logout - Выйти\n"+
				"/help - Справка",
			user.FirstName, session.Username,
		)
		h.sendHTML(ctx, b, update.Message.Chat.ID, text, nil)
		return
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это админ-бот учебной платформы: статистика занятий, "+
			"пользователи, платежи и прайс.\n\n"+
			"Для начала работы войдите в аккаунт платформы:\n"+
			"/login - Войти\n"+
			"/help - Справка",
		user.FirstName,
	)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/login - Войти в аккаунт платформы\n" +
		"/logout - Выйти из аккаунта\n\n" +
		"Экраны:\n" +
		"/dashboard - Статистика занятий за месяц\n" +
		"/users - Пользователи платформы\n" +
		"/payments - Платежи студентов\n" +
		"/pricing - Прайс по предметам\n\n" +
		"/cancel - Отменить текущую операцию\n" +
		"/help - Показать эту справку\n\n" +
		"Создание и изменение данных доступно администраторам."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleLogin обрабатывает команду /login - вход в аккаунт платформы
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	session, err := h.authService.Session(ctx, telegramID)
	if err != nil && !errors.Is(err, service.ErrNotAuthorized) {
		h.logger.Error("Failed to load session on login", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if session != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("Вы уже вошли как %s.\n\nСначала выйдите: /logout", session.Username))
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginUsername)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 Вход в аккаунт платформы\n\n"+
			"Введите логин:\n\n"+
			"Отмена: /cancel")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if err := h.authService.Logout(ctx, telegramID); err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			h.sendMessage(ctx, b, update.Message.Chat.ID, "Вы не были авторизованы.")
			return
		}
		h.logger.Error("Failed to logout", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось выйти. Попробуйте позже.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.screens.Reset(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Вы вышли из аккаунта.\n\nВойти снова: /login")
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleDashboard обрабатывает команду /dashboard
func (h *Handlers) HandleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.renderDashboard(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleUsers обрабатывает команду /users
func (h *Handlers) HandleUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.renderUsers(ctx, b, update.Message.Chat.ID, update.Message.From.ID, true)
}

// HandlePayments обрабатывает команду /payments
func (h *Handlers) HandlePayments(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.renderPayments(ctx, b, update.Message.Chat.ID, update.Message.From.ID, true)
}

// HandlePricing обрабатывает команду /pricing
func (h *Handlers) HandlePricing(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.renderPricing(ctx, b, update.Message.Chat.ID, update.Message.From.ID, true)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Info("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateLoginUsername:
		h.handleLoginUsernameStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)

	case state.StateSearchUsers:
		h.handleSearchUsers(ctx, b, update)
	case state.StateSearchPricing:
		h.handleSearchPricing(ctx, b, update)
	case state.StateSearchPaymentsStudent:
		h.handleSearchPaymentsStudent(ctx, b, update)

	case state.StateCreateUserUsername:
		h.handleCreateUserUsernameStep(ctx, b, update)
	case state.StateCreateUserEmail:
		h.handleCreateUserEmailStep(ctx, b, update)
	case state.StateCreateUserPassword:
		h.handleCreateUserPasswordStep(ctx, b, update)
	case state.StateCreateUserFirstName:
		h.handleCreateUserFirstNameStep(ctx, b, update)
	case state.StateCreateUserLastName:
		h.handleCreateUserLastNameStep(ctx, b, update)

	case state.StateEditUserEmail:
		h.handleEditUserField(ctx, b, update, applyEmail)
	case state.StateEditUserPhone:
		h.handleEditUserField(ctx, b, update, applyPhone)
	case state.StateEditUserFirstName:
		h.handleEditUserField(ctx, b, update, applyFirstName)
	case state.StateEditUserLastName:
		h.handleEditUserField(ctx, b, update, applyLastName)

	case state.StateResetPassword:
		h.handleResetPassword(ctx, b, update)

	case state.StateCreatePaymentStudent:
		h.handleCreatePaymentStudentStep(ctx, b, update)
	case state.StateCreatePaymentAmount:
		h.handleCreatePaymentAmountStep(ctx, b, update)
	case state.StateCreatePaymentDate:
		h.handleCreatePaymentDateStep(ctx, b, update)

	case state.StateCreatePricingIndividual:
		h.handleCreatePricingIndividualStep(ctx, b, update)
	case state.StateCreatePricingGroup:
		h.handleCreatePricingGroupStep(ctx, b, update)
	case state.StateEditPricingIndividual:
		h.handleEditPricingIndividualStep(ctx, b, update)
	case state.StateEditPricingGroup:
		h.handleEditPricingGroupStep(ctx, b, update)

	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
