package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Вход в аккаунт платформы
// ========================

// handleLoginUsernameStep обрабатывает ввод логина
func (h *Handlers) handleLoginUsernameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	username := strings.TrimSpace(update.Message.Text)

	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Логин должен быть от %d до %d символов.\n\nПопробуйте еще раз или /cancel",
				UsernameMinLength, UsernameMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, "login_username", username)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Введите пароль:")
}

// handleLoginPasswordStep обрабатывает ввод пароля и выполняет вход
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	password := update.Message.Text

	// Сообщение с паролем удаляем из чата
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})

	username, ok := h.stateManager.GetString(telegramID, "login_username")
	if !ok {
		h.logger.Error("Missing login username in state", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново: /login")
		return
	}

	session, err := h.authService.Login(ctx, telegramID, username, password)
	if err != nil {
		h.logger.Warn("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
			zap.Error(err))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ "+platform.Normalize(err, "Не удалось войти. Проверьте логин и пароль")+"\n\nПопробовать снова: /login")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.screens.Reset(telegramID)

	h.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", session.Username),
		zap.String("role", session.Role))

	h.sendHTML(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Вы вошли как <b>%s</b>.\n\n"+
			"/dashboard - Статистика занятий\n"+
			"/users - Пользователи\n"+
			"/payments - Платежи\n"+
			"/pricing - Прайс", session.Username), nil)
}

// ========================
// Поиск по экранам
// ========================

// handleSearchUsers применяет строку поиска к списку пользователей
func (h *Handlers) handleSearchUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	query := strings.TrimSpace(update.Message.Text)

	h.stateManager.ClearState(telegramID)
	h.screens.For(telegramID).Users.UpdateFilters(func(f *model.Filters) { f.SetSearch(query) })
	h.renderUsers(ctx, b, update.Message.Chat.ID, telegramID, true)
}

// handleSearchPricing применяет строку поиска к прайсу
func (h *Handlers) handleSearchPricing(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	query := strings.TrimSpace(update.Message.Text)

	h.stateManager.ClearState(telegramID)
	h.screens.For(telegramID).Pricing.UpdateFilters(func(f *model.Filters) { f.SetSearch(query) })
	h.renderPricing(ctx, b, update.Message.Chat.ID, telegramID, false)
}

// handleSearchPaymentsStudent показывает историю платежей студента за всё время
func (h *Handlers) handleSearchPaymentsStudent(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	query := strings.TrimSpace(update.Message.Text)
	if query == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Введите имя студента или /cancel")
		return
	}

	h.stateManager.ClearState(telegramID)
	// История студента за всё время: период сбрасывается
	h.screens.For(telegramID).Payments.UpdateFilters(func(f *model.Filters) {
		f.SetMonth(0)
		f.SetYear(0)
		f.SetSearch(query)
	})
	h.renderPayments(ctx, b, update.Message.Chat.ID, telegramID, true)
}

// ========================
// Создание пользователя платформы
// ========================

// handleCreateUserUsernameStep обрабатывает ввод логина нового пользователя
func (h *Handlers) handleCreateUserUsernameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	username := strings.TrimSpace(update.Message.Text)

	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Логин должен быть от %d до %d символов.\n\nПопробуйте еще раз или /cancel",
				UsernameMinLength, UsernameMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, "username", username)
	h.stateManager.SetState(telegramID, state.StateCreateUserEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 2 из 5. Введите email:")
}

// handleCreateUserEmailStep обрабатывает ввод email нового пользователя
func (h *Handlers) handleCreateUserEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if !strings.Contains(email, "@") {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Неверный формат email.\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "email", email)
	h.stateManager.SetState(telegramID, state.StateCreateUserPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("Шаг 3 из 5. Введите пароль (минимум %d символов):", PasswordMinLength))
}

// handleCreateUserPasswordStep обрабатывает ввод пароля нового пользователя
func (h *Handlers) handleCreateUserPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	password := update.Message.Text

	// Сообщение с паролем удаляем из чата
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})

	if len(password) < PasswordMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Пароль должен быть не короче %d символов.\n\nПопробуйте еще раз или /cancel", PasswordMinLength))
		return
	}

	h.stateManager.SetData(telegramID, "password", password)
	h.stateManager.SetState(telegramID, state.StateCreateUserFirstName)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 4 из 5. Введите имя:")
}

// handleCreateUserFirstNameStep обрабатывает ввод имени нового пользователя
func (h *Handlers) handleCreateUserFirstNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	firstName := strings.TrimSpace(update.Message.Text)

	if firstName == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Имя не может быть пустым.\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "first_name", firstName)
	h.stateManager.SetState(telegramID, state.StateCreateUserLastName)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 5 из 5. Введите фамилию:")
}

// handleCreateUserLastNameStep обрабатывает ввод фамилии и предлагает выбрать роль
func (h *Handlers) handleCreateUserLastNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	lastName := strings.TrimSpace(update.Message.Text)

	if lastName == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Фамилия не может быть пустой.\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "last_name", lastName)

	// Роль выбирается кнопкой, завершение создания в callback-обработчике
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("👑 Администратор", "create_user_role:"+model.RoleAdmin),
			keyboard.Button("🎓 Учитель", "create_user_role:"+model.RoleTeacher),
		).
		AddBackButton("back_to_users").
		Build()

	h.sendHTML(ctx, b, update.Message.Chat.ID, "Выберите роль нового пользователя:", kb)
}

// ========================
// Редактирование пользователя
// ========================

func applyEmail(input *model.UserInput, value string)     { input.Email = value }
func applyPhone(input *model.UserInput, value string)     { input.Phone = value }
func applyFirstName(input *model.UserInput, value string) { input.FirstName = value }
func applyLastName(input *model.UserInput, value string)  { input.LastName = value }

// handleEditUserField обрабатывает ввод нового значения поля пользователя.
// Какое именно поле меняется, определяет apply
func (h *Handlers) handleEditUserField(ctx context.Context, b *bot.Bot, update *models.Update, apply func(*model.UserInput, string)) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	value := strings.TrimSpace(update.Message.Text)
	if value == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Значение не может быть пустым.\n\nПопробуйте еще раз или /cancel")
		return
	}

	userID, ok := h.stateManager.GetInt64(telegramID, "user_id")
	if !ok {
		h.logger.Error("Missing user_id in state", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново через /users")
		return
	}

	user, found := h.findUser(telegramID, userID)
	if !found {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Пользователь не найден. Обновите список: /users")
		return
	}

	input := model.UserInput{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
	}
	apply(&input, value)

	h.stateManager.ClearState(telegramID)

	screen := h.screens.For(telegramID).Users
	errText, ok := screen.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.userService.Update(ctx, session.Token, userID, input)
		return err
	}, "Не удалось обновить пользователя")
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ "+errText)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Пользователь обновлён.")
	h.renderUsers(ctx, b, update.Message.Chat.ID, telegramID, false)
}

// handleResetPassword обрабатывает ввод нового пароля пользователя
func (h *Handlers) handleResetPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	password := update.Message.Text

	// Сообщение с паролем удаляем из чата
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})

	if len(password) < PasswordMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Пароль должен быть не короче %d символов.\n\nПопробуйте еще раз или /cancel", PasswordMinLength))
		return
	}

	userID, ok := h.stateManager.GetInt64(telegramID, "user_id")
	if !ok {
		h.logger.Error("Missing user_id in state", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново через /users")
		return
	}

	h.stateManager.ClearState(telegramID)

	if err := h.userService.ResetPassword(ctx, session.Token, userID, password); err != nil {
		h.logger.Error("Failed to reset password",
			zap.Int64("user_id", userID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ "+platform.Normalize(err, "Не удалось сбросить пароль"))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Пароль обновлён.")
}

// ========================
// Добавление платежа
// ========================

// handleCreatePaymentStudentStep обрабатывает ввод имени студента
func (h *Handlers) handleCreatePaymentStudentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	student := strings.TrimSpace(update.Message.Text)

	if student == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Имя студента не может быть пустым.\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "student_name", student)
	h.stateManager.SetState(telegramID, state.StateCreatePaymentAmount)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 2 из 3. Введите сумму платежа:")
}

// handleCreatePaymentAmountStep обрабатывает ввод суммы платежа
func (h *Handlers) handleCreatePaymentAmountStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	amountText := strings.ReplaceAll(strings.TrimSpace(update.Message.Text), ",", ".")

	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 || amount > PaymentMaxAmount {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Введите число от 0 до %d (например, 1500 или 99.50).\n\nПопробуйте еще раз или /cancel", PaymentMaxAmount))
		return
	}

	h.stateManager.SetData(telegramID, "amount", amount)
	h.stateManager.SetState(telegramID, state.StateCreatePaymentDate)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"Шаг 3 из 3. Введите дату платежа в формате ГГГГ-ММ-ДД\n"+
			"(например, "+time.Now().Format(PaymentDateLayout)+"):")
}

// handleCreatePaymentDateStep обрабатывает ввод даты и создаёт платёж
func (h *Handlers) handleCreatePaymentDateStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	dateText := strings.TrimSpace(update.Message.Text)

	if _, err := time.Parse(PaymentDateLayout, dateText); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Неверный формат даты. Используйте ГГГГ-ММ-ДД (например, 2026-09-01).\n\nПопробуйте еще раз или /cancel")
		return
	}

	student, ok1 := h.stateManager.GetString(telegramID, "student_name")
	amount, ok2 := h.stateManager.GetFloat64(telegramID, "amount")
	if !ok1 || !ok2 {
		h.logger.Error("Missing payment dialog data", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново через /payments")
		return
	}

	h.stateManager.ClearState(telegramID)

	input := model.PaymentInput{
		StudentName: student,
		Amount:      amount,
		PaymentDate: dateText,
	}

	screen := h.screens.For(telegramID).Payments
	errText, ok := screen.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.paymentService.Create(ctx, session.Token, input)
		return err
	}, "Не удалось добавить платёж")
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ "+errText)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Платёж добавлен.")
	h.renderPayments(ctx, b, update.Message.Chat.ID, telegramID, false)
}

// ========================
// Создание и редактирование цены
// ========================

// parsePrice разбирает цену из текста пользователя
func parsePrice(text string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil || price <= 0 || price > PaymentMaxAmount {
		return 0, false
	}
	return price, true
}

// handleCreatePricingIndividualStep обрабатывает ввод цены индивидуального занятия
func (h *Handlers) handleCreatePricingIndividualStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	price, ok := parsePrice(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Введите положительное число (например, 50 или 49.99).\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "individual_price", price)
	h.stateManager.SetState(telegramID, state.StateCreatePricingGroup)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 2 из 2. Введите цену группового занятия:")
}

// handleCreatePricingGroupStep обрабатывает ввод цены группового занятия и создаёт позицию
func (h *Handlers) handleCreatePricingGroupStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID

	groupPrice, ok := parsePrice(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Введите положительное число (например, 50 или 49.99).\n\nПопробуйте еще раз или /cancel")
		return
	}

	subject, ok1 := h.stateManager.GetString(telegramID, "subject")
	individualPrice, ok2 := h.stateManager.GetFloat64(telegramID, "individual_price")
	if !ok1 || !ok2 {
		h.logger.Error("Missing pricing dialog data", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново через /pricing")
		return
	}

	h.stateManager.ClearState(telegramID)

	input := model.PricingInput{
		Subject:         subject,
		IndividualPrice: individualPrice,
		GroupPrice:      groupPrice,
		IsActive:        true,
	}

	screen := h.screens.For(telegramID).Pricing
	errText, ok := screen.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.pricingService.Create(ctx, session.Token, input)
		return err
	}, "Не удалось создать позицию")
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ "+errText)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf("✅ Позиция %s создана.", subject))
	h.renderPricing(ctx, b, update.Message.Chat.ID, telegramID, false)
}

// handleEditPricingIndividualStep обрабатывает ввод новой цены индивидуального занятия
func (h *Handlers) handleEditPricingIndividualStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	price, ok := parsePrice(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Введите положительное число (например, 50 или 49.99).\n\nПопробуйте еще раз или /cancel")
		return
	}

	h.stateManager.SetData(telegramID, "individual_price", price)
	h.stateManager.SetState(telegramID, state.StateEditPricingGroup)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Шаг 2 из 2. Введите новую цену группового занятия:")
}

// handleEditPricingGroupStep обрабатывает ввод новой цены группового занятия и сохраняет позицию
func (h *Handlers) handleEditPricingGroupStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID

	groupPrice, ok := parsePrice(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Введите положительное число (например, 50 или 49.99).\n\nПопробуйте еще раз или /cancel")
		return
	}

	pricingID, ok1 := h.stateManager.GetInt64(telegramID, "pricing_id")
	individualPrice, ok2 := h.stateManager.GetFloat64(telegramID, "individual_price")
	if !ok1 || !ok2 {
		h.logger.Error("Missing pricing dialog data", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново через /pricing")
		return
	}

	item, found := h.findPricing(telegramID, pricingID)
	if !found {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Позиция не найдена. Обновите список: /pricing")
		return
	}

	h.stateManager.ClearState(telegramID)

	input := model.PricingInput{
		IndividualPrice: individualPrice,
		GroupPrice:      groupPrice,
		Currency:        item.Currency,
		IsActive:        item.IsActive,
	}

	screen := h.screens.For(telegramID).Pricing
	errText, ok := screen.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.pricingService.Update(ctx, session.Token, pricingID, input)
		return err
	}, "Не удалось обновить позицию")
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ "+errText)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf("✅ Цены для %s обновлены.", item.Subject))
	h.renderPricing(ctx, b, update.Message.Chat.ID, telegramID, false)
}
