package users

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// findUser ищет пользователя среди загруженных записей экрана
func findUser(hc *common.HandlerContext, id int64) (*model.User, bool) {
	snap := hc.Screens().Users.Snapshot()
	for i := range snap.Items {
		if snap.Items[i].ID == id {
			return &snap.Items[i], true
		}
	}
	return nil, false
}

// HandleView показывает карточку пользователя
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		text := fmt.Sprintf(
			"👤 <b>%s</b>\n\n"+
				"Логин: @%s\n"+
				"Email: %s\n"+
				"Телефон: %s\n"+
				"Роль: %s\n"+
				"Статус: %s\n"+
				"Создан: %s",
			user.FullName(),
			user.Username,
			orDash(user.Email),
			orDash(user.Phone),
			formatting.RoleLabel(user.Role),
			formatting.StatusLabel(user.Status),
			user.CreatedAt.Format("02.01.2006"),
		)

		kb := keyboard.NewBuilder().
			Row(keyboard.EditButton(fmt.Sprintf("edit_user:%d", id))).
			Row(
				keyboard.Button("🔑 Сбросить пароль", fmt.Sprintf("reset_password:%d", id)),
				keyboard.Button("⏸ Деактивировать", fmt.Sprintf("deactivate_user:%d", id)),
			).
			Row(keyboard.BackToUsersButton()).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render user card", zap.Error(err))
		}
		hc.Answer("")
	})
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// HandleCreate запускает диалог создания пользователя
func HandleCreate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState("create_user_username")

		text := "➕ <b>Новый пользователь</b>\n\n" +
			"Шаг 1 из 5. Введите логин:\n\n" +
			"Отмена: /cancel"
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_users").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start create user dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCreateRole завершает диалог создания: роль выбрана кнопкой
func HandleCreateRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseParts(callback.Data, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		role := parts[0]

		data := hc.Handler.StateManager.GetAllData(hc.TelegramID)
		input := model.UserInput{
			Username:  stringValue(data, "username"),
			Email:     stringValue(data, "email"),
			Password:  stringValue(data, "password"),
			FirstName: stringValue(data, "first_name"),
			LastName:  stringValue(data, "last_name"),
			Role:      role,
			Status:    model.StatusActive,
		}
		if input.Username == "" || input.Password == "" {
			hc.ClearState()
			hc.AnswerAlert("❌ Данные диалога потеряны. Начните заново")
			return
		}

		hc.ClearState()

		screen := hc.Screens().Users
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			_, err := hc.Handler.UserService.Create(ctx, hc.Session.Token, input)
			return err
		}, "Не удалось создать пользователя")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Пользователь создан")
		Render(hc, screen, false)
	})
}

func stringValue(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

// HandleEditMenu показывает меню редактирования пользователя
func HandleEditMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		text := fmt.Sprintf("✏️ <b>Редактирование %s</b>\n\nЧто изменить?", user.FullName())
		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("📧 Email", fmt.Sprintf("edit_user_email:%d", id)),
				keyboard.Button("📱 Телефон", fmt.Sprintf("edit_user_phone:%d", id)),
			).
			Row(
				keyboard.Button("Имя", fmt.Sprintf("edit_user_first_name:%d", id)),
				keyboard.Button("Фамилия", fmt.Sprintf("edit_user_last_name:%d", id)),
			).
			Row(
				keyboard.Button("👑 Сделать админом", fmt.Sprintf("set_user_role:%d:admin", id)),
				keyboard.Button("🎓 Сделать учителем", fmt.Sprintf("set_user_role:%d:teacher", id)),
			).
			Row(keyboard.BackButton(fmt.Sprintf("view_user:%d", id))).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render edit user menu", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleEditField запускает ввод нового значения поля
func HandleEditField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, state callbacktypes.UserState, prompt string) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		hc.ClearState()
		hc.SetData("user_id", id)
		hc.SetState(state)

		text := fmt.Sprintf("✏️ <b>%s</b>\n\n%s\n\nОтмена: /cancel", user.FullName(), prompt)
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton(fmt.Sprintf("edit_user:%d", id)).Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start edit field dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSetRole меняет роль пользователя
func HandleSetRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseParts(callback.Data, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		id, err := parseID(parts[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		role := parts[1]

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		input := userInputFrom(user)
		input.Role = role

		screen := hc.Screens().Users
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			_, err := hc.Handler.UserService.Update(ctx, hc.Session.Token, id, input)
			return err
		}, "Не удалось изменить роль")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Роль изменена")
		Render(hc, screen, false)
	})
}

// userInputFrom собирает форму обновления из текущих полей пользователя
func userInputFrom(user *model.User) model.UserInput {
	return model.UserInput{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
	}
}

// HandleDeactivate показывает подтверждение деактивации
func HandleDeactivate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		text := fmt.Sprintf("⚠️ Деактивировать пользователя <b>%s</b> (@%s)?\n\n"+
			"Пользователь потеряет доступ к платформе.", user.FullName(), user.Username)
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(
				fmt.Sprintf("confirm_deactivate_user:%d", id),
				fmt.Sprintf("view_user:%d", id),
			)).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render deactivate confirm", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDeactivate деактивирует пользователя после подтверждения
func HandleConfirmDeactivate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Users
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			return hc.Handler.UserService.Deactivate(ctx, hc.Session.Token, id)
		}, "Не удалось деактивировать пользователя")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Пользователь деактивирован")
		Render(hc, screen, false)
	})
}

// HandleResetPassword запускает ввод нового пароля
func HandleResetPassword(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		user, ok := findUser(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Пользователь не найден. Обновите список")
			return
		}

		hc.ClearState()
		hc.SetData("user_id", id)
		hc.SetState("reset_password")

		text := fmt.Sprintf("🔑 <b>Сброс пароля для %s</b>\n\n"+
			"Введите новый пароль:\n\nОтмена: /cancel", user.FullName())
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton(fmt.Sprintf("view_user:%d", id)).Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start reset password dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
