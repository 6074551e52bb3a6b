package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlePage переключает страницу списка пользователей
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Users
		if !screen.SetPage(int(page)) {
			// Выход за границу страниц — ничего не меняем
			hc.Answer("")
			return
		}

		Render(hc, screen, true)
	})
}

// HandleFilterRole фильтрует список по роли
func HandleFilterRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseParts(callback.Data, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		role := parts[0]
		if role == "all" {
			role = ""
		}

		screen := hc.Screens().Users
		screen.UpdateFilters(func(f *model.Filters) { f.SetRole(role) })
		Render(hc, screen, true)
	})
}

// HandleFilterStatus фильтрует список по статусу
func HandleFilterStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseParts(callback.Data, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		status := parts[0]
		if status == "all" {
			status = ""
		}

		screen := hc.Screens().Users
		screen.UpdateFilters(func(f *model.Filters) { f.SetStatus(status) })
		Render(hc, screen, true)
	})
}

// HandleSearchClear сбрасывает строку поиска
func HandleSearchClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		screen := hc.Screens().Users
		screen.UpdateFilters(func(f *model.Filters) { f.SetSearch("") })
		Render(hc, screen, false)
	})
}

// HandleBack возвращает к списку пользователей
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		Render(hc, hc.Screens().Users, false)
	})
}

// Render загружает страницу пользователей и рисует список.
// reload=false перерисовывает уже загруженные данные без запроса.
// Устаревший ответ (фильтры сменились во время запроса) отбрасывается.
func Render(hc *common.HandlerContext, screen *service.ListController[model.User], reload bool) {
	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(hc.Ctx) {
			hc.Answer("")
			return
		}
	}

	snap := screen.Snapshot()

	if snap.Phase == service.PhaseLoadFailed {
		if err := hc.EditMessage("❌ "+snap.Err, listKeyboard(snap)); err != nil {
			hc.Handler.Logger.Error("Failed to render users error", zap.Error(err))
		}
		hc.Answer("")
		return
	}

	text := formatList(snap)
	if err := hc.EditMessage(text, listKeyboard(snap)); err != nil {
		hc.Handler.Logger.Error("Failed to render users list", zap.Error(err))
	}
	hc.Answer("")
}

// View возвращает текст и клавиатуру списка для уже загруженного снимка.
// Используется командами, которые рисуют экран новым сообщением.
func View(snap service.Snapshot[model.User]) (string, *models.InlineKeyboardMarkup) {
	if snap.Phase == service.PhaseLoadFailed {
		return "❌ " + snap.Err, listKeyboard(snap)
	}
	return formatList(snap), listKeyboard(snap)
}

func formatList(snap service.Snapshot[model.User]) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 <b>Пользователи</b> — %d %s\n",
		snap.Total, formatting.PluralizeUsers(snap.Total)))

	if snap.Filters.Role != "" {
		sb.WriteString("Роль: " + formatting.RoleLabel(snap.Filters.Role) + "\n")
	}
	if snap.Filters.Status != "" {
		sb.WriteString("Статус: " + formatting.StatusLabel(snap.Filters.Status) + "\n")
	}
	if snap.Filters.Search != "" {
		sb.WriteString("Поиск: " + snap.Filters.Search + "\n")
	}
	sb.WriteString("\n")

	if len(snap.Items) == 0 {
		sb.WriteString("Ничего не найдено.")
		return sb.String()
	}

	for _, user := range snap.Items {
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> (@%s)\n%s\n\n",
			statusEmoji(user.Status), user.FullName(), user.Username,
			formatting.RoleLabel(user.Role)))
	}

	return sb.String()
}

func statusEmoji(status string) string {
	switch status {
	case model.StatusActive:
		return "🟢"
	case model.StatusInactive:
		return "⚪️"
	case model.StatusSuspended:
		return "🔴"
	default:
		return "▫️"
	}
}

func listKeyboard(snap service.Snapshot[model.User]) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	// Кнопки открытия карточек видимых пользователей
	for _, user := range snap.Items {
		kb.Row(keyboard.Button(
			fmt.Sprintf("👤 %s", user.FullName()),
			fmt.Sprintf("view_user:%d", user.ID),
		))
	}

	kb.AddPagination("users_page:", snap.Page, snap.TotalPages)

	kb.Row(
		keyboard.SearchButton("users_search"),
		keyboard.Button("➕ Создать", "create_user"),
	)
	if snap.Filters.Search != "" {
		kb.Row(keyboard.Button("✖️ Сбросить поиск", "users_search_clear"))
	}
	kb.Row(
		keyboard.Button("🎭 Роль", "users_roles_menu"),
		keyboard.Button("📶 Статус", "users_statuses_menu"),
	)
	kb.AddBackToMainButton()

	return kb.Build()
}

// HandleSearchPrompt запускает ввод строки поиска
func HandleSearchPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState("search_users")

		text := "🔍 Введите строку поиска.\n\n" +
			"Ищем по логину, почте и полному имени.\n" +
			"Отмена: /cancel"
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_users").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start users search dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleRolesMenu показывает выбор фильтра по роли
func HandleRolesMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("👑 Администраторы", "users_filter_role:admin"),
				keyboard.Button("🎓 Учителя", "users_filter_role:teacher"),
			).
			Row(keyboard.Button("Все роли", "users_filter_role:all")).
			AddBackButton("back_to_users").
			Build()

		if err := hc.EditMessage("🎭 Выберите роль для фильтра:", kb); err != nil {
			hc.Handler.Logger.Error("Failed to render roles menu", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleStatusesMenu показывает выбор фильтра по статусу
func HandleStatusesMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("✅ Активные", "users_filter_status:active"),
				keyboard.Button("⏸ Неактивные", "users_filter_status:inactive"),
			).
			Row(keyboard.Button("Все статусы", "users_filter_status:all")).
			AddBackButton("back_to_users").
			Build()

		if err := hc.EditMessage("📶 Выберите статус для фильтра:", kb); err != nil {
			hc.Handler.Logger.Error("Failed to render statuses menu", zap.Error(err))
		}
		hc.Answer("")
	})
}
