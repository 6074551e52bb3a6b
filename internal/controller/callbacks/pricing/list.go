package pricing

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

// HandlePage переключает страницу прайса
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Pricing
		if !screen.SetPage(int(page)) {
			hc.Answer("")
			return
		}

		Render(hc, screen, false)
	})
}

// HandleToggleActiveFilter переключает фильтр "только активные"
func HandleToggleActiveFilter(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		screen := hc.Screens().Pricing
		screen.UpdateFilters(func(f *model.Filters) {
			if f.ActiveOnly == nil {
				active := true
				f.SetActiveOnly(&active)
			} else {
				f.SetActiveOnly(nil)
			}
		})
		Render(hc, screen, true)
	})
}

// HandleSearchPrompt запускает ввод строки поиска по предметам
func HandleSearchPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState("search_pricing")

		text := "🔍 Введите название предмета.\n\nОтмена: /cancel"
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_pricing").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start pricing search dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSearchClear сбрасывает строку поиска
func HandleSearchClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		screen := hc.Screens().Pricing
		screen.UpdateFilters(func(f *model.Filters) { f.SetSearch("") })
		Render(hc, screen, false)
	})
}

// HandleBack возвращает к прайсу
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		Render(hc, hc.Screens().Pricing, false)
	})
}

// Render загружает прайс и рисует список.
// Устаревший ответ (фильтры сменились во время запроса) отбрасывается.
func Render(hc *common.HandlerContext, screen *service.ListController[model.Pricing], reload bool) {
	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(hc.Ctx) {
			hc.Answer("")
			return
		}
	}

	snap := screen.Snapshot()

	if snap.Phase == service.PhaseLoadFailed {
		if err := hc.EditMessage("❌ "+snap.Err, listKeyboard(snap)); err != nil {
			hc.Handler.Logger.Error("Failed to render pricing error", zap.Error(err))
		}
		hc.Answer("")
		return
	}

	text := formatList(snap)
	if err := hc.EditMessage(text, listKeyboard(snap)); err != nil {
		hc.Handler.Logger.Error("Failed to render pricing list", zap.Error(err))
	}
	hc.Answer("")
}

// View возвращает текст и клавиатуру списка для уже загруженного снимка
func View(snap service.Snapshot[model.Pricing]) (string, *models.InlineKeyboardMarkup) {
	if snap.Phase == service.PhaseLoadFailed {
		return "❌ " + snap.Err, listKeyboard(snap)
	}
	return formatList(snap), listKeyboard(snap)
}

func formatList(snap service.Snapshot[model.Pricing]) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💵 <b>Прайс</b> — %d %s\n",
		snap.Total, formatting.PluralizeSubjects(snap.Total)))

	if snap.Filters.ActiveOnly != nil {
		sb.WriteString("Показаны только активные\n")
	}
	if snap.Filters.Search != "" {
		sb.WriteString("Поиск: " + snap.Filters.Search + "\n")
	}
	sb.WriteString("\n")

	if len(snap.Items) == 0 {
		sb.WriteString("Позиций нет. Заполните прайс кнопкой ниже.")
		return sb.String()
	}

	for _, item := range snap.Items {
		marker := "🟢"
		if !item.IsActive {
			marker = "⚪️"
		}
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> (%s)\n  инд. %s / груп. %s\n\n",
			marker, item.Subject, model.SubjectLabel(item.Subject),
			formatting.FormatAmountShort(item.IndividualPrice, item.Currency),
			formatting.FormatAmountShort(item.GroupPrice, item.Currency)))
	}

	return sb.String()
}

func listKeyboard(snap service.Snapshot[model.Pricing]) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	for _, item := range snap.Items {
		kb.Row(keyboard.Button(
			fmt.Sprintf("✏️ %s", item.Subject),
			fmt.Sprintf("edit_pricing:%d", item.ID),
		))
	}

	kb.AddPagination("pricing_page:", snap.Page, snap.TotalPages)

	activeLabel := "⚪️ Только активные"
	if snap.Filters.ActiveOnly != nil {
		activeLabel = "🟢 Все позиции"
	}
	kb.Row(
		keyboard.Button(activeLabel, "pricing_toggle_active"),
		keyboard.SearchButton("pricing_search"),
	)
	if snap.Filters.Search != "" {
		kb.Row(keyboard.Button("✖️ Сбросить поиск", "pricing_search_clear"))
	}
	kb.Row(
		keyboard.Button("➕ Добавить", "pricing_add"),
		keyboard.Button("📦 Заполнить каталог", "pricing_populate"),
	)
	kb.AddBackToMainButton()

	return kb.Build()
}
