package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// HandlePage переключает страницу списка платежей
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Payments
		if !screen.SetPage(int(page)) {
			hc.Answer("")
			return
		}

		// Пагинация локальная: данные уже загружены, хватает перерисовки
		Render(hc, screen, false)
	})
}

// HandleMonth переключает период платежей
func HandleMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		month, year, err := common.ParseMonthYear(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Payments
		screen.UpdateFilters(func(f *model.Filters) {
			f.SetMonth(month)
			f.SetYear(year)
			f.SetSearch("")
		})
		Render(hc, screen, true)
	})
}

// HandleStudentPrompt запускает ввод имени студента для истории за всё время
func HandleStudentPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState("search_payments_student")

		text := "🔍 Введите имя студента.\n\n" +
			"Покажем все его платежи за всё время.\n" +
			"Отмена: /cancel"
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_payments").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start student search dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleClearStudent сбрасывает фильтр по студенту и возвращает месяц
func HandleClearStudent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		screen := hc.Screens().Payments
		now := time.Now()
		screen.UpdateFilters(func(f *model.Filters) {
			f.SetSearch("")
			f.SetMonth(int(now.Month()))
			f.SetYear(now.Year())
		})
		Render(hc, screen, true)
	})
}

// HandleBack возвращает к списку платежей
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		Render(hc, hc.Screens().Payments, false)
	})
}

// Render загружает платежи и рисует список с итогами периода.
// Устаревший ответ (период сменили во время запроса) отбрасывается.
func Render(hc *common.HandlerContext, screen *service.ListController[model.Payment], reload bool) {
	ensurePeriod(screen)

	if reload || screen.Snapshot().Phase == service.PhaseIdle {
		if !screen.Reload(hc.Ctx) {
			hc.Answer("")
			return
		}
	}

	snap := screen.Snapshot()

	if snap.Phase == service.PhaseLoadFailed {
		if err := hc.EditMessage("❌ "+snap.Err, listKeyboard(snap)); err != nil {
			hc.Handler.Logger.Error("Failed to render payments error", zap.Error(err))
		}
		hc.Answer("")
		return
	}

	text := formatList(snap)
	if err := hc.EditMessage(text, listKeyboard(snap)); err != nil {
		hc.Handler.Logger.Error("Failed to render payments list", zap.Error(err))
	}
	hc.Answer("")
}

// ensurePeriod подставляет текущий месяц, если период ещё не выбран
// и не идёт просмотр истории студента
func ensurePeriod(screen *service.ListController[model.Payment]) {
	filters := screen.Filters()
	if filters.Search != "" {
		return
	}
	if filters.Month == 0 || filters.Year == 0 {
		now := time.Now()
		screen.UpdateFilters(func(f *model.Filters) {
			f.SetMonth(int(now.Month()))
			f.SetYear(now.Year())
		})
	}
}

// EnsurePeriod подставляет текущий месяц, если период ещё не выбран
func EnsurePeriod(screen *service.ListController[model.Payment]) {
	ensurePeriod(screen)
}

// View возвращает текст и клавиатуру списка для уже загруженного снимка
func View(snap service.Snapshot[model.Payment]) (string, *models.InlineKeyboardMarkup) {
	if snap.Phase == service.PhaseLoadFailed {
		return "❌ " + snap.Err, listKeyboard(snap)
	}
	return formatList(snap), listKeyboard(snap)
}

func formatList(snap service.Snapshot[model.Payment]) string {
	var sb strings.Builder
	filters := snap.Filters

	if filters.Search != "" {
		sb.WriteString(fmt.Sprintf("💰 <b>Платежи студента %s</b>\n", filters.Search))
	} else {
		sb.WriteString(fmt.Sprintf("💰 <b>Платежи за %02d/%d</b>\n", filters.Month, filters.Year))
	}
	sb.WriteString(fmt.Sprintf("Всего: %d %s на сумму %s\n\n",
		snap.Total, formatting.PluralizePayments(snap.Total),
		formatting.FormatAmount(snap.TotalAmount, "")))

	if len(snap.Items) == 0 {
		sb.WriteString("Платежей нет.")
		return sb.String()
	}

	for _, payment := range snap.Items {
		sb.WriteString(fmt.Sprintf("• %s — %s (%s)\n",
			payment.StudentName,
			formatting.FormatAmount(payment.Amount, ""),
			payment.PaymentDate))
	}

	return sb.String()
}

func listKeyboard(snap service.Snapshot[model.Payment]) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	for _, payment := range snap.Items {
		kb.Row(keyboard.Button(
			fmt.Sprintf("🗑 %s — %s", payment.StudentName, formatting.FormatAmountShort(payment.Amount, "")),
			fmt.Sprintf("delete_payment:%d", payment.ID),
		))
	}

	kb.AddPagination("payments_page:", snap.Page, snap.TotalPages)

	if snap.Filters.Search == "" {
		kb.Row(keyboard.MonthNavigation("payments_month:", snap.Filters.Month, snap.Filters.Year)...)
	} else {
		kb.Row(keyboard.Button("✖️ К платежам месяца", "payments_clear_student"))
	}

	kb.Row(
		keyboard.Button("➕ Добавить", "payments_add"),
		keyboard.Button("🔍 По студенту", "payments_student"),
	)
	kb.AddBackToMainButton()

	return kb.Build()
}
