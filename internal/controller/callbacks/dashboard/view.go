package dashboard

import (
	"bytes"
	"context"
	"time"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/Freeeeeet/institute_admin_bot/internal/stats"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMonth переключает период дашборда и перезагружает статистику
func HandleMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		month, year, err := common.ParseMonthYear(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Dashboard
		screen.UpdateFilters(func(f *model.Filters) {
			f.SetMonth(month)
			f.SetYear(year)
		})

		Render(hc, screen)
	})
}

// HandleRefresh перезагружает дашборд с текущим периодом
func HandleRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		Render(hc, hc.Screens().Dashboard)
	})
}

// HandleChart отправляет диаграмму часов по предметам отдельным сообщением
func HandleChart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		screen := hc.Screens().Dashboard
		snap := screen.Snapshot()
		if snap.Phase != service.PhaseLoaded {
			hc.AnswerAlert("❌ Сначала загрузите статистику")
			return
		}

		filters := snap.Filters
		summary := stats.Compute(snap.Items)

		png, err := common.GenerateHoursChart(summary, filters.Month, filters.Year)
		if err != nil {
			hc.Handler.Logger.Error("Failed to render hours chart", zap.Error(err))
			hc.AnswerAlert("❌ Не удалось построить диаграмму")
			return
		}

		photo := &models.InputFileUpload{
			Filename: "hours.png",
			Data:     bytes.NewReader(png),
		}
		caption := "📊 Часы по предметам"
		if err := hc.SendPhoto(photo, caption); err != nil {
			hc.Handler.Logger.Error("Failed to send chart", zap.Error(err))
			hc.AnswerAlert("❌ Не удалось отправить диаграмму")
			return
		}

		hc.Answer("")
	})
}

// Render загружает занятия периода и рисует сводку в сообщении.
// Если за время запроса период сменили, устаревший ответ отбрасывается
// и экран рендерит тот вызов, который загружал актуальный период.
func Render(hc *common.HandlerContext, screen *service.ListController[model.Lesson]) {
	ensurePeriod(screen)

	if !screen.Reload(hc.Ctx) {
		// Ответ устарел: актуальный рендер сделает более поздний вызов
		hc.Answer("")
		return
	}

	snap := screen.Snapshot()
	filters := snap.Filters

	if snap.Phase == service.PhaseLoadFailed {
		if err := hc.EditMessage("❌ "+snap.Err, periodKeyboard(filters)); err != nil {
			hc.Handler.Logger.Error("Failed to render dashboard error", zap.Error(err))
		}
		hc.Answer("")
		return
	}

	summary := stats.Compute(snap.Items)
	text := formatting.FormatStatsSummary(summary, filters.Month, filters.Year)

	if err := hc.EditMessage(text, periodKeyboard(filters)); err != nil {
		hc.Handler.Logger.Error("Failed to render dashboard", zap.Error(err))
	}
	hc.Answer("")
}

// View возвращает текст и клавиатуру сводки для уже загруженного снимка
func View(snap service.Snapshot[model.Lesson]) (string, *models.InlineKeyboardMarkup) {
	if snap.Phase == service.PhaseLoadFailed {
		return "❌ " + snap.Err, periodKeyboard(snap.Filters)
	}
	summary := stats.Compute(snap.Items)
	return formatting.FormatStatsSummary(summary, snap.Filters.Month, snap.Filters.Year), periodKeyboard(snap.Filters)
}

// EnsurePeriod подставляет текущий месяц, если период ещё не выбран
func EnsurePeriod(screen *service.ListController[model.Lesson]) {
	ensurePeriod(screen)
}

func ensurePeriod(screen *service.ListController[model.Lesson]) {
	filters := screen.Filters()
	if filters.Month == 0 || filters.Year == 0 {
		now := time.Now()
		screen.UpdateFilters(func(f *model.Filters) {
			f.SetMonth(int(now.Month()))
			f.SetYear(now.Year())
		})
	}
}

func periodKeyboard(filters model.Filters) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.MonthNavigation("dashboard_month:", filters.Month, filters.Year)...).
		Row(
			keyboard.Button("🔄 Обновить", "dashboard_refresh"),
			keyboard.Button("📈 Диаграмма", "dashboard_chart"),
		).
		AddBackToMainButton().
		Build()
}
