package pricing

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// findPricing ищет позицию прайса среди загруженных записей экрана
func findPricing(hc *common.HandlerContext, id int64) (*model.Pricing, bool) {
	snap := hc.Screens().Pricing.Snapshot()
	for i := range snap.Items {
		if snap.Items[i].ID == id {
			return &snap.Items[i], true
		}
	}
	return nil, false
}

// HandleAdd показывает выбор предмета из каталога для новой позиции
func HandleAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder()
		for _, subject := range model.SubjectNames() {
			kb.Row(keyboard.Button(
				fmt.Sprintf("%s (%s)", subject, model.SubjectLabel(subject)),
				"pricing_subject:"+subject,
			))
		}
		kb.AddBackButton("back_to_pricing")

		if err := hc.EditMessage("➕ <b>Новая позиция</b>\n\nВыберите предмет:", kb.Build()); err != nil {
			hc.Handler.Logger.Error("Failed to render subject picker", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSubjectChosen сохраняет предмет и запускает ввод цен
func HandleSubjectChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseParts(callback.Data, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		subject := parts[0]

		hc.ClearState()
		hc.SetData("subject", subject)
		hc.SetState("create_pricing_individual")

		text := fmt.Sprintf("➕ <b>%s</b>\n\n"+
			"Шаг 1 из 2. Введите цену индивидуального занятия:\n\n"+
			"Отмена: /cancel", subject)
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_pricing").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start create pricing dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleEditMenu показывает карточку позиции с действиями
func HandleEditMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		item, ok := findPricing(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Позиция не найдена. Обновите список")
			return
		}

		toggleLabel := "⏸ Деактивировать"
		if !item.IsActive {
			toggleLabel = "▶️ Активировать"
		}

		text := fmt.Sprintf(
			"💵 <b>%s</b> (%s)\n\n"+
				"Индивидуальные: %s\n"+
				"Групповые: %s\n"+
				"Статус: %s",
			item.Subject, model.SubjectLabel(item.Subject),
			formatting.FormatAmount(item.IndividualPrice, item.Currency),
			formatting.FormatAmount(item.GroupPrice, item.Currency),
			activeLabel(item.IsActive),
		)

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("✏️ Изменить цены", fmt.Sprintf("pricing_edit_prices:%d", id))).
			Row(
				keyboard.Button(toggleLabel, fmt.Sprintf("pricing_toggle:%d", id)),
				keyboard.DeleteButton(fmt.Sprintf("delete_pricing:%d", id)),
			).
			Row(keyboard.BackToPricingButton()).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render pricing card", zap.Error(err))
		}
		hc.Answer("")
	})
}

func activeLabel(active bool) string {
	if active {
		return "🟢 Активна"
	}
	return "⚪️ Неактивна"
}

// HandleEditPrices запускает ввод новых цен позиции
func HandleEditPrices(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		item, ok := findPricing(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Позиция не найдена. Обновите список")
			return
		}

		hc.ClearState()
		hc.SetData("pricing_id", id)
		hc.SetState("edit_pricing_individual")

		text := fmt.Sprintf("✏️ <b>%s</b>\n\n"+
			"Шаг 1 из 2. Введите новую цену индивидуального занятия (сейчас %s):\n\n"+
			"Отмена: /cancel",
			item.Subject,
			formatting.FormatAmountShort(item.IndividualPrice, item.Currency))
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton(fmt.Sprintf("edit_pricing:%d", id)).Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start edit pricing dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleToggle переключает активность позиции
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		item, ok := findPricing(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Позиция не найдена. Обновите список")
			return
		}

		input := model.PricingInput{
			IndividualPrice: item.IndividualPrice,
			GroupPrice:      item.GroupPrice,
			Currency:        item.Currency,
			IsActive:        !item.IsActive,
		}

		screen := hc.Screens().Pricing
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			_, err := hc.Handler.PricingService.Update(ctx, hc.Session.Token, id, input)
			return err
		}, "Не удалось изменить позицию")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Готово")
		Render(hc, screen, false)
	})
}

// HandleDelete показывает подтверждение удаления позиции
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		item, ok := findPricing(hc, id)
		if !ok {
			hc.AnswerAlert("❌ Позиция не найдена. Обновите список")
			return
		}

		text := fmt.Sprintf("⚠️ Удалить позицию <b>%s</b> из прайса?", item.Subject)
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(
				fmt.Sprintf("confirm_delete_pricing:%d", id),
				fmt.Sprintf("edit_pricing:%d", id),
			)).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render delete pricing confirm", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDelete удаляет позицию после подтверждения
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Pricing
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			return hc.Handler.PricingService.Delete(ctx, hc.Session.Token, id)
		}, "Не удалось удалить позицию")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Позиция удалена")
		Render(hc, screen, false)
	})
}

// HandlePopulate показывает подтверждение массового заполнения прайса
func HandlePopulate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text := fmt.Sprintf("📦 Создать позиции для всех %d предметов каталога?\n\n"+
			"Цены по умолчанию: %d / %d. Уже существующие предметы будут пропущены.",
			len(model.SubjectLabels), model.DefaultIndividualPrice, model.DefaultGroupPrice)
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons("pricing_populate_confirm", "back_to_pricing")).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render populate confirm", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandlePopulateConfirm заполняет прайс ценами по умолчанию.
// Конфликты считаются пропусками, обход не прерывается.
func HandlePopulateConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		report, err := hc.Handler.PricingService.PopulateDefaults(hc.Ctx, hc.Session.Token)
		if err != nil {
			common.HandleError(hc, err, "populate pricing")
			return
		}

		hc.Answer(fmt.Sprintf("✅ Создано %d, пропущено %d", report.Created, report.Skipped))

		screen := hc.Screens().Pricing
		Render(hc, screen, true)

		if report.Failed > 0 {
			hc.SendMessage(fmt.Sprintf("⚠️ Не удалось создать %d позиций, подробности в логах.", report.Failed), nil)
		}
	})
}
