package payments

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAdd запускает диалог добавления платежа
func HandleAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState("create_payment_student")

		text := "➕ <b>Новый платёж</b>\n\n" +
			"Шаг 1 из 3. Введите имя студента:\n\n" +
			"Отмена: /cancel"
		if err := hc.EditMessage(text, keyboard.NewBuilder().AddBackButton("back_to_payments").Build()); err != nil {
			hc.Handler.Logger.Error("Failed to start create payment dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDelete показывает подтверждение удаления платежа
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		snap := hc.Screens().Payments.Snapshot()
		var found bool
		var text string
		for _, payment := range snap.Items {
			if payment.ID == id {
				found = true
				text = fmt.Sprintf("⚠️ Удалить платёж?\n\n"+
					"Студент: %s\nСумма: %s\nДата: %s",
					payment.StudentName,
					formatting.FormatAmount(payment.Amount, ""),
					payment.PaymentDate)
				break
			}
		}
		if !found {
			hc.AnswerAlert("❌ Платёж не найден. Обновите список")
			return
		}

		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(
				fmt.Sprintf("confirm_delete_payment:%d", id),
				"back_to_payments",
			)).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			hc.Handler.Logger.Error("Failed to render delete payment confirm", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDelete удаляет платёж после подтверждения
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		screen := hc.Screens().Payments
		errText, ok := screen.Mutate(hc.Ctx, func(ctx context.Context) error {
			return hc.Handler.PaymentService.Delete(ctx, hc.Session.Token, id)
		}, "Не удалось удалить платёж")
		if !ok {
			hc.AnswerAlert("❌ " + errText)
			return
		}

		hc.Answer("✅ Платёж удалён")
		Render(hc, screen, false)
	})
}
