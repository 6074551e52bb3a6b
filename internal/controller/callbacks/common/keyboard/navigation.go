package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", "back_to_main")
}

// BackToUsersButton создаёт кнопку "К списку пользователей"
func BackToUsersButton() models.InlineKeyboardButton {
	return Button("⬅️ К пользователям", "back_to_users")
}

// BackToPaymentsButton создаёт кнопку "К платежам"
func BackToPaymentsButton() models.InlineKeyboardButton {
	return Button("⬅️ К платежам", "back_to_payments")
}

// BackToPricingButton создаёт кнопку "К прайсу"
func BackToPricingButton() models.InlineKeyboardButton {
	return Button("⬅️ К прайсу", "back_to_pricing")
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// YesNoButtons создаёт ряд с кнопками Да/Нет
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Да", yesCallback),
			Button("❌ Нет", noCallback),
		},
	}
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// BackRow создаёт ряд с кнопкой "Назад"
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// EditButton создаёт кнопку "Редактировать"
func EditButton(callbackData string) models.InlineKeyboardButton {
	return Button("✏️ Редактировать", callbackData)
}

// DeleteButton создаёт кнопку "Удалить"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Удалить", callbackData)
}

// SearchButton создаёт кнопку поиска
func SearchButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔍 Поиск", callbackData)
}

// MonthNavigation создаёт ряд навигации по месяцам
// prefix — префикс callback, например "payments_month:"
func MonthNavigation(prefix string, month, year int) []models.InlineKeyboardButton {
	prevMonth, prevYear := month-1, year
	if prevMonth < 1 {
		prevMonth, prevYear = 12, year-1
	}
	nextMonth, nextYear := month+1, year
	if nextMonth > 12 {
		nextMonth, nextYear = 1, year+1
	}

	return []models.InlineKeyboardButton{
		Button("◀️", fmt.Sprintf("%s%d:%d", prefix, prevMonth, prevYear)),
		Button(fmt.Sprintf("📅 %02d/%d", month, year), "noop"),
		Button("▶️", fmt.Sprintf("%s%d:%d", prefix, nextMonth, nextYear)),
	}
}
