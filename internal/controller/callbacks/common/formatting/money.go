package formatting

import "fmt"

// FormatAmount форматирует денежную сумму с валютой
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// FormatAmountShort форматирует сумму без дробной части если она нулевая
func FormatAmountShort(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%.0f %s", amount, currency)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// FormatHours форматирует количество часов для показа
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f ч", hours)
}
