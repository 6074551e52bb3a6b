package handlers

// Константы валидации диалогов
const (
	// Логин и пароль пользователя платформы
	UsernameMinLength = 3
	UsernameMaxLength = 50
	PasswordMinLength = 8

	// Сумма платежа
	PaymentMaxAmount = 1_000_000

	// Формат даты платежа
	PaymentDateLayout = "2006-01-02"
)
