package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния логина на платформе
	StateLoginUsername UserState = "login_username"
	StateLoginPassword UserState = "login_password"

	// Состояния поиска по экранам
	StateSearchUsers           UserState = "search_users"
	StateSearchPricing         UserState = "search_pricing"
	StateSearchPaymentsStudent UserState = "search_payments_student"

	// Состояния создания пользователя платформы
	StateCreateUserUsername  UserState = "create_user_username"
	StateCreateUserEmail     UserState = "create_user_email"
	StateCreateUserPassword  UserState = "create_user_password"
	StateCreateUserFirstName UserState = "create_user_first_name"
	StateCreateUserLastName  UserState = "create_user_last_name"

	// Состояния редактирования пользователя
	StateEditUserEmail     UserState = "edit_user_email"
	StateEditUserFirstName UserState = "edit_user_first_name"
	StateEditUserLastName  UserState = "edit_user_last_name"
	StateEditUserPhone     UserState = "edit_user_phone"

	// Состояние сброса пароля
	StateResetPassword UserState = "reset_password"

	// Состояния добавления платежа
	StateCreatePaymentStudent UserState = "create_payment_student"
	StateCreatePaymentAmount  UserState = "create_payment_amount"
	StateCreatePaymentDate    UserState = "create_payment_date"

	// Состояния создания и редактирования цены
	StateCreatePricingIndividual UserState = "create_pricing_individual"
	StateCreatePricingGroup      UserState = "create_pricing_group"
	StateEditPricingIndividual   UserState = "edit_pricing_individual"
	StateEditPricingGroup        UserState = "edit_pricing_group"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
