package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/dashboard"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/payments"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/pricing"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/users"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot

// Common callbacks
const (
	BackToMain    = "back_to_main"
	OpenDashboard = "open_dashboard"
)

// Dashboard callbacks
const (
	DashboardMonth   = "dashboard_month:" // dashboard_month:3:2026
	DashboardRefresh = "dashboard_refresh"
	DashboardChart   = "dashboard_chart"
)

// Users screen callbacks
const (
	UsersPage         = "users_page:" // users_page:2
	UsersSearch       = "users_search"
	UsersSearchClear  = "users_search_clear"
	UsersRolesMenu    = "users_roles_menu"
	UsersStatusesMenu = "users_statuses_menu"
	UsersFilterRole   = "users_filter_role:"   // users_filter_role:teacher
	UsersFilterStatus = "users_filter_status:" // users_filter_status:active
	BackToUsers       = "back_to_users"

	ViewUser          = "view_user:"  // view_user:123
	CreateUser        = "create_user" // запускает диалог
	CreateUserRole    = "create_user_role:"
	EditUser          = "edit_user:" // edit_user:123
	EditUserEmail     = "edit_user_email:"
	EditUserPhone     = "edit_user_phone:"
	EditUserFirstName = "edit_user_first_name:"
	EditUserLastName  = "edit_user_last_name:"
	SetUserRole       = "set_user_role:" // set_user_role:123:admin
	DeactivateUser    = "deactivate_user:"
	ConfirmDeactivate = "confirm_deactivate_user:"
	ResetPassword     = "reset_password:"
)

// Payments screen callbacks
const (
	PaymentsPage         = "payments_page:"
	PaymentsMonth        = "payments_month:" // payments_month:3:2026
	PaymentsAdd          = "payments_add"
	PaymentsStudent      = "payments_student"
	PaymentsClearStudent = "payments_clear_student"
	DeletePayment        = "delete_payment:"
	ConfirmDeletePayment = "confirm_delete_payment:"
	BackToPayments       = "back_to_payments"
)

// Pricing screen callbacks
const (
	PricingPage            = "pricing_page:"
	PricingToggleActive    = "pricing_toggle_active"
	PricingSearch          = "pricing_search"
	PricingSearchClear     = "pricing_search_clear"
	PricingAdd             = "pricing_add"
	PricingSubject         = "pricing_subject:" // pricing_subject:Math
	EditPricing            = "edit_pricing:"
	PricingEditPrices      = "pricing_edit_prices:"
	PricingToggle          = "pricing_toggle:"
	DeletePricing          = "delete_pricing:"
	ConfirmDeletePricing   = "confirm_delete_pricing:"
	PricingPopulate        = "pricing_populate"
	PricingPopulateConfirm = "pricing_populate_confirm"
	BackToPricing          = "back_to_pricing"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == OpenDashboard:
		common.HandleDashboardShortcut(ctx, b, callback, h)
	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Dashboard =====
	case strings.HasPrefix(data, DashboardMonth):
		dashboard.HandleMonth(ctx, b, callback, h)
	case data == DashboardRefresh:
		dashboard.HandleRefresh(ctx, b, callback, h)
	case data == DashboardChart:
		dashboard.HandleChart(ctx, b, callback, h)

	// ===== Users =====
	case strings.HasPrefix(data, UsersPage):
		users.HandlePage(ctx, b, callback, h)
	case data == UsersSearch:
		users.HandleSearchPrompt(ctx, b, callback, h)
	case data == UsersSearchClear:
		users.HandleSearchClear(ctx, b, callback, h)
	case data == UsersRolesMenu:
		users.HandleRolesMenu(ctx, b, callback, h)
	case data == UsersStatusesMenu:
		users.HandleStatusesMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, UsersFilterRole):
		users.HandleFilterRole(ctx, b, callback, h)
	case strings.HasPrefix(data, UsersFilterStatus):
		users.HandleFilterStatus(ctx, b, callback, h)
	case data == BackToUsers:
		users.HandleBack(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewUser):
		users.HandleView(ctx, b, callback, h)
	case data == CreateUser:
		users.HandleCreate(ctx, b, callback, h)
	case strings.HasPrefix(data, CreateUserRole):
		users.HandleCreateRole(ctx, b, callback, h)
	case strings.HasPrefix(data, EditUserEmail):
		users.HandleEditField(ctx, b, callback, h, "edit_user_email", "Введите новый email:")
	case strings.HasPrefix(data, EditUserPhone):
		users.HandleEditField(ctx, b, callback, h, "edit_user_phone", "Введите новый телефон:")
	case strings.HasPrefix(data, EditUserFirstName):
		users.HandleEditField(ctx, b, callback, h, "edit_user_first_name", "Введите новое имя:")
	case strings.HasPrefix(data, EditUserLastName):
		users.HandleEditField(ctx, b, callback, h, "edit_user_last_name", "Введите новую фамилию:")
	case strings.HasPrefix(data, EditUser):
		users.HandleEditMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, SetUserRole):
		users.HandleSetRole(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeactivate):
		users.HandleConfirmDeactivate(ctx, b, callback, h)
	case strings.HasPrefix(data, DeactivateUser):
		users.HandleDeactivate(ctx, b, callback, h)
	case strings.HasPrefix(data, ResetPassword):
		users.HandleResetPassword(ctx, b, callback, h)

	// ===== Payments =====
	case strings.HasPrefix(data, PaymentsPage):
		payments.HandlePage(ctx, b, callback, h)
	case strings.HasPrefix(data, PaymentsMonth):
		payments.HandleMonth(ctx, b, callback, h)
	case data == PaymentsAdd:
		payments.HandleAdd(ctx, b, callback, h)
	case data == PaymentsStudent:
		payments.HandleStudentPrompt(ctx, b, callback, h)
	case data == PaymentsClearStudent:
		payments.HandleClearStudent(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeletePayment):
		payments.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, DeletePayment):
		payments.HandleDelete(ctx, b, callback, h)
	case data == BackToPayments:
		payments.HandleBack(ctx, b, callback, h)

	// ===== Pricing =====
	case strings.HasPrefix(data, PricingPage):
		pricing.HandlePage(ctx, b, callback, h)
	case data == PricingToggleActive:
		pricing.HandleToggleActiveFilter(ctx, b, callback, h)
	case data == PricingSearch:
		pricing.HandleSearchPrompt(ctx, b, callback, h)
	case data == PricingSearchClear:
		pricing.HandleSearchClear(ctx, b, callback, h)
	case data == PricingAdd:
		pricing.HandleAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, PricingSubject):
		pricing.HandleSubjectChosen(ctx, b, callback, h)
	case strings.HasPrefix(data, PricingEditPrices):
		pricing.HandleEditPrices(ctx, b, callback, h)
	case strings.HasPrefix(data, PricingToggle):
		pricing.HandleToggle(ctx, b, callback, h)
	case strings.HasPrefix(data, EditPricing):
		pricing.HandleEditMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeletePricing):
		pricing.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, DeletePricing):
		pricing.HandleDelete(ctx, b, callback, h)
	case data == PricingPopulate:
		pricing.HandlePopulate(ctx, b, callback, h)
	case data == PricingPopulateConfirm:
		pricing.HandlePopulateConfirm(ctx, b, callback, h)
	case data == BackToPricing:
		pricing.HandleBack(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
