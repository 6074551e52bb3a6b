package callbacks

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления состоянием пользователей
type StateManager = callbacktypes.StateManager

// UserState представляет текущее состояние пользователя в диалоге
type UserState = callbacktypes.UserState

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	authService *service.AuthService,
	userService *service.UserService,
	paymentService *service.PaymentService,
	pricingService *service.PricingService,
	screens *service.ScreenManager,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	handleDashboard func(ctx context.Context, b *bot.Bot, update *models.Update),
) *Handler {
	inner := &callbacktypes.Handler{
		AuthService:     authService,
		UserService:     userService,
		PaymentService:  paymentService,
		PricingService:  pricingService,
		Screens:         screens,
		StateManager:    stateManager,
		Logger:          logger,
		HandleDashboard: handleDashboard,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	data := callback.Data

	h.Logger.Info("Callback received",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
