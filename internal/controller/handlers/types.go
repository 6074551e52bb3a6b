package handlers

import (
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	authService    *service.AuthService
	userService    *service.UserService
	paymentService *service.PaymentService
	pricingService *service.PricingService
	screens        *service.ScreenManager
	stateManager   *state.Manager
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	authService *service.AuthService,
	userService *service.UserService,
	paymentService *service.PaymentService,
	pricingService *service.PricingService,
	screens *service.ScreenManager,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:    authService,
		userService:    userService,
		paymentService: paymentService,
		pricingService: pricingService,
		screens:        screens,
		stateManager:   stateManager,
		logger:         logger,
	}
}
