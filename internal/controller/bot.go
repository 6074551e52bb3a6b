package controller

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/handlers"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller/state"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	authService *service.AuthService,
	userService *service.UserService,
	paymentService *service.PaymentService,
	pricingService *service.PricingService,
	screens *service.ScreenManager,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		authService,
		userService,
		paymentService,
		pricingService,
		screens,
		stateManager,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		authService,
		userService,
		paymentService,
		pricingService,
		screens,
		stateAdapter,
		logger,
		cmdHandlers.HandleDashboard,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Экраны админки
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dashboard", bot.MatchTypeExact, c.handlers.HandleDashboard)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/users", bot.MatchTypeExact, c.handlers.HandleUsers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/payments", bot.MatchTypeExact, c.handlers.HandlePayments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pricing", bot.MatchTypeExact, c.handlers.HandlePricing)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "login", Description: "🔐 Войти в аккаунт платформы"},
		{Command: "dashboard", Description: "📊 Статистика занятий"},
		{Command: "users", Description: "👥 Пользователи платформы"},
		{Command: "payments", Description: "💰 Платежи студентов"},
		{Command: "pricing", Description: "💵 Прайс по предметам"},
		{Command: "logout", Description: "🚪 Выйти из аккаунта"},
		{Command: "cancel", Description: "✖️ Отменить операцию"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
