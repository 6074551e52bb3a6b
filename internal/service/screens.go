package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// Размеры страниц экранов
const (
	usersPageSize    = 20 // пагинирует сервер (skip/limit)
	paymentsPageSize = 10
	pricingPageSize  = 10
)

// Screens списочные экраны одного пользователя бота.
// Каждый экран владеет своими фильтрами и состоянием загрузки.
type Screens struct {
	Users     *ListController[model.User]
	Payments  *ListController[model.Payment]
	Pricing   *ListController[model.Pricing]
	Dashboard *ListController[model.Lesson]
}

// ScreenManager лениво создаёт и хранит экраны по Telegram ID.
// Токен сессии берётся в момент запроса, а не при создании экрана,
// поэтому перелогин не требует пересоздания контроллеров.
type ScreenManager struct {
	mu      sync.Mutex
	screens map[int64]*Screens

	auth     *AuthService
	users    *UserService
	payments *PaymentService
	pricing  *PricingService
	lessons  *LessonService
	logger   *zap.Logger
}

func NewScreenManager(
	auth *AuthService,
	users *UserService,
	payments *PaymentService,
	pricing *PricingService,
	lessons *LessonService,
	logger *zap.Logger,
) *ScreenManager {
	return &ScreenManager{
		screens:  make(map[int64]*Screens),
		auth:     auth,
		users:    users,
		payments: payments,
		pricing:  pricing,
		lessons:  lessons,
		logger:   logger,
	}
}

// For возвращает экраны пользователя, создавая их при первом обращении
func (m *ScreenManager) For(telegramID int64) *Screens {
	m.mu.Lock()
	defer m.mu.Unlock()

	if screens, ok := m.screens[telegramID]; ok {
		return screens
	}

	screens := m.build(telegramID)
	m.screens[telegramID] = screens
	return screens
}

// Reset сбрасывает экраны пользователя (логаут)
func (m *ScreenManager) Reset(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.screens, telegramID)
}

func (m *ScreenManager) build(telegramID int64) *Screens {
	users := NewListController(
		usersPageSize,
		true,
		func(ctx context.Context, f model.Filters) (platform.ListPage[model.User], error) {
			session, err := m.auth.Session(ctx, telegramID)
			if err != nil {
				return platform.ListPage[model.User]{}, err
			}
			return m.users.List(ctx, session.Token, f)
		},
		MatchUser,
		"Не удалось загрузить пользователей",
		m.logger,
	)

	// У платежей поисковая строка уходит на сервер (имя студента),
	// локального фильтра нет
	payments := NewListController(
		paymentsPageSize,
		false,
		func(ctx context.Context, f model.Filters) (platform.ListPage[model.Payment], error) {
			session, err := m.auth.Session(ctx, telegramID)
			if err != nil {
				return platform.ListPage[model.Payment]{}, err
			}
			return m.payments.List(ctx, session.Token, f)
		},
		nil,
		"Не удалось загрузить платежи",
		m.logger,
	)

	pricing := NewListController(
		pricingPageSize,
		false,
		func(ctx context.Context, f model.Filters) (platform.ListPage[model.Pricing], error) {
			session, err := m.auth.Session(ctx, telegramID)
			if err != nil {
				return platform.ListPage[model.Pricing]{}, err
			}
			return m.pricing.List(ctx, session.Token, f)
		},
		MatchPricing,
		"Не удалось загрузить прайс",
		m.logger,
	)

	// Дашборд без пагинации: статистика считается по всем занятиям периода
	dashboard := NewListController(
		0,
		false,
		func(ctx context.Context, f model.Filters) (platform.ListPage[model.Lesson], error) {
			session, err := m.auth.Session(ctx, telegramID)
			if err != nil {
				return platform.ListPage[model.Lesson]{}, err
			}
			return m.lessons.List(ctx, session.Token, f)
		},
		nil,
		"Не удалось загрузить данные дашборда",
		m.logger,
	)

	return &Screens{
		Users:     users,
		Payments:  payments,
		Pricing:   pricing,
		Dashboard: dashboard,
	}
}
