package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// UserService операции управления пользователями платформы
type UserService struct {
	client *platform.Client
	logger *zap.Logger
}

func NewUserService(client *platform.Client, logger *zap.Logger) *UserService {
	return &UserService{
		client: client,
		logger: logger,
	}
}

// List возвращает страницу пользователей с серверными фильтрами
func (s *UserService) List(ctx context.Context, token string, filters model.Filters) (platform.ListPage[model.User], error) {
	return s.client.WithToken(token).ListUsers(ctx, filters)
}

// Create создаёт пользователя
func (s *UserService) Create(ctx context.Context, token string, input model.UserInput) (*model.User, error) {
	user, err := s.client.WithToken(token).CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)
	return user, nil
}

// Update обновляет пользователя
func (s *UserService) Update(ctx context.Context, token string, id int64, input model.UserInput) (*model.User, error) {
	user, err := s.client.WithToken(token).UpdateUser(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated",
		zap.Int64("user_id", id),
		zap.String("username", input.Username),
	)
	return user, nil
}

// Deactivate деактивирует пользователя
func (s *UserService) Deactivate(ctx context.Context, token string, id int64) error {
	if err := s.client.WithToken(token).DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deactivated", zap.Int64("user_id", id))
	return nil
}

// ResetPassword сбрасывает пароль пользователя
func (s *UserService) ResetPassword(ctx context.Context, token string, id int64, newPassword string) error {
	if err := s.client.WithToken(token).ResetPassword(ctx, id, newPassword); err != nil {
		return err
	}

	s.logger.Info("User password reset", zap.Int64("user_id", id))
	return nil
}

// MatchUser локальный поиск по пользователям: логин, почта, полное имя.
// query уже приведён к нижнему регистру.
func MatchUser(user model.User, query string) bool {
	if strings.Contains(strings.ToLower(user.Username), query) {
		return true
	}
	if strings.Contains(strings.ToLower(user.Email), query) {
		return true
	}
	fullName := strings.ToLower(user.FirstName + " " + user.LastName)
	return strings.Contains(fullName, query)
}
