package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"github.com/Freeeeeet/institute_admin_bot/internal/repository"
	"go.uber.org/zap"
)

// ErrNotAuthorized пользователь бота не залогинен на платформе
var ErrNotAuthorized = errors.New("not authorized")

// Сессия живёт неделю; потом просим залогиниться заново
const sessionTTL = 7 * 24 * time.Hour

// AuthService логин/логаут на платформе и хранение сессий в нашей базе
type AuthService struct {
	client      *platform.Client
	sessionRepo *repository.SessionRepository
	logger      *zap.Logger
}

func NewAuthService(client *platform.Client, sessionRepo *repository.SessionRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		client:      client,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Login авторизуется на платформе и сохраняет сессию для Telegram-пользователя
func (s *AuthService) Login(ctx context.Context, telegramID int64, username, password string) (*model.Session, error) {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		TelegramID: telegramID,
		Username:   username,
		Token:      result.AccessToken,
		ExpiresAt:  time.Now().Add(sessionTTL),
	}
	if result.User != nil {
		session.Role = result.User.Role
		session.Username = result.User.Username
	} else {
		// Логин не вернул пользователя — спрашиваем /user/me
		me, meErr := s.client.WithToken(result.AccessToken).Me(ctx)
		if meErr == nil && me != nil {
			session.Role = me.Role
			session.Username = me.Username
		}
	}

	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", session.Username),
		zap.String("role", session.Role),
	)

	return session, nil
}

// Logout завершает сессию на платформе и удаляет её из базы
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	session, err := s.sessionRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil
	}

	// Платформе сообщаем по возможности; свою запись удаляем в любом случае
	if err := s.client.WithToken(session.Token).Logout(ctx); err != nil {
		s.logger.Warn("Platform logout failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	if err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Session возвращает действующую сессию или ErrNotAuthorized
func (s *AuthService) Session(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.sessionRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.Expired() {
		return nil, ErrNotAuthorized
	}
	return session, nil
}

// Drop удаляет сессию без обращения к платформе (токен протух)
func (s *AuthService) Drop(ctx context.Context, telegramID int64) {
	if err := s.sessionRepo.Delete(ctx, telegramID); err != nil {
		s.logger.Error("Failed to drop session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

// CleanupExpired удаляет истёкшие сессии, возвращает сколько удалено
func (s *AuthService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return removed, nil
}
