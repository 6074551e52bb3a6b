package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Upsert сохраняет сессию; повторный логин перезаписывает старую
func (r *SessionRepository) Upsert(ctx context.Context, session *model.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	query := `
		INSERT INTO sessions (id, telegram_id, username, role, token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    role = EXCLUDED.role,
		    token = EXCLUDED.token,
		    expires_at = EXCLUDED.expires_at
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.ID,
		session.TelegramID,
		session.Username,
		session.Role,
		session.Token,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID получает сессию по Telegram ID
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT id, telegram_id, username, role, token, created_at, expires_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var session model.Session
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&session.ID,
		&session.TelegramID,
		&session.Username,
		&session.Role,
		&session.Token,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Сессии нет
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	return &session, nil
}

// Delete удаляет сессию пользователя
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	query := `DELETE FROM sessions WHERE telegram_id = $1`

	if _, err := r.pool.Exec(ctx, query, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// DeleteExpired удаляет истёкшие сессии, возвращает количество удалённых
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW()`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
