package service

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// LessonService загрузка занятий для статистики
type LessonService struct {
	client *platform.Client
	logger *zap.Logger
}

func NewLessonService(client *platform.Client, logger *zap.Logger) *LessonService {
	return &LessonService{
		client: client,
		logger: logger,
	}
}

// List возвращает занятия за выбранный период
func (s *LessonService) List(ctx context.Context, token string, filters model.Filters) (platform.ListPage[model.Lesson], error) {
	lessons, err := s.client.WithToken(token).Lessons(ctx, filters.Month, filters.Year)
	if err != nil {
		return platform.ListPage[model.Lesson]{}, err
	}
	return platform.ListPage[model.Lesson]{Items: lessons, Total: len(lessons)}, nil
}
