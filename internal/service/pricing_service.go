package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// PricingService операции с прайсом предметов
type PricingService struct {
	client *platform.Client
	logger *zap.Logger
}

func NewPricingService(client *platform.Client, logger *zap.Logger) *PricingService {
	return &PricingService{
		client: client,
		logger: logger,
	}
}

// List возвращает прайс с учётом фильтра по активности
func (s *PricingService) List(ctx context.Context, token string, filters model.Filters) (platform.ListPage[model.Pricing], error) {
	return s.client.WithToken(token).ListPricing(ctx, filters.ActiveOnly)
}

// Create создаёт позицию прайса
func (s *PricingService) Create(ctx context.Context, token string, input model.PricingInput) (*model.Pricing, error) {
	pricing, err := s.client.WithToken(token).CreatePricing(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Pricing created",
		zap.Int64("pricing_id", pricing.ID),
		zap.String("subject", pricing.Subject),
	)
	return pricing, nil
}

// Update обновляет позицию прайса
func (s *PricingService) Update(ctx context.Context, token string, id int64, input model.PricingInput) (*model.Pricing, error) {
	pricing, err := s.client.WithToken(token).UpdatePricing(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Pricing updated", zap.Int64("pricing_id", id))
	return pricing, nil
}

// Delete удаляет позицию прайса
func (s *PricingService) Delete(ctx context.Context, token string, id int64) error {
	if err := s.client.WithToken(token).DeletePricing(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Pricing deleted", zap.Int64("pricing_id", id))
	return nil
}

// PopulateReport итог массового заполнения прайса
type PopulateReport struct {
	Created int
	Skipped int
	Failed  int
}

// PopulateDefaults создаёт позиции прайса с ценами по умолчанию для всех
// предметов каталога. Конфликт "предмет уже есть" — это пропуск, а не
// ошибка; остальные ошибки считаются, но не прерывают обход.
func (s *PricingService) PopulateDefaults(ctx context.Context, token string) (PopulateReport, error) {
	client := s.client.WithToken(token)

	var report PopulateReport
	for _, subject := range model.SubjectNames() {
		input := model.PricingInput{
			Subject:         subject,
			IndividualPrice: model.DefaultIndividualPrice,
			GroupPrice:      model.DefaultGroupPrice,
			Currency:        "USD",
			IsActive:        true,
		}

		_, err := client.CreatePricing(ctx, input)
		switch {
		case err == nil:
			report.Created++
		case platform.IsConflict(err):
			report.Skipped++
		default:
			report.Failed++
			s.logger.Warn("Failed to create default pricing",
				zap.String("subject", subject),
				zap.Error(err))
		}
	}

	s.logger.Info("Default pricing populated",
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)

	return report, nil
}

// MatchPricing локальный поиск по прайсу: имя предмета.
// query уже приведён к нижнему регистру.
func MatchPricing(pricing model.Pricing, query string) bool {
	return strings.Contains(strings.ToLower(pricing.Subject), query)
}
