package service

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// PaymentService операции с платежами студентов
type PaymentService struct {
	client *platform.Client
	logger *zap.Logger
}

func NewPaymentService(client *platform.Client, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		client: client,
		logger: logger,
	}
}

// List возвращает платежи по фильтрам экрана. Если задан только студент,
// без месяца и года, берётся история студента за всё время.
func (s *PaymentService) List(ctx context.Context, token string, filters model.Filters) (platform.ListPage[model.Payment], error) {
	client := s.client.WithToken(token)

	var summary *model.PaymentsSummary
	var err error
	if filters.Search != "" && filters.Month == 0 && filters.Year == 0 {
		summary, err = client.StudentPayments(ctx, filters.Search)
	} else {
		summary, err = client.MonthlyPayments(ctx, filters.Month, filters.Year, filters.Search)
	}
	if err != nil {
		return platform.ListPage[model.Payment]{}, err
	}

	total := summary.TotalPayments
	if total == 0 {
		total = len(summary.Payments)
	}

	return platform.ListPage[model.Payment]{
		Items:       summary.Payments,
		Total:       total,
		TotalAmount: summary.TotalAmount,
		Wrapped:     true,
	}, nil
}

// StudentTotal возвращает сумму платежей студента за всё время
func (s *PaymentService) StudentTotal(ctx context.Context, token, studentName string) (*model.PaymentsSummary, error) {
	return s.client.WithToken(token).StudentPayments(ctx, studentName)
}

// Create записывает платёж
func (s *PaymentService) Create(ctx context.Context, token string, input model.PaymentInput) (*model.Payment, error) {
	payment, err := s.client.WithToken(token).CreatePayment(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.String("student", input.StudentName),
		zap.Float64("amount", input.Amount),
	)
	return payment, nil
}

// Delete удаляет платёж
func (s *PaymentService) Delete(ctx context.Context, token string, id int64) error {
	if err := s.client.WithToken(token).DeletePayment(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Payment deleted", zap.Int64("payment_id", id))
	return nil
}
