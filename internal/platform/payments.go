package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// MonthlyPayments возвращает платежи с гибкой фильтрацией:
// без фильтров, месяц+год, имя студента или всё вместе
func (c *Client) MonthlyPayments(ctx context.Context, month, year int, studentName string) (*model.PaymentsSummary, error) {
	query := url.Values{}
	if month > 0 {
		query.Set("month", strconv.Itoa(month))
	}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}
	if studentName != "" {
		query.Set("student_name", studentName)
	}

	var summary model.PaymentsSummary
	if err := c.getJSON(ctx, "/payments/monthly", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// StudentPayments возвращает все платежи студента за всё время с итогом
func (c *Client) StudentPayments(ctx context.Context, studentName string) (*model.PaymentsSummary, error) {
	var summary model.PaymentsSummary
	path := "/payments/student/" + url.PathEscape(studentName)
	if err := c.getJSON(ctx, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreatePayment записывает платёж
func (c *Client) CreatePayment(ctx context.Context, input model.PaymentInput) (*model.Payment, error) {
	var payment model.Payment
	if err := c.postJSON(ctx, "/payments/", input, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment удаляет платёж
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/payments/%d", id))
}
