package model

import "time"

type Payment struct {
	ID          int64     `json:"id"`
	StudentName string    `json:"student_name"`
	Amount      float64   `json:"amount"`
	PaymentDate string    `json:"payment_date"` // YYYY-MM-DD, как отдаёт API
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentInput данные формы добавления платежа
type PaymentInput struct {
	StudentName string  `json:"student_name"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
}

// PaymentsSummary список платежей вместе с итогами за период
type PaymentsSummary struct {
	Payments      []Payment `json:"payments"`
	TotalPayments int       `json:"total_payments"`
	TotalAmount   float64   `json:"total_amount"`
}
