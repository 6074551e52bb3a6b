package model

import "time"

type Pricing struct {
	ID              int64     `json:"id"`
	Subject         string    `json:"subject"`
	IndividualPrice float64   `json:"individual_price"`
	GroupPrice      float64   `json:"group_price"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// PricingInput данные формы создания/редактирования цены
type PricingInput struct {
	Subject         string  `json:"subject,omitempty"`
	IndividualPrice float64 `json:"individual_price"`
	GroupPrice      float64 `json:"group_price"`
	Currency        string  `json:"currency,omitempty"`
	IsActive        bool    `json:"is_active"`
}
