package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// ListPricing возвращает прайс, при необходимости только активные позиции
func (c *Client) ListPricing(ctx context.Context, activeOnly *bool) (ListPage[model.Pricing], error) {
	query := url.Values{}
	if activeOnly != nil {
		query.Set("is_active", strconv.FormatBool(*activeOnly))
	}

	data, err := c.do(ctx, http.MethodGet, "/pricing", query, nil)
	if err != nil {
		return ListPage[model.Pricing]{}, err
	}
	return decodeList[model.Pricing](data, "pricing")
}

// CreatePricing создаёт позицию прайса
func (c *Client) CreatePricing(ctx context.Context, input model.PricingInput) (*model.Pricing, error) {
	var pricing model.Pricing
	if err := c.postJSON(ctx, "/pricing", input, &pricing); err != nil {
		return nil, err
	}
	return &pricing, nil
}

// UpdatePricing обновляет позицию прайса
func (c *Client) UpdatePricing(ctx context.Context, id int64, input model.PricingInput) (*model.Pricing, error) {
	var pricing model.Pricing
	if err := c.putJSON(ctx, fmt.Sprintf("/pricing/%d", id), input, &pricing); err != nil {
		return nil, err
	}
	return &pricing, nil
}

// DeletePricing удаляет позицию прайса
func (c *Client) DeletePricing(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/pricing/%d", id))
}
