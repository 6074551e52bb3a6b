package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// Lessons возвращает занятия за период. Нулевой месяц или год
// означает "все" — фильтр не отправляется.
func (c *Client) Lessons(ctx context.Context, month, year int) ([]model.Lesson, error) {
	query := url.Values{}
	if month > 0 {
		query.Set("month", strconv.Itoa(month))
	}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	data, err := c.do(ctx, http.MethodGet, "/lessons", query, nil)
	if err != nil {
		return nil, err
	}

	page, err := decodeList[model.Lesson](data, "lessons")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
