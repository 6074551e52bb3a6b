package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// ListUsers возвращает страницу пользователей с серверными фильтрами.
// Поисковая строка фильтров на сервер не уходит — это локальный фильтр.
func (c *Client) ListUsers(ctx context.Context, filters model.Filters) (ListPage[model.User], error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(filters.Skip()))
	query.Set("limit", strconv.Itoa(filters.PageSize))
	if filters.Role != "" {
		query.Set("role", filters.Role)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}

	data, err := c.do(ctx, http.MethodGet, "/admin/users", query, nil)
	if err != nil {
		return ListPage[model.User]{}, err
	}
	return decodeList[model.User](data, "users")
}

// CreateUser создаёт пользователя
func (c *Client) CreateUser(ctx context.Context, input model.UserInput) (*model.User, error) {
	var user model.User
	if err := c.postJSON(ctx, "/admin/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser обновляет пользователя
func (c *Client) UpdateUser(ctx context.Context, id int64, input model.UserInput) (*model.User, error) {
	var user model.User
	if err := c.putJSON(ctx, fmt.Sprintf("/admin/users/%d", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser деактивирует пользователя
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// ResetPassword сбрасывает пароль пользователя
func (c *Client) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	body := map[string]string{"new_password": newPassword}
	return c.postJSON(ctx, fmt.Sprintf("/admin/users/%d/reset-password", id), body, nil)
}
