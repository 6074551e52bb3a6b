package platform

import (
	"context"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
)

// LoginResult ответ API на логин
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user,omitempty"`
}

// Login авторизуется на платформе по логину и паролю
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var result LoginResult
	if err := c.postJSON(ctx, "/user/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout завершает сессию на платформе
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/user/logout", nil, nil)
}

// Me возвращает текущего пользователя платформы
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.getJSON(ctx, "/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
