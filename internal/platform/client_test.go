package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, zap.NewNop())
}

func TestListUsersWrappedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "teacher", r.URL.Query().Get("role"))
		w.Write([]byte(`{"users":[{"id":1,"username":"amal"},{"id":2,"username":"rana"}],"total":45}`))
	})

	page, err := client.ListUsers(context.Background(), model.Filters{Role: "teacher", PageSize: 20})
	require.NoError(t, err)
	assert.True(t, page.Wrapped)
	assert.Equal(t, 45, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "amal", page.Items[0].Username)
}

func TestListUsersBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"username":"amal"}]`))
	})

	page, err := client.ListUsers(context.Background(), model.Filters{PageSize: 20})
	require.NoError(t, err)
	assert.False(t, page.Wrapped)
	// Без явного total берётся длина массива
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
}

func TestListUsersWrappedWithoutTotal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"id":1},{"id":2},{"id":3}]}`))
	})

	page, err := client.ListUsers(context.Background(), model.Filters{PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestWithTokenSetsAuthorization(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":7,"username":"admin","role":"admin"}`))
	})

	user, err := client.WithToken("secret-token").Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestCreateUserValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"msg":"username required"},{"msg":"password too short"}]}`))
	})

	_, err := client.CreateUser(context.Background(), model.UserInput{})
	require.Error(t, err)
	assert.Equal(t, "username required, password too short", Normalize(err, "не удалось создать"))
}

func TestDeletePricingConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/pricing/5", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"pricing is in use"}`))
	})

	err := client.DeletePricing(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, "pricing is in use", Normalize(err, "не удалось удалить"))
}

func TestLessonsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lessons", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		assert.Equal(t, "2026", r.URL.Query().Get("year"))
		w.Write([]byte(`{"lessons":[{"id":1,"subject":"Math","lesson_type":"individual","education_level":"middle","duration_minutes":60}]}`))
	})

	lessons, err := client.Lessons(context.Background(), 3, 2026)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Math", lessons[0].Subject)
	assert.Equal(t, 60, lessons[0].DurationMinutes)
}

func TestNetworkErrorSurfacesAsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // закрываем заранее, чтобы получить транспортную ошибку

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Lessons(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Equal(t, "не удалось загрузить занятия", Normalize(err, "не удалось загрузить занятия"))
}
