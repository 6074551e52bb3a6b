package platform

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		fallback string
		want     string
	}{
		{
			name:     "массив ошибок валидации",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":[{"msg":"required"},{"msg":"too short"}]}`,
			fallback: "failed",
			want:     "required, too short",
		},
		{
			name:     "строковый detail",
			status:   http.StatusNotFound,
			body:     `{"detail":"not found"}`,
			fallback: "failed",
			want:     "not found",
		},
		{
			name:     "поле message",
			status:   http.StatusInternalServerError,
			body:     `{"message":"backend exploded"}`,
			fallback: "failed",
			want:     "backend exploded",
		},
		{
			name:     "пустое тело — запасной текст",
			status:   http.StatusInternalServerError,
			body:     `{}`,
			fallback: "failed",
			want:     "failed",
		},
		{
			name:     "массив важнее message",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":[{"msg":"bad email"}],"message":"ignored"}`,
			fallback: "failed",
			want:     "bad email",
		},
		{
			name:     "строковый detail важнее message",
			status:   http.StatusBadRequest,
			body:     `{"detail":"duplicate","message":"ignored"}`,
			fallback: "failed",
			want:     "duplicate",
		},
		{
			name:     "элемент без msg сериализуется целиком",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":[{"loc":["body","email"]},{"msg":"too short"}]}`,
			fallback: "failed",
			want:     `{"loc":["body","email"]}, too short`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, Normalize(err, tt.fallback))
		})
	}
}

func TestNormalizeNetworkError(t *testing.T) {
	err := networkError(errors.New("connection refused"))
	assert.Equal(t, "запрос не удался", Normalize(err, "запрос не удался"))
}

func TestNormalizePlainError(t *testing.T) {
	assert.Equal(t, "fallback", Normalize(errors.New("boom"), "fallback"))
}

func TestDecodeAPIErrorKinds(t *testing.T) {
	validation := decodeAPIError(http.StatusUnprocessableEntity, []byte(`{"detail":[{"msg":"x"}]}`))
	assert.Equal(t, KindValidation, validation.Kind)

	conflict := decodeAPIError(http.StatusConflict, []byte(`{"detail":"already exists"}`))
	assert.Equal(t, KindConflict, conflict.Kind)
	assert.True(t, IsConflict(conflict))

	badRequest := decodeAPIError(http.StatusBadRequest, []byte(`{"detail":"duplicate"}`))
	assert.True(t, IsConflict(badRequest))

	server := decodeAPIError(http.StatusInternalServerError, []byte(`{}`))
	assert.Equal(t, KindServer, server.Kind)
	assert.False(t, IsConflict(server))
}

func TestDecodeAPIErrorGarbageBody(t *testing.T) {
	err := decodeAPIError(http.StatusBadGateway, []byte("<html>502</html>"))
	require.NotNil(t, err)
	assert.Equal(t, KindServer, err.Kind)
	assert.Equal(t, "fallback", Normalize(err, "fallback"))
}

func TestIsUnauthorized(t *testing.T) {
	err := decodeAPIError(http.StatusUnauthorized, []byte(`{"detail":"token expired"}`))
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(errors.New("other")))
}
