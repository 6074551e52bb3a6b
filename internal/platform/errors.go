package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind вид ошибки API
type Kind int

const (
	KindNetwork    Kind = iota // транспортная ошибка, тела нет
	KindValidation             // 422: список ошибок валидации полей
	KindConflict               // 400/409: ресурс уже существует
	KindServer                 // всё остальное
)

// ValidationIssue одна ошибка валидации из массива detail
type ValidationIssue struct {
	Msg     string          `json:"msg"`
	Message string          `json:"message"`
	raw     json.RawMessage `json:"-"`
}

// Text возвращает сообщение ошибки или её полную сериализацию, если
// ни msg, ни message в объекте нет
func (i ValidationIssue) Text() string {
	if i.Msg != "" {
		return i.Msg
	}
	if i.Message != "" {
		return i.Message
	}
	return string(i.raw)
}

// APIError структурированная ошибка платформы. API отдаёт тело в одном из
// трёх форматов: {detail: [...]}, {detail: "строка"} или {message: "строка"} —
// здесь они сведены в закрытый набор вариантов.
type APIError struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Issues     []ValidationIssue
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	switch {
	case len(e.Issues) > 0:
		return fmt.Sprintf("api validation error (%d): %s", e.StatusCode, joinIssues(e.Issues))
	case e.Detail != "":
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// decodeAPIError разбирает тело ошибки из ответа API
func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Kind: kindForStatus(statusCode)}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}

	apiErr.Message = envelope.Message

	if len(envelope.Detail) > 0 {
		trimmed := strings.TrimSpace(string(envelope.Detail))
		switch {
		case strings.HasPrefix(trimmed, "["):
			var rawIssues []json.RawMessage
			if err := json.Unmarshal(envelope.Detail, &rawIssues); err == nil {
				for _, raw := range rawIssues {
					issue := ValidationIssue{raw: raw}
					_ = json.Unmarshal(raw, &issue)
					apiErr.Issues = append(apiErr.Issues, issue)
				}
				apiErr.Kind = KindValidation
			}
		default:
			var detail string
			if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
				apiErr.Detail = detail
			}
		}
	}

	return apiErr
}

func kindForStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadRequest, http.StatusConflict:
		return KindConflict
	}
	return KindServer
}

// networkError оборачивает транспортную ошибку без структурированного тела
func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, cause: err}
}

// Normalize превращает любую ошибку операции в одну строку для показа.
// Приоритет строго такой: массив ошибок валидации, строковый detail,
// поле message, затем переданный запасной текст.
func Normalize(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch {
	case len(apiErr.Issues) > 0:
		return joinIssues(apiErr.Issues)
	case apiErr.Detail != "":
		return apiErr.Detail
	case apiErr.Message != "":
		return apiErr.Message
	}
	return fallback
}

func joinIssues(issues []ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Text())
	}
	return strings.Join(parts, ", ")
}

// IsConflict проверяет что ресурс уже существует (для массовых операций
// такой конфликт считается пропуском, а не ошибкой)
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindConflict
}

// IsUnauthorized проверяет что сессия платформы истекла или недействительна
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
