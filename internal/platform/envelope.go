package platform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Списочные эндпоинты API отдают либо голый массив, либо объект-обёртку
// вида {<ресурс>: [...], total: N}. Форма определяется один раз здесь,
// дальше весь код работает с единым ListPage.

// ListPage нормализованный результат списочного эндпоинта
type ListPage[T any] struct {
	Items []T
	Total int
	// TotalAmount итоговая сумма, если эндпоинт её отдаёт (платежи)
	TotalAmount float64
	// Wrapped true, если ответ пришёл в объекте-обёртке с total
	Wrapped bool
}

// decodeList приводит тело списочного ответа к ListPage.
// key — имя поля с массивом в обёртке ("users", "pricing", "lessons").
// Если явного total в обёртке нет, берётся длина массива.
func decodeList[T any](data []byte, key string) (ListPage[T], error) {
	var page ListPage[T]

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &page.Items); err != nil {
			return page, fmt.Errorf("decode %s list: %w", key, err)
		}
		page.Total = len(page.Items)
		return page, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return page, fmt.Errorf("decode %s envelope: %w", key, err)
	}

	if raw, ok := envelope[key]; ok {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("decode %s items: %w", key, err)
		}
	}

	page.Wrapped = true
	page.Total = len(page.Items)
	if raw, ok := envelope["total"]; ok {
		var total int
		if err := json.Unmarshal(raw, &total); err == nil && total > 0 {
			page.Total = total
		}
	}

	return page, nil
}
