package service

import (
	"context"
	"strings"
	"sync"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"go.uber.org/zap"
)

// Phase состояние экрана со списком
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadFailed
)

// Fetcher загружает страницу ресурса по текущим фильтрам
type Fetcher[T any] func(ctx context.Context, filters model.Filters) (platform.ListPage[T], error)

// Matcher локальный текстовый фильтр: подходит ли запись под строку поиска
type Matcher[T any] func(item T, query string) bool

// ListController управляет одним списочным экраном: фильтры -> загрузка ->
// показ -> мутация -> перезагрузка. Каждая загрузка получает монотонный
// номер; ответ, чей номер уже не последний, молча отбрасывается — побеждает
// последний отправленный запрос, а не последний пришедший ответ.
//
// Экран принадлежит одному пользователю бота, контроллер защищён мьютексом
// только от гонки между его же быстрыми нажатиями.
type ListController[T any] struct {
	mu      sync.Mutex
	filters model.Filters
	phase   Phase
	items   []T
	total   int
	amount  float64
	lastErr string
	seq     uint64

	fetch      Fetcher[T]
	match      Matcher[T]
	serverSide bool // пагинацию делает сервер (skip/limit), а не мы
	failText   string
	logger     *zap.Logger
}

// Snapshot срез состояния экрана для рендера
type Snapshot[T any] struct {
	Phase       Phase
	Items       []T // видимые записи: после локального поиска и пагинации
	Total       int
	TotalAmount float64
	Page        int
	TotalPages  int
	Err         string
	Filters     model.Filters
}

// NewListController создаёт контроллер списочного экрана.
// serverSide — пагинирует ли ресурс сервер; иначе страницы нарезаются
// локально уже после текстового поиска. failText — запасной текст ошибки
// загрузки этого ресурса.
func NewListController[T any](
	pageSize int,
	serverSide bool,
	fetch Fetcher[T],
	match Matcher[T],
	failText string,
	logger *zap.Logger,
) *ListController[T] {
	return &ListController[T]{
		filters:    model.Filters{PageSize: pageSize},
		phase:      PhaseIdle,
		fetch:      fetch,
		match:      match,
		serverSide: serverSide,
		failText:   failText,
		logger:     logger,
	}
}

// UpdateFilters применяет изменение фильтров под замком.
// Сеттеры model.Filters сами сбрасывают страницу на первую.
func (c *ListController[T]) UpdateFilters(update func(*model.Filters)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.filters)
}

// Filters возвращает копию текущих фильтров
func (c *ListController[T]) Filters() model.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetPage переходит на страницу с прижатием к границам.
// Возвращает false, если страница не изменилась (выход за границу — no-op).
func (c *ListController[T]) SetPage(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalPages := c.filters.TotalPages(c.visibleTotalLocked())
	if totalPages > 0 && page > totalPages-1 {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	if page == c.filters.Page {
		return false
	}
	c.filters.SetPage(page)
	return true
}

// Reload загружает список с текущими фильтрами. Возвращает false, если
// за время запроса фильтры успели измениться и ответ был отброшен.
// Фильтры снимаются в момент отправки, не из замыкания вызывающего.
func (c *ListController[T]) Reload(ctx context.Context) bool {
	token, filters := c.begin()

	page, err := c.fetch(ctx, filters)
	applied := c.commit(token, page, err)
	if !applied {
		c.logger.Debug("Stale list response dropped", zap.Uint64("token", token))
	}
	return applied
}

// Mutate выполняет мутацию (создание/изменение/удаление). При успехе список
// безусловно перезагружается с актуальными фильтрами — состояние всегда
// выводится заново из ответа сервера, локально список не правится.
// При ошибке возвращает нормализованный текст, список не трогается.
func (c *ListController[T]) Mutate(ctx context.Context, op func(context.Context) error, failText string) (string, bool) {
	if err := op(ctx); err != nil {
		return platform.Normalize(err, failText), false
	}
	c.Reload(ctx)
	return "", true
}

// Snapshot возвращает состояние экрана для рендера
func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.items
	if c.match != nil && c.filters.Search != "" {
		query := strings.ToLower(c.filters.Search)
		visible = make([]T, 0, len(c.items))
		for _, item := range c.items {
			if c.match(item, query) {
				visible = append(visible, item)
			}
		}
	}

	total := c.total
	if !c.serverSide {
		// Локальная пагинация: итог и страницы считаются после поиска
		total = len(visible)
		if c.filters.PageSize > 0 {
			start := c.filters.Skip()
			if start > len(visible) {
				start = len(visible)
			}
			end := start + c.filters.PageSize
			if end > len(visible) {
				end = len(visible)
			}
			visible = visible[start:end]
		}
	}

	return Snapshot[T]{
		Phase:       c.phase,
		Items:       visible,
		Total:       total,
		TotalAmount: c.amount,
		Page:        c.filters.Page,
		TotalPages:  c.filters.TotalPages(total),
		Err:         c.lastErr,
		Filters:     c.filters,
	}
}

// Reset сбрасывает экран к исходному состоянию (логаут)
func (c *ListController[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	pageSize := c.filters.PageSize
	c.filters = model.Filters{PageSize: pageSize}
	c.phase = PhaseIdle
	c.items = nil
	c.total = 0
	c.amount = 0
	c.lastErr = ""
	c.seq++
}

func (c *ListController[T]) begin() (uint64, model.Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.phase = PhaseLoading
	return c.seq, c.filters
}

func (c *ListController[T]) commit(token uint64, page platform.ListPage[T], err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Устаревший ответ: фильтры менялись после отправки запроса
	if token != c.seq {
		return false
	}

	if err != nil {
		c.phase = PhaseLoadFailed
		c.lastErr = platform.Normalize(err, c.failText)
		return true
	}

	c.items = page.Items
	c.total = page.Total
	c.amount = page.TotalAmount
	c.lastErr = ""
	c.phase = PhaseLoaded
	c.filters.ClampPage(c.visibleTotalLocked())
	return true
}

// visibleTotalLocked итог, от которого считаются страницы (под замком)
func (c *ListController[T]) visibleTotalLocked() int {
	if c.serverSide {
		return c.total
	}
	if c.match != nil && c.filters.Search != "" {
		query := strings.ToLower(c.filters.Search)
		count := 0
		for _, item := range c.items {
			if c.match(item, query) {
				count++
			}
		}
		return count
	}
	return len(c.items)
}
