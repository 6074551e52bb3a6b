package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testItem struct {
	ID   int64
	Name string
}

func matchName(item testItem, query string) bool {
	return strings.Contains(strings.ToLower(item.Name), query)
}

func makeItems(count int) []testItem {
	items := make([]testItem, count)
	for i := range items {
		items[i] = testItem{ID: int64(i + 1), Name: fmt.Sprintf("item-%d", i+1)}
	}
	return items
}

func staticFetcher(items []testItem) Fetcher[testItem] {
	return func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		return platform.ListPage[testItem]{Items: items, Total: len(items)}, nil
	}
}

func TestReloadLoadsItems(t *testing.T) {
	c := NewListController(10, false, staticFetcher(makeItems(3)), matchName, "не удалось", zap.NewNop())

	require.True(t, c.Reload(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, 3, snap.Total)
	assert.Empty(t, snap.Err)
}

func TestReloadFetchErrorUsesFallbackText(t *testing.T) {
	fetch := func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		return platform.ListPage[testItem]{}, errors.New("connection refused")
	}
	c := NewListController(10, false, fetch, matchName, "не удалось загрузить список", zap.NewNop())

	require.True(t, c.Reload(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, PhaseLoadFailed, snap.Phase)
	assert.Equal(t, "не удалось загрузить список", snap.Err)
}

// Два перекрывающихся запроса: пока первый висит, уходит второй.
// Ответ первого должен быть отброшен, в снимке остаются данные второго.
func TestReloadDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	firstInFlight := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	fetch := func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstInFlight)
			<-release
			return platform.ListPage[testItem]{
				Items: []testItem{{ID: 1, Name: "stale"}},
				Total: 1,
			}, nil
		}
		return platform.ListPage[testItem]{
			Items: []testItem{{ID: 2, Name: "fresh"}},
			Total: 1,
		}, nil
	}

	c := NewListController(10, false, fetch, matchName, "не удалось", zap.NewNop())

	firstDone := make(chan bool)
	go func() {
		firstDone <- c.Reload(context.Background())
	}()

	// Ждём пока первый запрос действительно повиснет в fetch
	<-firstInFlight

	require.True(t, c.Reload(context.Background()), "second reload must win")

	close(release)
	assert.False(t, <-firstDone, "first reload must report dropped response")

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fresh", snap.Items[0].Name)
}

func TestSnapshotLocalSearch(t *testing.T) {
	items := []testItem{
		{ID: 1, Name: "Math"},
		{ID: 2, Name: "English"},
		{ID: 3, Name: "Mathematics Advanced"},
	}
	c := NewListController(10, false, staticFetcher(items), matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	// Поиск локальный и регистронезависимый
	c.UpdateFilters(func(f *model.Filters) { f.SetSearch("MATH") })

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Total)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(1), snap.Items[0].ID)
	assert.Equal(t, int64(3), snap.Items[1].ID)
}

func TestSnapshotLocalPagination(t *testing.T) {
	c := NewListController(2, false, staticFetcher(makeItems(5)), matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.TotalPages)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(1), snap.Items[0].ID)

	require.True(t, c.SetPage(2))
	snap = c.Snapshot()
	require.Len(t, snap.Items, 1, "last page holds the remainder")
	assert.Equal(t, int64(5), snap.Items[0].ID)
}

func TestSnapshotUnpaginatedWhenPageSizeZero(t *testing.T) {
	c := NewListController(0, false, staticFetcher(makeItems(7)), nil, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	snap := c.Snapshot()
	assert.Len(t, snap.Items, 7)
}

func TestSetPageClampsToBounds(t *testing.T) {
	c := NewListController(2, false, staticFetcher(makeItems(5)), matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	// Выход за верхнюю границу прижимается к последней странице
	require.True(t, c.SetPage(99))
	assert.Equal(t, 2, c.Snapshot().Page)

	// Повторное прижатие к той же странице — no-op
	assert.False(t, c.SetPage(99))

	// Отрицательная страница прижимается к первой
	require.True(t, c.SetPage(-5))
	assert.Equal(t, 0, c.Snapshot().Page)
}

func TestFilterChangeResetsPage(t *testing.T) {
	c := NewListController(2, false, staticFetcher(makeItems(5)), matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))
	require.True(t, c.SetPage(2))

	c.UpdateFilters(func(f *model.Filters) { f.SetSearch("item") })

	assert.Equal(t, 0, c.Filters().Page)
}

func TestMutateSuccessReloads(t *testing.T) {
	var mu sync.Mutex
	fetches := 0
	fetch := func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		return platform.ListPage[testItem]{Items: makeItems(2), Total: 2}, nil
	}

	c := NewListController(10, false, fetch, matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	errText, ok := c.Mutate(context.Background(), func(ctx context.Context) error {
		return nil
	}, "не удалось создать")

	assert.True(t, ok)
	assert.Empty(t, errText)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, fetches, "successful mutation must refetch the list")
}

func TestMutateFailureKeepsList(t *testing.T) {
	var mu sync.Mutex
	fetches := 0
	fetch := func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		return platform.ListPage[testItem]{Items: makeItems(2), Total: 2}, nil
	}

	c := NewListController(10, false, fetch, matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	errText, ok := c.Mutate(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	}, "не удалось создать")

	assert.False(t, ok)
	assert.Equal(t, "не удалось создать", errText)

	snap := c.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Len(t, snap.Items, 2)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fetches, "failed mutation must not refetch")
}

func TestServerSideSkipsLocalSlicing(t *testing.T) {
	// Сервер уже отдал страницу: 20 записей из 45
	fetch := func(ctx context.Context, filters model.Filters) (platform.ListPage[testItem], error) {
		return platform.ListPage[testItem]{Items: makeItems(20), Total: 45}, nil
	}
	c := NewListController[testItem](20, true, fetch, nil, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))

	snap := c.Snapshot()
	assert.Len(t, snap.Items, 20)
	assert.Equal(t, 45, snap.Total)
	assert.Equal(t, 3, snap.TotalPages)
}

func TestResetClearsState(t *testing.T) {
	c := NewListController(2, false, staticFetcher(makeItems(5)), matchName, "не удалось", zap.NewNop())
	require.True(t, c.Reload(context.Background()))
	c.UpdateFilters(func(f *model.Filters) { f.SetSearch("item") })

	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Filters.Search)
	assert.Equal(t, 2, snap.Filters.PageSize, "page size survives reset")
}
