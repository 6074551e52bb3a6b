package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSettersResetPage(t *testing.T) {
	f := Filters{Page: 3, PageSize: 10}

	f.SetMonth(5)
	assert.Equal(t, 0, f.Page)

	f.SetPage(3)
	f.SetSearch("ivan")
	assert.Equal(t, 0, f.Page)

	f.SetPage(3)
	f.SetRole("teacher")
	assert.Equal(t, 0, f.Page)

	f.SetPage(3)
	active := true
	f.SetActiveOnly(&active)
	assert.Equal(t, 0, f.Page)
}

func TestSetPageKeepsFilters(t *testing.T) {
	f := Filters{Month: 9, Year: 2026, Search: "ivan", PageSize: 10}
	f.SetPage(2)

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 9, f.Month)
	assert.Equal(t, "ivan", f.Search)

	f.SetPage(-1)
	assert.Equal(t, 0, f.Page)
}

func TestTotalPages(t *testing.T) {
	f := Filters{PageSize: 20}

	assert.Equal(t, 0, f.TotalPages(0))
	assert.Equal(t, 1, f.TotalPages(1))
	assert.Equal(t, 1, f.TotalPages(20))
	assert.Equal(t, 2, f.TotalPages(21))
	assert.Equal(t, 3, f.TotalPages(45))

	unlimited := Filters{PageSize: 0}
	assert.Equal(t, 0, unlimited.TotalPages(100), "page size 0 disables pagination")
}

func TestClampPage(t *testing.T) {
	f := Filters{Page: 5, PageSize: 20}

	// 45 записей — 3 страницы, последняя имеет индекс 2
	f.ClampPage(45)
	assert.Equal(t, 2, f.Page)

	// Пустой список прижимает к первой странице
	f.ClampPage(0)
	assert.Equal(t, 0, f.Page)
}

func TestSkip(t *testing.T) {
	f := Filters{Page: 2, PageSize: 20}
	assert.Equal(t, 40, f.Skip())

	f.SetPage(0)
	assert.Equal(t, 0, f.Skip())
}
