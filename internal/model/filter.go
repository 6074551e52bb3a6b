package model

// Filters активные критерии фильтрации экрана со списком.
// Любое изменение критерия сбрасывает страницу на первую,
// кроме самой навигации по страницам: размер выборки мог измениться.
type Filters struct {
	Month      int    // 0 — все месяцы
	Year       int    // 0 — все годы
	Search     string // локальный поиск, не уходит на сервер
	Role       string
	Status     string
	ActiveOnly *bool // nil — без фильтра по активности
	Page       int   // zero-based
	PageSize   int
}

func (f *Filters) SetMonth(month int) {
	f.Month = month
	f.Page = 0
}

func (f *Filters) SetYear(year int) {
	f.Year = year
	f.Page = 0
}

func (f *Filters) SetSearch(search string) {
	f.Search = search
	f.Page = 0
}

func (f *Filters) SetRole(role string) {
	f.Role = role
	f.Page = 0
}

func (f *Filters) SetStatus(status string) {
	f.Status = status
	f.Page = 0
}

func (f *Filters) SetActiveOnly(active *bool) {
	f.ActiveOnly = active
	f.Page = 0
}

// SetPage единственный сеттер, не сбрасывающий страницу
func (f *Filters) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	f.Page = page
}

// TotalPages считает количество страниц для total записей
func (f *Filters) TotalPages(total int) int {
	if f.PageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + f.PageSize - 1) / f.PageSize
}

// ClampPage прижимает страницу к допустимому диапазону для total записей
func (f *Filters) ClampPage(total int) {
	totalPages := f.TotalPages(total)
	if totalPages == 0 {
		f.Page = 0
		return
	}
	if f.Page >= totalPages {
		f.Page = totalPages - 1
	}
	if f.Page < 0 {
		f.Page = 0
	}
}

// Skip смещение для серверной пагинации skip/limit
func (f *Filters) Skip() int {
	return f.Page * f.PageSize
}
