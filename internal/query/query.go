// Package query реализует конвейер построения видимого набора подписок:
// поиск по подстроке, фильтр по статусу, устойчивая сортировка и
// пагинация фиксированного размера. Конвейер без состояния: видимая
// страница каждый раз пересчитывается из актуального снимка коллекции.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// PageSize — фиксированный размер страницы.
const PageSize = 10

// Поля сортировки.
const (
	SortByEmail     = "email"
	SortByStartDate = "startDate"
	SortByEndDate   = "endDate"
	SortByStatus    = "status"
)

// Направления сортировки.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// StatusFilterAll пропускает записи с любым статусом.
const StatusFilterAll = "all"

// Params — явные параметры запроса. Никакого скрытого состояния:
// всё, что влияет на видимый набор, передаётся здесь.
type Params struct {
	SearchTerm    string // Подстрока для поиска по email или статусу, без учёта регистра
	StatusFilter  string // all | active | expired
	SortField     string // email | startDate | endDate | status
	SortDirection string // asc | desc
	Page          int    // Номер страницы, начиная с 1
}

// Result — видимая страница и метаданные пагинации.
type Result struct {
	Page          []models.Subscription `json:"entries"`
	TotalPages    int                   `json:"total_pages"`
	FilteredCount int                   `json:"filtered_count"`
}

// Filtered применяет поиск и фильтр по статусу с сохранением исходного
// порядка. Этот набор (до пагинации) используется экспортом и выбором
// "выделить всё".
func Filtered(records []models.Subscription, p Params) []models.Subscription {
	term := strings.ToLower(p.SearchTerm)

	res := make([]models.Subscription, 0, len(records))
	for _, rec := range records {
		if term != "" &&
			!strings.Contains(strings.ToLower(rec.Email), term) &&
			!strings.Contains(strings.ToLower(rec.Status), term) {
			continue
		}
		if p.StatusFilter != "" && p.StatusFilter != StatusFilterAll && rec.Status != p.StatusFilter {
			continue
		}
		res = append(res, rec)
	}
	return res
}

// FilteredIDs возвращает id отфильтрованного набора — ровно то, что
// выделяет операция "выделить всё".
func FilteredIDs(records []models.Subscription, p Params) []string {
	filtered := Filtered(records, p)
	ids := make([]string, 0, len(filtered))
	for _, rec := range filtered {
		ids = append(ids, rec.ID)
	}
	return ids
}

// Run прогоняет полный конвейер: фильтрация, сортировка, пагинация.
// Сортировка устойчивая: записи с равными ключами сохраняют исходный
// относительный порядок. Страница за пределами диапазона — пустая.
func Run(records []models.Subscription, p Params) Result {
	filtered := Filtered(records, p)
	sortRecords(filtered, p)

	totalPages := (len(filtered) + PageSize - 1) / PageSize

	page := p.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(filtered) {
		return Result{Page: []models.Subscription{}, TotalPages: totalPages, FilteredCount: len(filtered)}
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Page:          filtered[start:end],
		TotalPages:    totalPages,
		FilteredCount: len(filtered),
	}
}

func sortRecords(records []models.Subscription, p Params) {
	// collate.Collator не потокобезопасен, поэтому на каждый вызов свой
	col := collate.New(language.English)
	desc := p.SortDirection == DirectionDesc

	less := func(a, b models.Subscription) bool {
		switch p.SortField {
		case SortByStartDate:
			return a.StartDate.Before(b.StartDate)
		case SortByEndDate:
			return a.EndDate.Before(b.EndDate)
		case SortByStatus:
			return col.CompareString(a.Status, b.Status) < 0
		default:
			return col.CompareString(a.Email, b.Email) < 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
