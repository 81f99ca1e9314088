// Package params разбирает параметры видимого набора из строки запроса.
// Непонятные или отсутствующие значения заменяются значениями по
// умолчанию, ошибок разбора наружу не бывает.
package params

import (
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

// FromRequest собирает query.Params из строки запроса.
// Поддерживаемые параметры: search, status, sort_field, sort_direction, page.
func FromRequest(r *http.Request) query.Params {
	q := r.URL.Query()

	p := query.Params{
		SearchTerm:    q.Get("search"),
		StatusFilter:  q.Get("status"),
		SortField:     q.Get("sort_field"),
		SortDirection: q.Get("sort_direction"),
		Page:          1,
	}

	switch p.StatusFilter {
	case models.StatusActive, models.StatusExpired, query.StatusFilterAll:
	default:
		p.StatusFilter = query.StatusFilterAll
	}

	switch p.SortField {
	case query.SortByEmail, query.SortByStartDate, query.SortByEndDate, query.SortByStatus:
	default:
		p.SortField = query.SortByEmail
	}

	switch p.SortDirection {
	case query.DirectionAsc, query.DirectionDesc:
	default:
		p.SortDirection = query.DirectionAsc
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}

	return p
}
