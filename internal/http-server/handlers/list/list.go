// Package list предоставляет HTTP‑обработчик видимой страницы подписок:
// поиск, фильтр по статусу, сортировка и пагинация задаются параметрами
// строки запроса.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/params"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

// Lister определяет контракт построения видимой страницы.
type Lister interface {
	List(ctx context.Context, p query.Params) query.Result
}

// New возвращает HTTP‑обработчик списка подписок.
//
// @Summary Получить страницу подписок
// @Description Возвращает страницу отфильтрованного и отсортированного набора вместе с метаданными пагинации
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param search query string false "Подстрока для поиска по email или статусу"
// @Param status query string false "Фильтр по статусу: all, active, expired"
// @Param sort_field query string false "Поле сортировки: email, startDate, endDate, status"
// @Param sort_direction query string false "Направление: asc или desc"
// @Param page query int false "Номер страницы, начиная с 1"
// @Success 200 {object} map[string]interface{} "entries, total_pages, filtered_count"
// @Router /subscriptions [get]
func New(ctx context.Context, log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.list.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p := params.FromRequest(r)
		res := lister.List(ctx, p)

		log.Info("listed entries",
			slog.Int("page", p.Page),
			slog.Int("filtered_count", res.FilteredCount),
			slog.Int("total_pages", res.TotalPages))
		render.JSON(w, r, response.StatusOKWithData(res))
	}
}
