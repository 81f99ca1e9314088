// Package remove предоставляет HTTP‑обработчик удаления подписки по её ID.
// Удаление отсутствующего id — no-op, в ответе deleted_count равен нулю.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// EntryRemover определяет контракт удаления записи подписки по её ID.
type EntryRemover interface {
	Remove(ctx context.Context, id string) (int64, error)
}

// New возвращает HTTP‑обработчик, который обрабатывает DELETE‑запрос
// на удаление подписки по ID.
//
// @Summary Удалить подписку по ID
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Уникальный ID подписки"
// @Success 200 {object} map[string]interface{} "deleted_count: число удалённых записей"
// @Router /subscriptions/{id} [delete]
func New(ctx context.Context, log *slog.Logger, remover EntryRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.remove.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("missing id in url")
			render.JSON(w, r, response.Error("missing id in url"))

			return
		}

		counter, err := remover.Remove(ctx, id)
		if err != nil {
			log.Error("failed to remove entry", sl.Err(err))
			render.JSON(w, r, response.Error("failed to remove"))

			return
		}

		log.Info("deleted entry", slog.String("id", id), slog.Int64("count", counter))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"deleted_count": counter,
		}))
	}
}
