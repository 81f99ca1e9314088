// Package removebatch предоставляет HTTP‑обработчик массового удаления
// подписок: по явному списку id либо весь отфильтрованный набор целиком
// (операция "выделить всё и удалить").
package removebatch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/params"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

// RemoveBatchRequest — тело запроса массового удаления.
// При all_filtered=true список ids игнорируется, удаляется набор,
// описанный параметрами фильтра в строке запроса.
type RemoveBatchRequest struct {
	IDs         []string `json:"ids"`
	AllFiltered bool     `json:"all_filtered"`
}

// BatchRemover определяет контракт массового удаления записей.
type BatchRemover interface {
	RemoveBatch(ctx context.Context, ids []string) (int64, error)
	RemoveFiltered(ctx context.Context, p query.Params) (int64, error)
}

// New возвращает HTTP‑обработчик массового удаления подписок.
// Отсутствующие id пропускаются молча, в ответе deleted_count —
// фактическое число удалённых записей.
//
// @Summary Удалить несколько подписок
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body RemoveBatchRequest true "Список id или признак удаления всего отфильтрованного набора"
// @Success 200 {object} map[string]interface{} "deleted_count: число удалённых записей"
// @Router /subscriptions/batch-delete [post]
func New(ctx context.Context, log *slog.Logger, remover BatchRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.removebatch.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req RemoveBatchRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}
		log.Info("request body decoded",
			slog.Int("ids", len(req.IDs)), slog.Bool("all_filtered", req.AllFiltered))

		var counter int64
		if req.AllFiltered {
			counter, err = remover.RemoveFiltered(ctx, params.FromRequest(r))
		} else {
			counter, err = remover.RemoveBatch(ctx, req.IDs)
		}
		if err != nil {
			log.Error("failed to remove entries", sl.Err(err))
			render.JSON(w, r, response.Error("failed to remove"))

			return
		}

		log.Info("deleted entries", slog.Int64("count", counter))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"deleted_count": counter,
		}))
	}
}
