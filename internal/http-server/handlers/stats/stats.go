// Package stats предоставляет HTTP‑обработчик сводных счётчиков панели.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// StatsProvider определяет контракт получения сводных счётчиков.
type StatsProvider interface {
	Stats(ctx context.Context) models.SubscriptionStats
}

// New возвращает HTTP‑обработчик сводки: всего записей, активных,
// истёкших.
//
// @Summary Получить сводку по подпискам
// @Tags subscriptions
// @Produce json
// @Success 200 {object} map[string]interface{} "total, active, expired"
// @Router /subscriptions/stats [get]
func New(ctx context.Context, log *slog.Logger, provider StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		res := provider.Stats(ctx)

		log.Info("collected stats", slog.Int("total", res.Total), slog.Int("active", res.Active))
		render.JSON(w, r, response.StatusOKWithData(res))
	}
}
