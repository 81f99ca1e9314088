// Package export предоставляет HTTP‑обработчик выгрузки подписок в CSV.
// Выгружается весь отфильтрованный набор без пагинации.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/params"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/csvexport"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

// Exporter определяет контракт выгрузки отфильтрованного набора в CSV.
type Exporter interface {
	ExportCSV(ctx context.Context, p query.Params) ([]byte, string, error)
}

// New возвращает HTTP‑обработчик выгрузки CSV. Ответ отдаётся как
// вложение с именем файла, привязанным к дате выгрузки.
//
// @Summary Выгрузить подписки в CSV
// @Tags subscriptions
// @Produce text/csv
// @Param search query string false "Подстрока для поиска по email или статусу"
// @Param status query string false "Фильтр по статусу: all, active, expired"
// @Success 200 {string} string "CSV с заголовком Email,Password,Start Date,End Date,Status"
// @Router /subscriptions/export [get]
func New(ctx context.Context, log *slog.Logger, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.export.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		data, filename, err := exporter.ExportCSV(ctx, params.FromRequest(r))
		if err != nil {
			log.Error("failed to export entries", sl.Err(err))
			render.JSON(w, r, response.Error("failed to export"))

			return
		}

		log.Info("exported entries", slog.String("filename", filename))
		w.Header().Set("Content-Type", csvexport.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
