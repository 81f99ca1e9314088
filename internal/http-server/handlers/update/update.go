// Package update предоставляет HTTP‑обработчик редактирования подписки
// по её id. Дата начала записи сохраняется, статус пересчитывается.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// Updater определяет контракт редактирования записи подписки.
type Updater interface {
	Update(ctx context.Context, id string, req models.DummyEntry) (int64, error)
}

// New возвращает HTTP‑обработчик редактирования подписки по id из URL.
// Отсутствующий id — no-op: в ответе updated_count равен нулю.
//
// @Summary Отредактировать подписку по ID
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Уникальный ID подписки"
// @Param request body models.DummyEntry true "Новые данные подписки"
// @Success 200 {object} map[string]interface{} "updated_count: число заменённых записей"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Router /subscriptions/{id} [put]
func New(ctx context.Context, log *slog.Logger, updater Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.update.New"

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

		var req models.DummyEntry

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}
		log.Info("request body decoded", slog.String("id", id))

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}
		log.Info("all fields are validated")

		counter, err := updater.Update(ctx, id, req)
		if err != nil {
			log.Error("failed to update entry", sl.Err(err))
			render.JSON(w, r, response.Error("failed to update"))

			return
		}

		log.Info("updated entry", slog.String("id", id), slog.Int64("count", counter))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"updated_count": counter,
		}))
	}
}
