// Package create предоставляет HTTP‑обработчик создания подписки.
// Дата начала — момент создания, дата окончания — явная дата из запроса
// или смещение по каталогу длительностей.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// Creater определяет контракт создания записи подписки.
type Creater interface {
	Create(ctx context.Context, req models.DummyEntry) (models.Subscription, error)
}

// New возвращает HTTP‑обработчик создания подписки.
//
// @Summary Создать подписку
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body models.DummyEntry true "Данные новой подписки"
// @Success 200 {object} map[string]interface{} "entry: созданная запись"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Router /subscriptions [post]
func New(ctx context.Context, log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyEntry

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}
		log.Info("request body decoded", slog.String("email", req.Email))

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}
		log.Info("all fields are validated")

		sub, err := creater.Create(ctx, req)
		if err != nil {
			log.Error("failed to create new entry", sl.Err(err))
			render.JSON(w, r, response.Error("failed to save"))

			return
		}

		log.Info("created new entry", slog.String("id", sub.ID), slog.String("status", sub.Status))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"entry": sub,
		}))
	}
}
