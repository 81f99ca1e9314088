// Package activate предоставляет HTTP‑обработчик выпуска токена
// активации во внешнем источнике данных.
package activate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/remote"
)

// ActivateRequest — тело запроса выпуска токена активации.
type ActivateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RemoteActivator определяет контракт выпуска токена активации.
type RemoteActivator interface {
	GenerateActivation(ctx context.Context, email string) (string, error)
}

// New возвращает HTTP‑обработчик выпуска токена активации по email.
//
// @Summary Выпустить токен активации
// @Tags remote
// @Accept json
// @Produce json
// @Param request body ActivateRequest true "Email подписки"
// @Success 200 {object} map[string]interface{} "token: токен активации"
// @Failure 404 {object} response.Response "Подписка не найдена"
// @Router /remote/activate [post]
func New(ctx context.Context, log *slog.Logger, remoteClient RemoteActivator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activate.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req ActivateRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		token, err := remoteClient.GenerateActivation(ctx, req.Email)
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				log.Error("subscription not found", slog.String("email", req.Email))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("subscription not found"))

				return
			}
			log.Error("failed to generate activation token", sl.Err(err))
			render.JSON(w, r, response.Error("failed to generate activation token"))

			return
		}

		log.Info("generated activation token", slog.String("email", req.Email))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": token,
		}))
	}
}
