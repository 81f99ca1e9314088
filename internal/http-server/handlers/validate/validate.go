// Package validate предоставляет HTTP‑обработчик сверки подписки с
// внешним источником данных. Обработчик доступен только при включённом
// внешнем коллабораторе.
package validate

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

// ValidateRequest — тело запроса сверки.
type ValidateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RemoteValidator определяет контракт сверки подписки во внешнем источнике.
type RemoteValidator interface {
	Validate(ctx context.Context, email string) (bool, *remote.Entry, error)
}

// New возвращает HTTP‑обработчик сверки подписки по email.
//
// @Summary Сверить подписку с внешним источником
// @Tags remote
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Email подписки"
// @Success 200 {object} map[string]interface{} "active, expires_at"
// @Failure 404 {object} response.Response "Подписка не найдена"
// @Router /remote/validate [post]
func New(ctx context.Context, log *slog.Logger, remoteClient RemoteValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.validate.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req ValidateRequest

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

		active, entry, err := remoteClient.Validate(ctx, req.Email)
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				log.Error("subscription not found", slog.String("email", req.Email))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("subscription not found"))

				return
			}
			log.Error("failed to validate subscription", sl.Err(err))
			render.JSON(w, r, response.Error("failed to validate"))

			return
		}

		log.Info("validated subscription", slog.String("email", req.Email), slog.Bool("active", active))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"active":     active,
			"expires_at": entry.ExpiresAt,
		}))
	}
}
