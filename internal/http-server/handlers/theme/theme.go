// Package theme предоставляет HTTP‑обработчики чтения и смены темы
// оформления панели.
package theme

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// ThemeRequest — тело запроса смены темы.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// Provider определяет контракт чтения и сохранения темы.
type Provider interface {
	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, theme string) error
}

// NewGet возвращает HTTP‑обработчик чтения текущей темы.
// Отсутствующее или повреждённое значение разрешается в светлую тему.
func NewGet(ctx context.Context, log *slog.Logger, provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.theme.NewGet"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		current := provider.Theme(ctx)

		log.Info("read theme", slog.String("theme", current))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"theme": current,
		}))
	}
}

// NewSet возвращает HTTP‑обработчик смены темы.
func NewSet(ctx context.Context, log *slog.Logger, provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.theme.NewSet"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req ThemeRequest

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

		if err := provider.SetTheme(ctx, req.Theme); err != nil {
			log.Error("failed to save theme", sl.Err(err))
			render.JSON(w, r, response.Error("failed to save theme"))

			return
		}

		log.Info("theme changed", slog.String("theme", req.Theme))
		render.JSON(w, r, response.OK())
	}
}
