// Package logout предоставляет HTTP‑обработчик выхода из панели.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// SessionCleaner снимает отметку аутентификации с сессии.
type SessionCleaner interface {
	ClearAuthenticated(ctx context.Context) error
}

// New возвращает HTTP‑обработчик выхода: снимает отметку
// аутентификации. Сам токен продолжает жить до истечения TTL.
func New(ctx context.Context, log *slog.Logger, cleaner SessionCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.logout.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := cleaner.ClearAuthenticated(ctx); err != nil {
			log.Error("failed to clear session", sl.Err(err))
			render.JSON(w, r, response.Error("failed to clear session"))

			return
		}

		log.Info("user logged out")
		render.JSON(w, r, response.OK())
	}
}
