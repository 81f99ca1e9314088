// Package login предоставляет HTTP‑обработчик входа в панель.
// Вход принимает любую пару непустых email и пароля, выдаёт JWT‑токен
// сессии и помечает сессию как аутентифицированную.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	jwtlib "github.com/magabrotheeeer/subscription-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionMarker помечает сессию как аутентифицированную.
type SessionMarker interface {
	MarkAuthenticated(ctx context.Context) error
}

// New возвращает HTTP‑обработчик входа.
// Логика работы:
//  1. Декодирует email и пароль из тела запроса.
//  2. Проверяет, что оба поля непустые; учётные данные не сверяются.
//  3. Генерирует JWT‑токен и помечает сессию аутентифицированной.
//
// @Summary Войти в панель
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Email и пароль"
// @Success 200 {object} map[string]interface{} "token: JWT токен сессии"
// @Failure 400 {object} response.Response "Не заполнены email или пароль"
// @Router /login [post]
func New(ctx context.Context, log *slog.Logger, marker SessionMarker, jwtMaker jwtlib.Maker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"
		var loginRequest LoginRequest

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		err := render.DecodeJSON(r.Body, &loginRequest)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}
		log.Info("request body decoded", slog.String("email", loginRequest.Email))

		if err := validator.New().Struct(loginRequest); err != nil {
			log.Error("missing credentials", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please enter both email and password"))

			return
		}
		log.Info("all fields are validated")

		token, err := jwtMaker.GenerateToken(loginRequest.Email)
		if err != nil {
			log.Error("could not generate token", sl.Err(err))
			render.JSON(w, r, response.Error("could not generate token"))

			return
		}

		if err := marker.MarkAuthenticated(ctx); err != nil {
			log.Error("failed to mark session as authenticated", sl.Err(err))
			render.JSON(w, r, response.Error("failed to save session"))

			return
		}

		log.Info("user logged in", slog.String("email", loginRequest.Email))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": token,
			"email": loginRequest.Email,
		}))
	}
}
