// Package mware содержит middleware для HTTP‑сервера панели подписок.
// Здесь реализована проверка JWT‑токена сессии, добавление email пользователя
// в контекст запроса и ограничение частоты запросов.
package mware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	jwtlib "github.com/magabrotheeeer/subscription-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ, под которым email пользователя кладётся в контекст запроса.
const UserKey Key = "email"

// JWTMiddleware возвращает middleware, которое проверяет JWT‑токен в заголовке Authorization.
// Логика работы:
//  1. Считывает значение заголовка Authorization.
//  2. Проверяет, что он начинается с "Bearer ".
//  3. Валидирует токен и извлекает из него email пользователя.
//  4. Кладёт email в контекст запроса.
//  5. Передаёт управление следующему обработчику.
func JWTMiddleware(jwtMaker jwtlib.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "mware.JWTMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))

				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))

				return
			}
			ctx := context.WithValue(r.Context(), UserKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var limiter = rate.NewLimiter(1, 3)

// RateLimitMiddleware ограничивает частоту входящих запросов.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
