package subscriptiondashboard

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/activate"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/create"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/export"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/list"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/login"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/logout"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/remove"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/removebatch"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/stats"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/theme"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/update"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/validate"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/mware"
	jwtlib "github.com/magabrotheeeer/subscription-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-dashboard/internal/remote"
	settingsservice "github.com/magabrotheeeer/subscription-dashboard/internal/services/settings"
	subservice "github.com/magabrotheeeer/subscription-dashboard/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
// remoteClient может быть nil — тогда маршруты внешнего коллаборатора
// не регистрируются.
func RegisterRoutes(r chi.Router, logger *slog.Logger, subscriptionService *subservice.SubscriptionService, settingsService *settingsservice.Service, jwtMaker jwtlib.Maker, remoteClient *remote.Client) {
	ctx := context.Background()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(ctx, logger, settingsService, jwtMaker).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(jwtMaker, logger))
			r.Use(mware.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(ctx, logger, settingsService).ServeHTTP)
			r.Get("/subscriptions", list.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", create.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/batch-delete", removebatch.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/export", export.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/stats", stats.New(ctx, logger, subscriptionService).ServeHTTP)
			r.Get("/settings/theme", theme.NewGet(ctx, logger, settingsService).ServeHTTP)
			r.Put("/settings/theme", theme.NewSet(ctx, logger, settingsService).ServeHTTP)

			if remoteClient != nil {
				r.Post("/remote/validate", validate.New(ctx, logger, remoteClient).ServeHTTP)
				r.Post("/remote/activate", activate.New(ctx, logger, remoteClient).ServeHTTP)
			}
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
