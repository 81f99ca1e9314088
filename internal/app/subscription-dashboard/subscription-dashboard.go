// Package subscriptiondashboard собирает приложение панели подписок:
// key-value хранилище, сервисы, HTTP‑сервер и опциональный внешний
// коллаборатор (Postgres + канал уведомлений RabbitMQ).
package subscriptiondashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/subscription-dashboard/internal/config"
	"github.com/magabrotheeeer/subscription-dashboard/internal/kv"
	jwtlib "github.com/magabrotheeeer/subscription-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/migrations"
	"github.com/magabrotheeeer/subscription-dashboard/internal/rabbitmq"
	"github.com/magabrotheeeer/subscription-dashboard/internal/remote"
	settingsservice "github.com/magabrotheeeer/subscription-dashboard/internal/services/settings"
	subservice "github.com/magabrotheeeer/subscription-dashboard/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-dashboard/internal/storage"
)

// App — собранное приложение панели подписок.
type App struct {
	server *http.Server
	logger *slog.Logger

	kvStore      *kv.Store
	remoteClient *remote.Client
	amqpConn     *amqp.Connection
}

// New собирает приложение: подключает Redis, поднимает хранилище
// записей и сервисы, регистрирует маршруты. Внешний коллаборатор
// подключается только при cfg.Remote.Enabled.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	kvStore, err := kv.New(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	recordStore := storage.NewRecordStore(ctx, kvStore, logger)
	subscriptionService := subservice.NewSubscriptionService(recordStore, logger)
	settingsService := settingsservice.New(kvStore, logger)
	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	app := &App{
		logger:  logger,
		kvStore: kvStore,
	}

	if cfg.Remote.Enabled {
		if err := app.connectRemote(ctx, cfg, recordStore); err != nil {
			return nil, err
		}
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, subscriptionService, settingsService, jwtMaker, app.remoteClient)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// connectRemote поднимает клиента внешнего хранилища, накатывает
// миграции и подписывается на события об изменениях. Каждое событие
// перечитывает коллекцию из key-value хранилища.
func (a *App) connectRemote(ctx context.Context, cfg *config.Config, recordStore *storage.RecordStore) error {
	db, err := sql.Open("pgx", cfg.Remote.PostgresConnectionString)
	if err != nil {
		return fmt.Errorf("failed to open remote database: %w", err)
	}
	if err := migrations.Run(db, cfg.Remote.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close migration connection: %w", err)
	}

	remoteClient, err := remote.New(ctx, cfg.Remote.PostgresConnectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to remote storage: %w", err)
	}
	a.remoteClient = remoteClient

	conn, err := rabbitmq.Connect(cfg.Remote.AmqpConnectionString, cfg.Remote.ConnectRetries, cfg.Remote.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	a.amqpConn = conn

	ch, err := rabbitmq.SetupChannel(conn, []rabbitmq.QueueConfig{
		{QueueName: cfg.Remote.QueueName, RoutingKey: cfg.Remote.RoutingKey},
	})
	if err != nil {
		return fmt.Errorf("failed to setup rabbitmq channel: %w", err)
	}

	go func() {
		err := rabbitmq.Subscribe(ctx, ch, cfg.Remote.QueueName, func(body []byte) error {
			a.logger.Info("received change notification", slog.Int("size", len(body)))
			recordStore.Reload(ctx)
			return nil
		})
		if err != nil {
			a.logger.Error("change notification subscription stopped", sl.Err(err))
		}
	}()

	return nil
}

// Run запускает HTTP‑сервер и блокируется до отмены контекста либо
// ошибки сервера. При отмене контекста сервер завершается корректно.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close(timeoutCtx)
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if a.remoteClient != nil {
		if err := a.remoteClient.Close(ctx); err != nil {
			a.logger.Error("failed to close remote client", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.kvStore.Db.Close(); err != nil {
		a.logger.Error("failed to close redis connection", sl.Err(err))
	}
}
