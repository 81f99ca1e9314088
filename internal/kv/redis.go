// Package kv реализует локальное key-value хранилище панели поверх redis.
// В нём живут три ключа: сериализованная коллекция подписок, флаг
// аутентификации и тема оформления. Значения хранятся как JSON без TTL.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/subscription-dashboard/internal/config"
)

// Ключи хранилища. Имена совместимы с исходной схемой и меняться не должны.
const (
	KeySubscriptions   = "subscriptions"
	KeyIsAuthenticated = "isAuthenticated"
	KeyTheme           = "theme"
)

type Store struct {
	Db *redis.Client
}

func New(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "kv.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// Get читает значение по ключу. Возвращает false без ошибки, если ключа нет.
func (s *Store) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "kv.Get"
	val, err := s.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set записывает значение по ключу без времени жизни: хранилище
// персистентное, а не кэш.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	const op = "kv.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, key, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ.
func (s *Store) Delete(ctx context.Context, key string) error {
	const op = "kv.Delete"
	if err := s.Db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
