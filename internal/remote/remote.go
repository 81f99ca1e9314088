// Package remote реализует клиента внешнего хранилища подписок.
// Ядро панели его данные не интерпретирует: это сквозные запросы
// проверки подписки и выпуска токена активации. Ошибки внешнего
// хранилища пробрасываются вызывающему как есть.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound возвращается, когда записи с таким email во внешнем
// хранилище нет.
var ErrNotFound = errors.New("subscription not found")

// Entry — запись внешнего хранилища.
type Entry struct {
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Token     *string    `json:"token,omitempty"`
}

// Client держит соединение с внешним хранилищем.
type Client struct {
	db *pgx.Conn
}

// New подключается к внешнему хранилищу.
func New(ctx context.Context, connString string) (*Client, error) {
	const op = "remote.New"

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{db: conn}, nil
}

// Validate ищет запись по email и определяет активность по полю
// expires_at относительно текущего момента. Отсутствие expires_at
// означает неактивную подписку.
func (c *Client) Validate(ctx context.Context, email string) (bool, *Entry, error) {
	const op = "remote.Validate"

	var entry Entry
	err := c.db.QueryRow(ctx, `
		SELECT email, expires_at, token
		FROM subscriptions WHERE email = $1`, email).
		Scan(&entry.Email, &entry.ExpiresAt, &entry.Token)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return false, nil, fmt.Errorf("%s: %w", op, err)
	}

	isActive := entry.ExpiresAt != nil && entry.ExpiresAt.After(time.Now())
	return isActive, &entry, nil
}

// GenerateActivation выпускает свежий токен активации для email и
// сохраняет его во внешнем хранилище.
func (c *Client) GenerateActivation(ctx context.Context, email string) (string, error) {
	const op = "remote.GenerateActivation"

	token := uuid.NewString()
	commandTag, err := c.db.Exec(ctx, `
		UPDATE subscriptions SET token = $1 WHERE email = $2`, token, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if commandTag.RowsAffected() == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return token, nil
}

// Close закрывает соединение.
func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}
