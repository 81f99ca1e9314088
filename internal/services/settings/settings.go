// Package settings управляет пользовательскими настройками панели в
// key-value хранилище: темой оформления и флагом аутентификации.
// Отсутствующие или нечитаемые значения трактуются как значения по
// умолчанию и никогда не считаются фатальной ошибкой.
package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-dashboard/internal/kv"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
)

// Темы оформления.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// KV описывает методы key-value хранилища, нужные настройкам.
type KV interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Service читает и пишет настройки панели.
type Service struct {
	kv  KV
	log *slog.Logger
}

// New создаёт новый экземпляр Service.
func New(store KV, log *slog.Logger) *Service {
	return &Service{kv: store, log: log}
}

// Theme возвращает сохранённую тему оформления, по умолчанию — светлую.
func (s *Service) Theme(ctx context.Context) string {
	var theme string
	found, err := s.kv.Get(ctx, kv.KeyTheme, &theme)
	if err != nil {
		s.log.Warn("failed to read theme, using default", sl.Err(err))
		return ThemeLight
	}
	if !found || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight
	}
	return theme
}

// SetTheme сохраняет тему оформления.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	const op = "settings.SetTheme"
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%s: unknown theme %q", op, theme)
	}
	if err := s.kv.Set(ctx, kv.KeyTheme, theme); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkAuthenticated выставляет флаг аутентификации.
func (s *Service) MarkAuthenticated(ctx context.Context) error {
	const op = "settings.MarkAuthenticated"
	if err := s.kv.Set(ctx, kv.KeyIsAuthenticated, "true"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearAuthenticated снимает флаг аутентификации.
func (s *Service) ClearAuthenticated(ctx context.Context) error {
	const op = "settings.ClearAuthenticated"
	if err := s.kv.Delete(ctx, kv.KeyIsAuthenticated); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsAuthenticated возвращает true, если флаг выставлен.
// Любое другое состояние, включая ошибку чтения, трактуется как false.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	var flag string
	found, err := s.kv.Get(ctx, kv.KeyIsAuthenticated, &flag)
	if err != nil {
		s.log.Warn("failed to read authentication flag", sl.Err(err))
		return false
	}
	return found && flag == "true"
}
