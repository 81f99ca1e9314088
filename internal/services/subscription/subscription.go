// Package services содержит бизнес-логику панели подписок: создание и
// редактирование записей, построение видимой страницы, массовые операции
// и экспорт в CSV.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/csvexport"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/duration"
	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

// RecordStore определяет методы хранилища записей.
type RecordStore interface {
	// Add добавляет новую запись и возвращает её с присвоенным id и статусом.
	Add(ctx context.Context, draft models.Draft) (models.Subscription, error)
	// Edit заменяет запись с совпадающим id, возвращает количество заменённых.
	Edit(ctx context.Context, updated models.Subscription) (int64, error)
	// Remove удаляет запись по id, возвращает количество удалённых.
	Remove(ctx context.Context, id string) (int64, error)
	// RemoveBatch удаляет записи по списку id.
	RemoveBatch(ctx context.Context, ids []string) (int64, error)
	// LoadAll возвращает снимок коллекции в исходном порядке.
	LoadAll() []models.Subscription
}

// SubscriptionService реализует операции панели поверх хранилища записей.
type SubscriptionService struct {
	store RecordStore
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(store RecordStore, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		store: store,
		log:   log,
	}
}

// endDateFrom выбирает дату окончания: либо явная дата из запроса, либо
// смещение от текущего момента по каталогу длительностей.
func endDateFrom(req models.DummyEntry, now time.Time) (time.Time, error) {
	if req.EndDate == "" {
		hours := duration.HoursFor(req.DurationSelector)
		return now.Add(time.Duration(hours) * time.Hour), nil
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	return endDate, nil
}

// Create создает новую запись: дата начала — момент создания, дата
// окончания — из запроса или по пресету длительности.
func (s *SubscriptionService) Create(ctx context.Context, req models.DummyEntry) (models.Subscription, error) {
	now := time.Now()
	endDate, err := endDateFrom(req, now)
	if err != nil {
		return models.Subscription{}, err
	}

	sub, err := s.store.Add(ctx, models.Draft{
		Email:     req.Email,
		Password:  req.Password,
		StartDate: now,
		EndDate:   endDate,
	})
	if err != nil {
		return models.Subscription{}, err
	}

	s.log.Info("created new subscription", slog.String("id", sub.ID), slog.String("status", sub.Status))
	return sub, nil
}

// Update редактирует запись по id, сохраняя исходную дату начала.
// Отсутствующий id — no-op, возвращается 0.
func (s *SubscriptionService) Update(ctx context.Context, id string, req models.DummyEntry) (int64, error) {
	now := time.Now()
	endDate, err := endDateFrom(req, now)
	if err != nil {
		return 0, err
	}

	startDate := now
	for _, rec := range s.store.LoadAll() {
		if rec.ID == id {
			startDate = rec.StartDate
			break
		}
	}

	count, err := s.store.Edit(ctx, models.Subscription{
		ID:        id,
		Email:     req.Email,
		Password:  req.Password,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("updated subscription", slog.String("id", id), slog.Int64("count", count))
	return count, nil
}

// Remove удаляет запись по id.
func (s *SubscriptionService) Remove(ctx context.Context, id string) (int64, error) {
	count, err := s.store.Remove(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed subscription", slog.String("id", id), slog.Int64("count", count))
	return count, nil
}

// RemoveBatch удаляет все записи с перечисленными id.
func (s *SubscriptionService) RemoveBatch(ctx context.Context, ids []string) (int64, error) {
	count, err := s.store.RemoveBatch(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed selected subscriptions", slog.Int("selected", len(ids)), slog.Int64("count", count))
	return count, nil
}

// RemoveFiltered удаляет текущий отфильтрованный набор целиком —
// операция "выделить всё и удалить".
func (s *SubscriptionService) RemoveFiltered(ctx context.Context, p query.Params) (int64, error) {
	ids := query.FilteredIDs(s.store.LoadAll(), p)
	if len(ids) == 0 {
		return 0, nil
	}
	return s.RemoveBatch(ctx, ids)
}

// List строит видимую страницу по явным параметрам запроса.
func (s *SubscriptionService) List(_ context.Context, p query.Params) query.Result {
	return query.Run(s.store.LoadAll(), p)
}

// ExportCSV сериализует отфильтрованный (не разбитый на страницы) набор
// в CSV и возвращает содержимое вместе с именем файла выгрузки.
func (s *SubscriptionService) ExportCSV(_ context.Context, p query.Params) ([]byte, string, error) {
	filtered := query.Filtered(s.store.LoadAll(), p)
	data, err := csvexport.Marshal(filtered)
	if err != nil {
		return nil, "", err
	}

	filename := csvexport.Filename(time.Now())
	s.log.Info("exported subscriptions", slog.Int("count", len(filtered)), slog.String("filename", filename))
	return data, filename, nil
}

// Stats возвращает счётчики для сводной панели.
func (s *SubscriptionService) Stats(_ context.Context) models.SubscriptionStats {
	var stats models.SubscriptionStats
	for _, rec := range s.store.LoadAll() {
		stats.Total++
		if rec.Status == models.StatusActive {
			stats.Active++
		} else {
			stats.Expired++
		}
	}
	return stats
}
