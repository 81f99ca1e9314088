// Package storage реализует хранилище записей подписок: упорядоченная
// коллекция в памяти, которая целиком сериализуется в key-value хранилище
// при каждой мутации. Операция считается завершённой только после записи.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-dashboard/internal/kv"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-dashboard/internal/lib/status"
	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// KV описывает методы key-value хранилища, нужные для персистентности.
type KV interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// RecordStore держит актуальную коллекцию в памяти и прогоняет все
// мутации через один mutex: уведомления об изменениях из внешнего
// хранилища приходят в отдельной горутине и должны сериализоваться
// с локальными операциями.
type RecordStore struct {
	mu      sync.Mutex
	records []models.Subscription
	kv      KV
	log     *slog.Logger
}

// NewRecordStore загружает сохранённую коллекцию. Отсутствующие или
// нечитаемые данные трактуются как пустая коллекция и не являются ошибкой.
func NewRecordStore(ctx context.Context, store KV, log *slog.Logger) *RecordStore {
	s := &RecordStore{kv: store, log: log}
	s.records = s.load(ctx)
	return s
}

func (s *RecordStore) load(ctx context.Context) []models.Subscription {
	var records []models.Subscription
	found, err := s.kv.Get(ctx, kv.KeySubscriptions, &records)
	if err != nil {
		s.log.Warn("failed to read persisted subscriptions, starting empty", sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	return records
}

func (s *RecordStore) persist(ctx context.Context, records []models.Subscription) error {
	const op = "storage.persist"
	if err := s.kv.Set(ctx, kv.KeySubscriptions, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Add присваивает черновику свежий уникальный id, вычисляет статус по
// дате окончания относительно текущего момента, добавляет запись в конец
// коллекции и сохраняет коллекцию целиком.
func (s *RecordStore) Add(ctx context.Context, draft models.Draft) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := models.Subscription{
		ID:        uuid.NewString(),
		Email:     draft.Email,
		Password:  draft.Password,
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
		Status:    status.Resolve(draft.EndDate, time.Now()),
	}

	next := make([]models.Subscription, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, sub)

	if err := s.persist(ctx, next); err != nil {
		return models.Subscription{}, err
	}
	s.records = next
	return sub, nil
}

// Edit заменяет запись с совпадающим id, сохраняя её позицию в коллекции.
// Статус пересчитывается по новой дате окончания. Если записи нет,
// коллекция не меняется и возвращается 0.
func (s *RecordStore) Edit(ctx context.Context, updated models.Subscription) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, rec := range s.records {
		if rec.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, nil
	}

	updated.Status = status.Resolve(updated.EndDate, time.Now())

	next := make([]models.Subscription, len(s.records))
	copy(next, s.records)
	next[idx] = updated

	if err := s.persist(ctx, next); err != nil {
		return 0, err
	}
	s.records = next
	return 1, nil
}

// Remove удаляет запись по id. Удаление отсутствующего id — no-op.
func (s *RecordStore) Remove(ctx context.Context, id string) (int64, error) {
	return s.RemoveBatch(ctx, []string{id})
}

// RemoveBatch удаляет все записи с перечисленными id и возвращает
// количество удалённых. Порядок оставшихся записей сохраняется.
func (s *RecordStore) RemoveBatch(ctx context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	next := make([]models.Subscription, 0, len(s.records))
	var removed int64
	for _, rec := range s.records {
		if _, ok := selected[rec.ID]; ok {
			removed++
			continue
		}
		next = append(next, rec)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return 0, err
	}
	s.records = next
	return removed, nil
}

// LoadAll возвращает копию текущей коллекции в исходном порядке.
func (s *RecordStore) LoadAll() []models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]models.Subscription, len(s.records))
	copy(res, s.records)
	return res
}

// Reload перечитывает коллекцию из key-value хранилища. Используется как
// точка сериализации для уведомлений об изменениях извне.
func (s *RecordStore) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.load(ctx)
}
