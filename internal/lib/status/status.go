// Package status вычисляет статус подписки по дате окончания.
// Функция чистая: статус фиксируется на момент вызова (создание или
// редактирование записи) и не пересчитывается с течением времени.
package status

import (
	"time"

	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// Resolve возвращает StatusActive, если endDate строго позже now,
// иначе StatusExpired.
func Resolve(endDate, now time.Time) string {
	if endDate.After(now) {
		return models.StatusActive
	}
	return models.StatusExpired
}
