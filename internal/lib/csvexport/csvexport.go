// Package csvexport сериализует набор подписок в CSV для выгрузки.
// Экспортируется отфильтрованный набор целиком, без пагинации.
// Порядок колонок и строка заголовка фиксированы.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-dashboard/internal/models"
)

// ContentType — MIME-тип выгружаемого файла.
const ContentType = "text/csv"

// displayLayout — человекочитаемый формат дат в выгрузке.
const displayLayout = "Jan 02, 2006 15:04"

var header = []string{"Email", "Password", "Start Date", "End Date", "Status"}

// Marshal сериализует записи в CSV: первая строка — заголовок, затем по
// строке на запись в исходном порядке. Значения экранируются по RFC 4180.
func Marshal(subs []models.Subscription) ([]byte, error) {
	const op = "csvexport.Marshal"

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, sub := range subs {
		row := []string{
			sub.Email,
			sub.Password,
			sub.StartDate.Format(displayLayout),
			sub.EndDate.Format(displayLayout),
			sub.Status,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

// Filename возвращает имя файла выгрузки с датой экспорта.
func Filename(now time.Time) string {
	return fmt.Sprintf("subscriptions_%s.csv", now.Format("2006-01-02"))
}
