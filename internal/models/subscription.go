// Package models содержит доменные структуры, описывающие подписку панели
// управления, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы подписки. Статус — производное поле: он вычисляется
// при создании и редактировании записи и не пересчитывается со временем.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Subscription представляет собой запись подписки: пара email/пароль
// с датами начала и окончания. Именно в таком виде коллекция целиком
// сериализуется в key-value хранилище.
type Subscription struct {
	ID        string    `json:"id"`        // Уникальный идентификатор (uuid), неизменяемый
	Email     string    `json:"email"`     // Email владельца, уникальность не проверяется
	Password  string    `json:"password"`  // Пароль, хранится открытым текстом
	StartDate time.Time `json:"startDate"` // Дата начала
	EndDate   time.Time `json:"endDate"`   // Дата окончания
	Status    string    `json:"status"`    // active или expired на момент последнего пересчёта
}

// Draft — данные новой записи до присвоения идентификатора и статуса.
type Draft struct {
	Email     string
	Password  string
	StartDate time.Time
	EndDate   time.Time
}

// DummyEntry используется для приёма данных создания/редактирования из
// JSON-запроса. Дата окончания приходит строкой RFC3339; если она пуста,
// срок вычисляется по каталогу длительностей через DurationSelector.
type DummyEntry struct {
	Email            string `json:"email" validate:"required"`              // Email (обязательное поле)
	Password         string `json:"password" validate:"required"`           // Пароль (обязательное поле)
	EndDate          string `json:"end_date,omitempty" validate:"omitempty"` // Дата окончания в формате RFC3339 (опционально)
	DurationSelector int    `json:"duration_selector,omitempty"`            // Номер пресета длительности (опционально)
}

// SubscriptionStats — счётчики для сводной панели.
type SubscriptionStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}
