// Package jwt реализует генерацию и парсинг JWT токенов сессии панели.
//
// CustomClaims расширяет стандартные claims JWT, добавляя email, под которым
// выполнен вход. Maker описывает интерфейс создания и проверки токенов,
// MakerImpl — реализацию с секретным ключом и временем жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создаёт токен для указанного email.
	GenerateToken(email string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
