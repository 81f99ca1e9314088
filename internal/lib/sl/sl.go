// Package sl содержит вспомогательные функции для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Используется для единообразного вывода ошибок в лог.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret возвращает slog.Attr, маскирующий чувствительное значение:
// в лог попадает только факт наличия значения, но не само значение.
func Secret(key, value string) slog.Attr {
	masked := "<empty>"
	if value != "" {
		masked = "<set>"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
