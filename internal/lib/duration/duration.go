// Package duration содержит каталог пресетов длительности подписки.
// Каталог фиксированный: шесть вариантов от шести часов до года.
// Порядок и значения в часах — совместимый интерфейс, менять их нельзя.
package duration

// Option описывает один пресет длительности.
type Option struct {
	Selector int    `json:"selector"`  // Номер пресета, начиная с 1
	LabelKey string `json:"label_key"` // Ключ локализации для отображения
	Hours    int    `json:"hours"`     // Длительность в часах
}

var options = []Option{
	{Selector: 1, LabelKey: "dashboard.duration.6hours", Hours: 6},
	{Selector: 2, LabelKey: "dashboard.duration.1month", Hours: 720},
	{Selector: 3, LabelKey: "dashboard.duration.2months", Hours: 1440},
	{Selector: 4, LabelKey: "dashboard.duration.3months", Hours: 2160},
	{Selector: 5, LabelKey: "dashboard.duration.6months", Hours: 4320},
	{Selector: 6, LabelKey: "dashboard.duration.1year", Hours: 8760},
}

// Options возвращает копию упорядоченного списка пресетов.
func Options() []Option {
	res := make([]Option, len(options))
	copy(res, options)
	return res
}

// HoursFor возвращает длительность в часах для заданного пресета.
// Для неизвестного номера возвращается длительность первого пресета (6 часов).
func HoursFor(selector int) int {
	for _, opt := range options {
		if opt.Selector == selector {
			return opt.Hours
		}
	}
	return options[0].Hours
}
