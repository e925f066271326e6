package journal

import "strings"

// Filter оставляет записи, содержащие q в имени или коде (без учёта регистра).
// Пустой запрос возвращает вход как есть.
func Filter(records []Record, q string) []Record {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		allText := r.Name + " " + r.Code
		if strings.Contains(strings.ToLower(allText), q) {
			out = append(out, r)
		}
	}
	return out
}
