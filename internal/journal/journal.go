package journal

// Record представляет один журнал: имя и непрозрачный код рейтингового сайта
type Record struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
