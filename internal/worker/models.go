package worker

import "time"

// StartupMode поведение курсора при старте
type StartupMode string

const (
	// StartupDiscard пропускает накопившиеся обновления
	StartupDiscard StartupMode = "discard"
	// StartupResume продолжает с сохранённого курсора, без него работает как StartupDiscard
	StartupResume StartupMode = "resume"
)

const (
	// DefaultLimit количество обновлений за один запрос
	DefaultLimit = 100
	// DefaultTimeout длительность long poll
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetryBackoff верхняя граница паузы между повторами запроса
	DefaultMaxRetryBackoff = 30 * time.Second

	// readTimeoutMargin запас HTTP таймаута сверх длительности long poll
	readTimeoutMargin = 5 * time.Second
)

// PollerConfig настройки цикла опроса
type PollerConfig struct {
	Limit           int
	Timeout         time.Duration
	AllowedUpdates  []string
	StartupMode     StartupMode
	RetryBackoff    time.Duration // Пауза после первой ошибки запроса, 0 для повтора без паузы
	MaxRetryBackoff time.Duration // Верхняя граница паузы, 0 для DefaultMaxRetryBackoff
}
