package get_cursor

import "context"

// Poller источник текущего курсора опроса
type Poller interface {
	Cursor() int
	InstanceID() string
}

// CursorStore интерфейс хранилища курсора
type CursorStore interface {
	Load(ctx context.Context) (int, bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
