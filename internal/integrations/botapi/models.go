package botapi

import "time"

// UpdatesRequest параметры запроса getUpdates
type UpdatesRequest struct {
	Offset         int           // ID первого запрашиваемого обновления, -1 для последнего
	Limit          int           // Максимум обновлений за запрос (1-100), 0 для значения по умолчанию
	Timeout        time.Duration // Длительность long poll на стороне сервера
	AllowedUpdates []string      // Типы обновлений, пусто для всех
}
