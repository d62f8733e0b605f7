package botapi

import "errors"

var (
	// ErrInit возвращается, если не удалось создать клиент Bot API (в т.ч. getMe)
	ErrInit = errors.New("botapi client: failed to initialize")

	// ErrInternal возвращается при внутренних ошибках клиента (запрос, сеть)
	ErrInternal = errors.New("botapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Bot API
	ErrInvalidResponse = errors.New("botapi client: invalid response")

	// ErrAPI возвращается, когда Bot API ответил ok=false
	ErrAPI = errors.New("botapi client: api error")
)
