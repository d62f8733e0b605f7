package dispatcher

import "errors"

var (
	// ErrListener возвращается, если слушатель события завершился с ошибкой
	ErrListener = errors.New("dispatcher: listener failed")
)
