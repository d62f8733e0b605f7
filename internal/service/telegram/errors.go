package telegram

import "errors"

var (
	// ErrSetWebhook возвращается при ошибке установки webhook
	ErrSetWebhook = errors.New("service.telegram: failed to set webhook")

	// ErrDeleteWebhook возвращается при ошибке удаления webhook
	ErrDeleteWebhook = errors.New("service.telegram: failed to delete webhook")

	// ErrEncodeMarkup возвращается, если не удалось сериализовать клавиатуру
	ErrEncodeMarkup = errors.New("service.telegram: failed to encode reply markup")

	// ErrDecodeResult возвращается, если ответ Bot API не удалось разобрать
	ErrDecodeResult = errors.New("service.telegram: failed to decode result")
)
