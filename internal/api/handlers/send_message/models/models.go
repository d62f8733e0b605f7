package models

import (
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
)

// Button кнопка inline-клавиатуры
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

// SendMessageRequest HTTP запрос на отправку сообщения от имени бота
type SendMessageRequest struct {
	ChatID           int64      `json:"chat_id"`
	TopicID          int        `json:"topic_id,omitempty"`
	Text             string     `json:"text"`
	ImageURL         string     `json:"image_url,omitempty"`
	ReplyToMessageID int        `json:"reply_to_message_id,omitempty"`
	Buttons          [][]Button `json:"buttons,omitempty"`
}

// Layout преобразует кнопки запроса в раскладку клавиатуры
func (r *SendMessageRequest) Layout() keyboard.Layout {
	layout := make(keyboard.Layout, 0, len(r.Buttons))
	for _, row := range r.Buttons {
		keys := make(keyboard.Row, 0, len(row))
		for _, b := range row {
			keys = append(keys, keyboard.NewCallbackButton(b.Text, b.CallbackData))
		}
		layout = append(layout, keys)
	}

	return layout
}

// SendMessageResponse HTTP ответ с отправленным сообщением
type SendMessageResponse struct {
	MessageID int   `json:"message_id"`
	ChatID    int64 `json:"chat_id"`
	TopicID   int   `json:"topic_id,omitempty"`
}

// FromDomainMessage преобразует отправленное сообщение в HTTP ответ
func FromDomainMessage(msg *domain.Message, topicID int) *SendMessageResponse {
	return &SendMessageResponse{
		MessageID: msg.MessageID,
		ChatID:    msg.ChatID(),
		TopicID:   topicID,
	}
}
