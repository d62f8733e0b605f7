package domain

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ParseMode константы для режимов парсинга текста в Telegram
const (
	ParseModeHTML     = "HTML"     // HTML форматирование
	ParseModeMarkdown = "Markdown" // Markdown форматирование (legacy)
	ParseModePlain    = ""         // Без форматирования
)

// Message сообщение Telegram с информацией о топике форума
// Типы клиента tgbotapi не содержат полей топиков, поэтому они читаются из того же JSON отдельно
type Message struct {
	*tgbotapi.Message

	ThreadID       int  // message_thread_id
	IsTopicMessage bool // is_topic_message
}

// topicFields поля топика, которые отсутствуют в tgbotapi.Message
type topicFields struct {
	ThreadID       int  `json:"message_thread_id"`
	IsTopicMessage bool `json:"is_topic_message"`
}

// NewMessage оборачивает сообщение клиента без информации о топике
func NewMessage(msg *tgbotapi.Message) *Message {
	if msg == nil {
		return nil
	}

	return &Message{Message: msg}
}

// DecodeMessage разбирает JSON сообщения вместе с полями топика
func DecodeMessage(data []byte) (*Message, error) {
	var msg tgbotapi.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	var topic topicFields
	if err := json.Unmarshal(data, &topic); err != nil {
		return nil, fmt.Errorf("decode message topic: %w", err)
	}

	return &Message{
		Message:        &msg,
		ThreadID:       topic.ThreadID,
		IsTopicMessage: topic.IsTopicMessage,
	}, nil
}

// WithTopicOf копирует информацию о топике из другого сообщения (например, после редактирования)
func (m *Message) WithTopicOf(source *Message) *Message {
	if m == nil || source == nil {
		return m
	}

	m.ThreadID = source.ThreadID
	m.IsTopicMessage = source.IsTopicMessage
	return m
}

// Topic возвращает ID топика для ответа в тот же топик, 0 если сообщение не из топика
func (m *Message) Topic() int {
	if m == nil || !m.IsTopicMessage {
		return 0
	}

	return m.ThreadID
}

// ChatID возвращает ID чата сообщения, 0 если чат неизвестен
func (m *Message) ChatID() int64 {
	if m == nil || m.Message == nil || m.Chat == nil {
		return 0
	}

	return m.Chat.ID
}

// ChatName возвращает username чата, а при его отсутствии название
func ChatName(chat *tgbotapi.Chat) string {
	if chat == nil {
		return ""
	}

	if chat.UserName != "" {
		return chat.UserName
	}

	return chat.Title
}
