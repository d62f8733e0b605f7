package domain

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update обновление Telegram
// Incoming и CallbackSource дублируют Update.Message и CallbackQuery.Message с полями топика
type Update struct {
	tgbotapi.Update

	Incoming       *Message
	CallbackSource *Message
}

type updateTopics struct {
	Message       *topicFields `json:"message"`
	CallbackQuery *struct {
		Message *topicFields `json:"message"`
	} `json:"callback_query"`
}

// DecodeUpdate разбирает одно обновление (тело webhook или элемент ответа getUpdates)
func DecodeUpdate(data []byte) (Update, error) {
	var raw tgbotapi.Update
	if err := json.Unmarshal(data, &raw); err != nil {
		return Update{}, fmt.Errorf("decode update: %w", err)
	}

	var topics updateTopics
	if err := json.Unmarshal(data, &topics); err != nil {
		return Update{}, fmt.Errorf("decode update %d topics: %w", raw.UpdateID, err)
	}

	update := Update{Update: raw}

	if raw.Message != nil {
		update.Incoming = withTopic(raw.Message, topics.Message)
	}

	if raw.CallbackQuery != nil && raw.CallbackQuery.Message != nil {
		var topic *topicFields
		if topics.CallbackQuery != nil {
			topic = topics.CallbackQuery.Message
		}
		update.CallbackSource = withTopic(raw.CallbackQuery.Message, topic)
	}

	return update, nil
}

// DecodeUpdates разбирает result ответа getUpdates
func DecodeUpdates(data []byte) ([]Update, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}

	updates := make([]Update, 0, len(items))
	for _, item := range items {
		update, err := DecodeUpdate(item)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}

	return updates, nil
}

func withTopic(msg *tgbotapi.Message, topic *topicFields) *Message {
	wrapped := NewMessage(msg)
	if topic != nil {
		wrapped.ThreadID = topic.ThreadID
		wrapped.IsTopicMessage = topic.IsTopicMessage
	}

	return wrapped
}
