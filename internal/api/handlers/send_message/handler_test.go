package send_message

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/api/handlers/send_message/models"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTelegram struct {
	mock.Mock
}

func (m *mockTelegram) SendKeyboard(chatID int64, topic int, text string, layout keyboard.Layout, replyTo int) *domain.Message {
	args := m.Called(chatID, topic, text, layout, replyTo)
	msg, _ := args.Get(0).(*domain.Message)
	return msg
}

func (m *mockTelegram) SendPhoto(chatID int64, topic int, caption string, photo tgbotapi.RequestFileData, replyTo int) *domain.Message {
	args := m.Called(chatID, topic, caption, photo, replyTo)
	msg, _ := args.Get(0).(*domain.Message)
	return msg
}

func sent(id int, chatID int64) *domain.Message {
	return domain.NewMessage(&tgbotapi.Message{MessageID: id, Chat: &tgbotapi.Chat{ID: chatID}})
}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body)))
	return rec
}

func TestHandle_SendsTextWithButtons(t *testing.T) {
	tg := new(mockTelegram)
	layout := keyboard.Layout{{keyboard.NewCallbackButton("Yes", "y"), keyboard.NewCallbackButton("No", "n")}}
	tg.On("SendKeyboard", int64(-100), 12, "Confirm?", layout, 0).Return(sent(77, -100)).Once()

	rec := doRequest(NewHandler(tg, logger.Nop()), `{
		"chat_id": -100,
		"topic_id": 12,
		"text": "Confirm?",
		"buttons": [[{"text": "Yes", "callback_data": "y"}, {"text": "No", "callback_data": "n"}]]
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.SendMessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.SendMessageResponse{MessageID: 77, ChatID: -100, TopicID: 12}, resp)
	tg.AssertExpectations(t)
}

func TestHandle_SendsPhoto(t *testing.T) {
	tg := new(mockTelegram)
	tg.On("SendPhoto", int64(5), 0, "Your car", tgbotapi.FileURL("https://example.com/car.png"), 3).Return(sent(8, 5)).Once()

	rec := doRequest(NewHandler(tg, logger.Nop()), `{"chat_id": 5, "text": "Your car", "image_url": "https://example.com/car.png", "reply_to_message_id": 3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	tg.AssertExpectations(t)
}

func TestHandle_TelegramFailure(t *testing.T) {
	tg := new(mockTelegram)
	tg.On("SendKeyboard", int64(5), 0, "hi", mock.Anything, 0).Return(nil).Once()

	rec := doRequest(NewHandler(tg, logger.Nop()), `{"chat_id": 5, "text": "hi"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandle_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "unknown field", body: `{"chat_id": 5, "text": "hi", "markup": 1}`},
		{name: "missing chat", body: `{"text": "hi"}`},
		{name: "missing content", body: `{"chat_id": 5}`},
		{name: "photo with buttons", body: `{"chat_id": 5, "image_url": "https://x/y.png", "buttons": [[{"text": "a"}]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := new(mockTelegram)

			rec := doRequest(NewHandler(tg, logger.Nop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			tg.AssertNotCalled(t, "SendKeyboard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
