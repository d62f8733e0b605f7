package start_message

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/command"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
	"github.com/m04kA/SMC-BotCore/internal/service/telegram/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTelegram struct {
	mock.Mock
}

func (m *mockTelegram) ReplyKeyboard(source *domain.Message, text string, layout keyboard.Layout) *domain.Message {
	args := m.Called(source, text, layout)
	msg, _ := args.Get(0).(*domain.Message)
	return msg
}

func noop(context.Context, *domain.Message) error { return nil }

func incoming() *domain.Message {
	return domain.NewMessage(&tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: 5}, Text: "/start"})
}

func TestExecute_RepliesWithMenu(t *testing.T) {
	registry := command.NewRegistry()
	registry.Register(Command, noop, Description)
	registry.Register("help", noop, "Help")
	registry.Register("orders", noop, "Orders")
	registry.Register("profile", noop, "Profile")
	registry.Register("hidden", noop, "")

	msg := incoming()
	want := keyboard.Layout{
		{keyboard.NewCallbackButton("/help", "cmd:help"), keyboard.NewCallbackButton("/orders", "cmd:orders")},
		{keyboard.NewCallbackButton("/profile", "cmd:profile")},
	}

	tg := new(mockTelegram)
	tg.On("ReplyKeyboard", msg, templates.WelcomeMessageText, want).Return(msg).Once()

	err := New(tg, registry).Execute(context.Background(), msg)

	assert.NoError(t, err)
	tg.AssertExpectations(t)
}

func TestExecute_SendFailure(t *testing.T) {
	tg := new(mockTelegram)
	tg.On("ReplyKeyboard", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := New(tg, command.NewRegistry()).Execute(context.Background(), incoming())

	assert.ErrorIs(t, err, ErrSendFailed)
}
