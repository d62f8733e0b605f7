package help_message

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/command"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTelegram struct {
	mock.Mock
}

func (m *mockTelegram) Reply(source *domain.Message, text string) *domain.Message {
	args := m.Called(source, text)
	msg, _ := args.Get(0).(*domain.Message)
	return msg
}

func noop(context.Context, *domain.Message) error { return nil }

func TestExecute_ListsCommands(t *testing.T) {
	registry := command.NewRegistry()
	registry.Register(Command, noop, Description)
	registry.Register("start", noop, "Start")

	msg := domain.NewMessage(&tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: 5}, Text: "/help"})

	tg := new(mockTelegram)
	tg.On("Reply", msg, "Доступные команды:\n/help - Список команд\n/start - Start").Return(msg).Once()

	assert.NoError(t, New(tg, registry).Execute(context.Background(), msg))
	tg.AssertExpectations(t)
}

func TestExecute_SendFailure(t *testing.T) {
	tg := new(mockTelegram)
	tg.On("Reply", mock.Anything, mock.Anything).Return(nil).Once()

	err := New(tg, command.NewRegistry()).Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrSendFailed)
}
