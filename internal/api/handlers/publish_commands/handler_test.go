package publish_commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/command"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTelegram struct {
	mock.Mock
}

func (m *mockTelegram) PublishCommands(commands []tgbotapi.BotCommand) bool {
	return m.Called(commands).Bool(0)
}

func noop(context.Context, *domain.Message) error { return nil }

func TestHandle_PublishesRegistryMenu(t *testing.T) {
	registry := command.NewRegistry()
	registry.Register("start", noop, "Start the bot")
	registry.Register("help", noop, "Show help")
	registry.Register("debug", noop, "")

	tg := new(mockTelegram)
	tg.On("PublishCommands", []tgbotapi.BotCommand{
		{Command: "help", Description: "Show help"},
		{Command: "start", Description: "Start the bot"},
	}).Return(true).Once()

	rec := httptest.NewRecorder()
	NewHandler(registry, tg, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/commands/publish", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"commands":[{"command":"help","description":"Show help"},{"command":"start","description":"Start the bot"}]}`, rec.Body.String())
	tg.AssertExpectations(t)
}

func TestHandle_PublishFailure(t *testing.T) {
	tg := new(mockTelegram)
	tg.On("PublishCommands", mock.Anything).Return(false).Once()

	rec := httptest.NewRecorder()
	NewHandler(command.NewRegistry(), tg, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/commands/publish", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
