package help_message

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/service/telegram/templates"
)

const (
	// Command команда, которую обрабатывает use case
	Command = "help"
	// Description описание команды в меню
	Description = "Список команд"
)

// ErrSendFailed сообщение не было отправлено, причина залогирована сервисом Telegram
var ErrSendFailed = errors.New("usecase.SendHelpMessage: help message not sent")

// UseCase обрабатывает команду /help
type UseCase struct {
	telegramService TelegramService
	registry        CommandRegistry
}

// New создаёт use case для /help
func New(telegramService TelegramService, registry CommandRegistry) *UseCase {
	return &UseCase{
		telegramService: telegramService,
		registry:        registry,
	}
}

// Execute отвечает списком опубликованных команд
func (uc *UseCase) Execute(_ context.Context, msg *domain.Message) error {
	text := templates.HelpText(uc.registry.Descriptions())

	if uc.telegramService.Reply(msg, text) == nil {
		return fmt.Errorf("%w: chat %d", ErrSendFailed, msg.ChatID())
	}

	return nil
}
