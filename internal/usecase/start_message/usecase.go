package start_message

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
	"github.com/m04kA/SMC-BotCore/internal/service/telegram/templates"
)

const (
	// Command команда, которую обрабатывает use case
	Command = "start"
	// Description описание команды в меню
	Description = "Начать работу с ботом"
)

// ErrSendFailed сообщение не было отправлено, причина залогирована сервисом Telegram
var ErrSendFailed = errors.New("usecase.SendStartMessage: welcome message not sent")

// UseCase обрабатывает команду /start
type UseCase struct {
	telegramService TelegramService
	registry        CommandRegistry
}

// New создаёт новый use case для обработки /start
func New(telegramService TelegramService, registry CommandRegistry) *UseCase {
	return &UseCase{
		telegramService: telegramService,
		registry:        registry,
	}
}

// Execute отвечает приветствием с клавиатурой из опубликованных команд (кроме самой /start)
// Возвращает ошибку с полным контекстом для логирования на уровне выше
func (uc *UseCase) Execute(_ context.Context, msg *domain.Message) error {
	var buttons []string
	for _, c := range uc.registry.Descriptions() {
		if c.Command == Command {
			continue
		}
		buttons = append(buttons, templates.MenuButtonText(c.Command))
	}

	layout := keyboard.Grid(buttons, templates.MenuRowSize, templates.MenuCallbackData)

	if uc.telegramService.ReplyKeyboard(msg, templates.WelcomeMessageText, layout) == nil {
		return fmt.Errorf("%w: chat %d", ErrSendFailed, msg.ChatID())
	}

	return nil
}
