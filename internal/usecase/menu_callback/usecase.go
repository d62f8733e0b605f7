package menu_callback

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/service/telegram/templates"
)

// UseCase обрабатывает нажатия кнопок меню из приветственного сообщения
// Кнопка "cmd:<команда>" выполняет команду так, будто пользователь отправил её в тот же чат
type UseCase struct {
	telegramService TelegramService
	registry        CommandRegistry
	runner          CommandRunner
	logger          Logger
}

// New создаёт use case для кнопок меню
// runner - диспетчер, ошибки и паники команды логируются им и не возвращаются
func New(telegramService TelegramService, registry CommandRegistry, runner CommandRunner, logger Logger) *UseCase {
	return &UseCase{
		telegramService: telegramService,
		registry:        registry,
		runner:          runner,
		logger:          logger,
	}
}

// Execute обрабатывает callback query; чужие callback данные игнорируются
func (uc *UseCase) Execute(ctx context.Context, query *tgbotapi.CallbackQuery, source *domain.Message) error {
	token, ok := templates.ParseMenuCallback(query.Data)
	if !ok {
		return nil
	}

	if source.ChatID() == 0 {
		uc.telegramService.AnswerCallbackQuery(query.ID, templates.MenuExpiredText)
		return nil
	}

	if _, registered := uc.registry.Description(token); !registered {
		uc.logger.Warn("Menu button for unknown command '%s' in chat %d", token, source.ChatID())
		uc.telegramService.AnswerCallbackQuery(query.ID, templates.MenuUnknownText)
		return nil
	}

	uc.telegramService.AnswerCallbackQuery(query.ID, "")

	uc.runner.RunCommand(ctx, token, commandMessage(source, query.From, token))

	return nil
}

// commandMessage строит сообщение с командой от имени нажавшего кнопку в чате и топике меню
func commandMessage(source *domain.Message, from *tgbotapi.User, token string) *domain.Message {
	msg := *source.Message
	msg.Text = templates.MenuButtonText(token)
	msg.Entities = nil
	msg.ReplyMarkup = nil
	if from != nil {
		msg.From = from
	}

	return domain.NewMessage(&msg).WithTopicOf(source)
}
