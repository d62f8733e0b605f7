package command

import (
	"context"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// Handler обработчик команды
// Вызывается синхронно в потоке опроса обновлений
type Handler func(ctx context.Context, msg *domain.Message) error

type entry struct {
	handler     Handler
	description string
}

// Registry реестр команд: имя команды -> обработчик и описание
// Заполняется до запуска опроса, во время диспетчеризации только читается
type Registry struct {
	entries map[string]entry
}

// NewRegistry создаёт пустой реестр команд
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register регистрирует обработчик команды, повторная регистрация перезаписывает предыдущую
// Команды с пустым описанием не публикуются в меню, но продолжают обрабатываться
func (r *Registry) Register(token string, handler Handler, description string) {
	r.entries[token] = entry{
		handler:     handler,
		description: description,
	}
}

// Dispatch вызывает обработчик зарегистрированной команды
// Для незарегистрированной команды ничего не делает и возвращает false
func (r *Registry) Dispatch(ctx context.Context, token string, msg *domain.Message) (bool, error) {
	e, ok := r.entries[token]
	if !ok || e.handler == nil {
		return false, nil
	}

	return true, e.handler(ctx, msg)
}

// Description возвращает описание команды
func (r *Registry) Description(token string) (string, bool) {
	e, ok := r.entries[token]
	if !ok {
		return "", false
	}

	return e.description, true
}

// Descriptions возвращает меню команд для setMyCommands, отсортированное по имени
func (r *Registry) Descriptions() []tgbotapi.BotCommand {
	commands := make([]tgbotapi.BotCommand, 0, len(r.entries))

	for token, e := range r.entries {
		if e.description == "" {
			continue
		}

		commands = append(commands, tgbotapi.BotCommand{
			Command:     token,
			Description: e.description,
		})
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Command < commands[j].Command
	})

	return commands
}
