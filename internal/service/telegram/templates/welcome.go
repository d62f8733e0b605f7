package templates

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// WelcomeMessageText приветственное сообщение при команде /start
	WelcomeMessageText = `Добро пожаловать!

Выберите команду на клавиатуре ниже или отправьте /help, чтобы увидеть список всех команд.`

	// HelpHeaderText заголовок списка команд
	HelpHeaderText = "Доступные команды:"

	// NoCommandsText ответ, если меню команд пустое
	NoCommandsText = "Команды пока не настроены."

	// MenuExpiredText ответ на нажатие кнопки в недоступном сообщении
	MenuExpiredText = "Меню устарело, отправьте /start"

	// MenuUnknownText ответ на кнопку с командой, которой больше нет
	MenuUnknownText = "Команда больше недоступна"

	// MenuCallbackPrefix префикс callback данных кнопок меню
	MenuCallbackPrefix = "cmd:"

	// MenuRowSize количество кнопок в строке меню
	MenuRowSize = 2
)

// MenuButtonText возвращает текст кнопки меню для команды
func MenuButtonText(token string) string {
	return "/" + token
}

// MenuCallbackData возвращает callback данные кнопки меню по её тексту
func MenuCallbackData(buttonText string) string {
	return MenuCallbackPrefix + strings.TrimPrefix(buttonText, "/")
}

// ParseMenuCallback извлекает команду из callback данных кнопки меню
func ParseMenuCallback(data string) (string, bool) {
	token, ok := strings.CutPrefix(data, MenuCallbackPrefix)
	if !ok || token == "" {
		return "", false
	}

	return token, true
}

// HelpText формирует список команд для /help
func HelpText(commands []tgbotapi.BotCommand) string {
	if len(commands) == 0 {
		return NoCommandsText
	}

	var b strings.Builder
	b.WriteString(HelpHeaderText)
	for _, c := range commands {
		fmt.Fprintf(&b, "\n/%s - %s", c.Command, c.Description)
	}

	return b.String()
}
