package command

import "strings"

const (
	// Prefix символ, с которого начинается команда
	Prefix = '/'

	botSeparator = "@"
)

// Length возвращает длину командной части в начале текста
// Командная часть продолжается, пока идут буквы, цифры и знаки пунктуации (ASCII)
// Возвращает 0, если текст не начинается с префикса команды
func Length(text string) int {
	if text == "" || text[0] != Prefix {
		return 0
	}

	for i := 0; i < len(text); i++ {
		if !isCommandChar(text[i]) {
			return i
		}
	}

	return len(text)
}

// Parse извлекает имя команды из текста сообщения
// Префикс и суффикс @bot отбрасываются. Если суффикс указывает на другого бота,
// команда считается адресованной не нам и возвращается false
func Parse(text, botUsername string) (string, bool) {
	length := Length(text)
	if length == 0 {
		return "", false
	}

	name, botName, addressed := strings.Cut(text[:length], botSeparator)
	if addressed && botName != botUsername {
		return "", false
	}

	token := name[1:]
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}

	return token, true
}

// TextWithoutCommand возвращает текст после командной части без изменений
// Для сообщения без аргументов возвращается пустая строка
func TextWithoutCommand(text string) string {
	length := Length(text)
	if length == 0 {
		return ""
	}

	return text[length:]
}

func isCommandChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c >= '!' && c <= '/', c >= ':' && c <= '@', c >= '[' && c <= '`', c >= '{' && c <= '~':
		return true
	default:
		return false
	}
}
