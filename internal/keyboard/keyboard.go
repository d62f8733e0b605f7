package keyboard

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button кнопка клавиатуры
// Отключённые кнопки не попадают в разметку Telegram
type Button struct {
	Text         string
	CallbackData string
	Enabled      bool
}

// Row строка кнопок
type Row []Button

// Layout раскладка клавиатуры по строкам
type Layout []Row

// NewButton создаёт включённую кнопку без callback данных
func NewButton(text string) Button {
	return Button{Text: text, Enabled: true}
}

// NewCallbackButton создаёт включённую кнопку с callback данными
func NewCallbackButton(text, data string) Button {
	return Button{Text: text, CallbackData: data, Enabled: true}
}

// FlatRow создаёт строку кнопок без callback данных
func FlatRow(texts []string) Row {
	row := make(Row, 0, len(texts))
	for _, text := range texts {
		row = append(row, NewButton(text))
	}

	return row
}

// Flat создаёт раскладку из одной строки со всеми кнопками
func Flat(texts []string) Layout {
	return Layout{FlatRow(texts)}
}

// Grid раскладывает кнопки по rowSize в строке, последняя строка может быть короче
// Callback данные кнопки вычисляются через keyFn, при nil используется текст кнопки
// При rowSize <= 0 или пустом списке возвращается пустая раскладка
func Grid(texts []string, rowSize int, keyFn func(string) string) Layout {
	if rowSize <= 0 || len(texts) == 0 {
		return Layout{}
	}

	if keyFn == nil {
		keyFn = func(text string) string { return text }
	}

	layout := make(Layout, 0, (len(texts)+rowSize-1)/rowSize)
	row := make(Row, 0, rowSize)

	for _, text := range texts {
		row = append(row, NewCallbackButton(text, keyFn(text)))

		if len(row) == rowSize {
			layout = append(layout, row)
			row = make(Row, 0, rowSize)
		}
	}

	if len(row) > 0 {
		layout = append(layout, row)
	}

	return layout
}

// InlineMarkup преобразует раскладку в inline-клавиатуру
// Отключённые кнопки и пустые строки отбрасываются; если кнопок не осталось, возвращается nil
func (l Layout) InlineMarkup() *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, row := range l {
		var buttons []tgbotapi.InlineKeyboardButton

		for _, button := range row {
			if !button.Enabled {
				continue
			}

			// Telegram не принимает inline-кнопку без callback_data
			data := button.CallbackData
			if data == "" {
				data = button.Text
			}

			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, data))
		}

		if len(buttons) > 0 {
			rows = append(rows, buttons)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// ReplyMarkup преобразует раскладку в обычную клавиатуру под полем ввода
// Callback данные игнорируются; если кнопок не осталось, возвращается nil
func (l Layout) ReplyMarkup() *tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	for _, row := range l {
		var buttons []tgbotapi.KeyboardButton

		for _, button := range row {
			if button.Enabled {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(button.Text))
			}
		}

		if len(buttons) > 0 {
			rows = append(rows, buttons)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	return &markup
}
