package telegram

import (
	"fmt"
	"net/url"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/keyboard"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
)

// Названия методов Bot API, используются в логах и метриках
const (
	opSendMessage            = "sendMessage"
	opSendPhoto              = "sendPhoto"
	opEditMessageText        = "editMessageText"
	opEditMessageReplyMarkup = "editMessageReplyMarkup"
	opDeleteMessage          = "deleteMessage"
	opAnswerCallbackQuery    = "answerCallbackQuery"
	opSetMyCommands          = "setMyCommands"
	opGetUpdates             = "getUpdates"
	opSetWebhook             = "setWebhook"
)

// Service фасад над Telegram Bot API для обработчиков команд
// Ошибки Bot API не пробрасываются: они логируются, а метод возвращает nil/false
type Service struct {
	bot                   BotAPI
	logger                Logger
	metrics               Metrics
	parseMode             string
	disableWebPagePreview bool
}

// NewService создает новый экземпляр Telegram сервиса
// Если log == nil, ошибки не логируются
func NewService(bot BotAPI, log Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		bot:     bot,
		logger:  log,
		metrics: noopMetrics{},
	}
}

// SetParseMode устанавливает режим парсинга для отправляемых и редактируемых сообщений
func (s *Service) SetParseMode(mode string) {
	s.parseMode = mode
}

// SetDisableWebPagePreview отключает превью ссылок в сообщениях
func (s *Service) SetDisableWebPagePreview(disable bool) {
	s.disableWebPagePreview = disable
}

// SetMetrics устанавливает сборщик метрик ошибок Bot API
func (s *Service) SetMetrics(m Metrics) {
	if m == nil {
		return
	}
	s.metrics = m
}

// SendMessage отправляет текстовое сообщение в чат (и топик, если topic != 0)
// replyTo - ID сообщения, на которое отвечаем, 0 без ответа
func (s *Service) SendMessage(chatID int64, topic int, text string, replyTo int) *domain.Message {
	return s.sendText(chatID, topic, text, nil, replyTo)
}

// SendMarkup отправляет сообщение с произвольной разметкой (inline или обычная клавиатура)
func (s *Service) SendMarkup(chatID int64, topic int, text string, markup interface{}, replyTo int) *domain.Message {
	return s.sendText(chatID, topic, text, markup, replyTo)
}

// SendKeyboard отправляет сообщение с inline-клавиатурой
func (s *Service) SendKeyboard(chatID int64, topic int, text string, layout keyboard.Layout, replyTo int) *domain.Message {
	return s.sendText(chatID, topic, text, layout.InlineMarkup(), replyTo)
}

// SendTo отправляет сообщение в чат и топик исходного сообщения
// При reply == true сообщение отправляется ответом на исходное
func (s *Service) SendTo(source *domain.Message, text string, reply bool) *domain.Message {
	if source.ChatID() == 0 {
		s.logger.Warn("Can't send message: source message is missing")
		return nil
	}

	replyTo := 0
	if reply {
		replyTo = source.MessageID
	}

	return s.sendText(source.ChatID(), source.Topic(), text, nil, replyTo)
}

// Reply отвечает на сообщение в том же чате и топике
func (s *Service) Reply(source *domain.Message, text string) *domain.Message {
	return s.SendTo(source, text, true)
}

// ReplyKeyboard отвечает на сообщение с inline-клавиатурой
func (s *Service) ReplyKeyboard(source *domain.Message, text string, layout keyboard.Layout) *domain.Message {
	if source.ChatID() == 0 {
		s.logger.Warn("Can't send keyboard: source message is missing")
		return nil
	}

	return s.sendText(source.ChatID(), source.Topic(), text, layout.InlineMarkup(), source.MessageID)
}

// SendPhoto отправляет фото с подписью
// photo - любой источник tgbotapi (FileURL, FileID, FilePath, FileBytes)
func (s *Service) SendPhoto(chatID int64, topic int, caption string, photo tgbotapi.RequestFileData, replyTo int) *domain.Message {
	if photo == nil {
		s.logger.Warn("Can't send photo without file to chat %d", chatID)
		return nil
	}

	params := s.baseParams(chatID, topic, replyTo)
	params.AddNonEmpty("caption", caption)

	files := []tgbotapi.RequestFile{{Name: "photo", Data: photo}}

	resp, err := s.bot.UploadFiles(opSendPhoto, params, files)
	if err != nil {
		s.metrics.IncAPIFailure(opSendPhoto)
		s.logger.Error("Failed to send photo in chat '%s' id %d reason %v", s.chatName(chatID), chatID, err)
		return nil
	}

	return s.decodeResult(opSendPhoto, resp)
}

// SendPhotoTo отправляет фото в чат и топик исходного сообщения
func (s *Service) SendPhotoTo(source *domain.Message, caption string, photo tgbotapi.RequestFileData) *domain.Message {
	if source.ChatID() == 0 {
		s.logger.Warn("Can't send photo: source message is missing")
		return nil
	}

	return s.SendPhoto(source.ChatID(), source.Topic(), caption, photo, 0)
}

// ReplyPhoto отвечает на сообщение фотографией
func (s *Service) ReplyPhoto(source *domain.Message, caption string, photo tgbotapi.RequestFileData) *domain.Message {
	if source.ChatID() == 0 {
		s.logger.Warn("Can't send photo: source message is missing")
		return nil
	}

	return s.SendPhoto(source.ChatID(), source.Topic(), caption, photo, source.MessageID)
}

// EditMessage редактирует сообщение
// Если текст непустой и отличается от текущего, меняется текст и клавиатура,
// иначе меняется только клавиатура. markup == nil убирает клавиатуру
func (s *Service) EditMessage(msg *domain.Message, text string, markup *tgbotapi.InlineKeyboardMarkup) *domain.Message {
	if msg.ChatID() == 0 {
		s.logger.Warn("Can't edit message: message is missing")
		return nil
	}

	var (
		edited tgbotapi.Message
		err    error
		op     string
	)

	if text != "" && msg.Text != text {
		op = opEditMessageText
		cfg := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, text)
		cfg.ParseMode = s.parseMode
		cfg.DisableWebPagePreview = s.disableWebPagePreview
		cfg.ReplyMarkup = markup
		edited, err = s.bot.Send(cfg)
	} else {
		op = opEditMessageReplyMarkup
		cfg := tgbotapi.EditMessageReplyMarkupConfig{
			BaseEdit: tgbotapi.BaseEdit{
				ChatID:      msg.Chat.ID,
				MessageID:   msg.MessageID,
				ReplyMarkup: markup,
			},
		}
		edited, err = s.bot.Send(cfg)
	}

	if err != nil {
		s.metrics.IncAPIFailure(op)
		s.logger.Error("Failed to edit message in chat '%s' id %d reason %v", domain.ChatName(msg.Chat), msg.Chat.ID, err)
		return nil
	}

	return domain.NewMessage(&edited).WithTopicOf(msg)
}

// EditText заменяет текст сообщения и убирает клавиатуру
func (s *Service) EditText(msg *domain.Message, text string) *domain.Message {
	return s.EditMessage(msg, text, nil)
}

// EditKeyboard заменяет только клавиатуру сообщения
func (s *Service) EditKeyboard(msg *domain.Message, layout keyboard.Layout) *domain.Message {
	return s.EditMessage(msg, "", layout.InlineMarkup())
}

// EditTextKeyboard заменяет текст и клавиатуру сообщения
func (s *Service) EditTextKeyboard(msg *domain.Message, text string, layout keyboard.Layout) *domain.Message {
	return s.EditMessage(msg, text, layout.InlineMarkup())
}

// RemoveKeyboard убирает inline-клавиатуру у сообщения, если она есть
func (s *Service) RemoveKeyboard(msg *domain.Message) {
	if msg.ChatID() == 0 || msg.ReplyMarkup == nil {
		return
	}

	s.EditMessage(msg, msg.Text, nil)
}

// EnsureMessage отправляет новое сообщение, если existing == nil, иначе редактирует existing
func (s *Service) EnsureMessage(existing *domain.Message, chatID int64, topic int, text string, markup *tgbotapi.InlineKeyboardMarkup) *domain.Message {
	if existing == nil {
		return s.sendText(chatID, topic, text, markup, 0)
	}

	return s.EditMessage(existing, text, markup)
}

// EnsureKeyboard как EnsureMessage, но с раскладкой клавиатуры
func (s *Service) EnsureKeyboard(existing *domain.Message, chatID int64, topic int, text string, layout keyboard.Layout) *domain.Message {
	return s.EnsureMessage(existing, chatID, topic, text, layout.InlineMarkup())
}

// DeleteMessage удаляет сообщение; nil сообщение игнорируется
func (s *Service) DeleteMessage(msg *domain.Message) {
	if msg.ChatID() == 0 {
		return
	}

	if _, err := s.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)); err != nil {
		s.metrics.IncAPIFailure(opDeleteMessage)
		s.logger.Error("Failed to delete message %d from chat %s, id %d, reason: %v",
			msg.MessageID, domain.ChatName(msg.Chat), msg.Chat.ID, err)
	}
}

// AnswerCallbackQuery отвечает на callback query (text показывается всплывающим уведомлением)
func (s *Service) AnswerCallbackQuery(callbackQueryID, text string) bool {
	resp, err := s.bot.Request(tgbotapi.NewCallback(callbackQueryID, text))
	if err != nil {
		s.metrics.IncAPIFailure(opAnswerCallbackQuery)
		s.logger.Error("Failed to answer callback query %s reason %v", callbackQueryID, err)
		return false
	}

	return resp.Ok
}

// PublishCommands публикует меню команд бота (setMyCommands)
func (s *Service) PublishCommands(commands []tgbotapi.BotCommand) bool {
	if _, err := s.bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		s.metrics.IncAPIFailure(opSetMyCommands)
		s.logger.Error("Failed to set bot commands: %v", err)
		return false
	}

	return true
}

// ClearOldUpdates подтверждает все накопленные обновления, кроме последнего
func (s *Service) ClearOldUpdates() {
	params := make(tgbotapi.Params)
	params.AddNonZero("offset", -1)
	params.AddNonZero("limit", 1)

	if _, err := s.bot.MakeRequest(opGetUpdates, params); err != nil {
		s.metrics.IncAPIFailure(opGetUpdates)
		s.logger.Error("Failed to clear old updates: %v", err)
	}
}

// SetWebhook устанавливает webhook URL для получения обновлений от Telegram
// secretToken передаётся Telegram в заголовке X-Telegram-Bot-Api-Secret-Token, пустой не задаётся
func (s *Service) SetWebhook(webhookURL, secretToken string, allowedUpdates []string) error {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return fmt.Errorf("%w: invalid webhook url: %v", ErrSetWebhook, err)
	}

	params := make(tgbotapi.Params)
	params.AddNonEmpty("url", webhookURL)
	params.AddNonEmpty("secret_token", secretToken)
	if len(allowedUpdates) > 0 {
		if err := params.AddInterface("allowed_updates", allowedUpdates); err != nil {
			return fmt.Errorf("%w: %v", ErrSetWebhook, err)
		}
	}

	if _, err := s.bot.MakeRequest(opSetWebhook, params); err != nil {
		return fmt.Errorf("%w: %v", ErrSetWebhook, err)
	}

	return nil
}

// DeleteWebhook удаляет webhook (переключает на long polling)
func (s *Service) DeleteWebhook(dropPendingUpdates bool) error {
	deleteWebhook := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: dropPendingUpdates,
	}

	if _, err := s.bot.Request(deleteWebhook); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteWebhook, err)
	}

	return nil
}

// sendText отправляет sendMessage через параметры, так как MessageConfig не поддерживает топики
func (s *Service) sendText(chatID int64, topic int, text string, markup interface{}, replyTo int) *domain.Message {
	if text == "" {
		s.logger.Warn("Can't send empty messages")
		return nil
	}

	if chatID == 0 {
		s.logger.Warn("Can't send message without chat id")
		return nil
	}

	params := s.baseParams(chatID, topic, replyTo)
	params.AddNonEmpty("text", text)
	params.AddBool("disable_web_page_preview", s.disableWebPagePreview)

	if err := addMarkup(params, markup); err != nil {
		s.logger.Error("Failed to send message to chat %d: %v", chatID, err)
		return nil
	}

	resp, err := s.bot.MakeRequest(opSendMessage, params)
	if err != nil {
		s.metrics.IncAPIFailure(opSendMessage)
		s.logger.Error("Failed to send message to chat '%s' id %d reason %v", s.chatName(chatID), chatID, err)
		return nil
	}

	return s.decodeResult(opSendMessage, resp)
}

func (s *Service) baseParams(chatID int64, topic int, replyTo int) tgbotapi.Params {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero("message_thread_id", topic)
	params.AddNonZero("reply_to_message_id", replyTo)
	params.AddBool("allow_sending_without_reply", replyTo != 0)
	params.AddNonEmpty("parse_mode", s.parseMode)

	return params
}

func (s *Service) decodeResult(op string, resp *tgbotapi.APIResponse) *domain.Message {
	msg, err := domain.DecodeMessage(resp.Result)
	if err != nil {
		s.metrics.IncAPIFailure(op)
		s.logger.Error("%v: %s: %v", ErrDecodeResult, op, err)
		return nil
	}

	return msg
}

// chatName возвращает имя чата для логов, при ошибке getChat - его ID
func (s *Service) chatName(chatID int64) string {
	chat, err := s.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return strconv.FormatInt(chatID, 10)
	}

	if name := domain.ChatName(&chat); name != "" {
		return name
	}

	return strconv.FormatInt(chatID, 10)
}

func addMarkup(params tgbotapi.Params, markup interface{}) error {
	switch m := markup.(type) {
	case nil:
		return nil
	case *tgbotapi.InlineKeyboardMarkup:
		if m == nil {
			return nil
		}
	case *tgbotapi.ReplyKeyboardMarkup:
		if m == nil {
			return nil
		}
	}

	if err := params.AddInterface("reply_markup", markup); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeMarkup, err)
	}

	return nil
}

type noopMetrics struct{}

func (noopMetrics) IncAPIFailure(string) {}
