package dispatcher

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/command"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/pkg/logger"
	"github.com/m04kA/SMC-BotCore/pkg/metrics"
)

// MessageListener обработчик входящего сообщения
type MessageListener func(ctx context.Context, msg *domain.Message) error

// CallbackListener обработчик нажатия inline-кнопки
// source - сообщение с клавиатурой (nil для inline-режима)
type CallbackListener func(ctx context.Context, query *tgbotapi.CallbackQuery, source *domain.Message) error

// ChatMemberListener обработчик изменения статуса бота в чате
type ChatMemberListener func(ctx context.Context, update *tgbotapi.ChatMemberUpdated) error

// Dispatcher распределяет обновления по слушателям
// Сообщения с префиксом команды уходят в реестр команд, остальные события в свои слушатели.
// Слушатели регистрируются до запуска опроса
type Dispatcher struct {
	router   CommandRouter
	username string
	logger   Logger
	metrics  Metrics

	anyMessage        []MessageListener
	nonCommandMessage []MessageListener
	unknownCommand    []MessageListener
	callbackQuery     []CallbackListener
	myChatMember      []ChatMemberListener
}

// New создает диспетчер
// username - имя бота, команды вида /cmd@other_bot игнорируются
func New(router CommandRouter, username string, log Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}

	return &Dispatcher{
		router:   router,
		username: username,
		logger:   log,
	}
}

// SetMetrics устанавливает сборщик метрик команд
func (d *Dispatcher) SetMetrics(m Metrics) {
	d.metrics = m
}

// OnAnyMessage регистрирует слушателя всех сообщений, включая команды
func (d *Dispatcher) OnAnyMessage(listener MessageListener) {
	d.anyMessage = append(d.anyMessage, listener)
}

// OnNonCommandMessage регистрирует слушателя сообщений без префикса команды
func (d *Dispatcher) OnNonCommandMessage(listener MessageListener) {
	d.nonCommandMessage = append(d.nonCommandMessage, listener)
}

// OnUnknownCommand регистрирует слушателя команд, которых нет в реестре
func (d *Dispatcher) OnUnknownCommand(listener MessageListener) {
	d.unknownCommand = append(d.unknownCommand, listener)
}

// OnCallbackQuery регистрирует слушателя нажатий inline-кнопок
func (d *Dispatcher) OnCallbackQuery(listener CallbackListener) {
	d.callbackQuery = append(d.callbackQuery, listener)
}

// OnMyChatMember регистрирует слушателя изменений статуса бота в чатах
func (d *Dispatcher) OnMyChatMember(listener ChatMemberListener) {
	d.myChatMember = append(d.myChatMember, listener)
}

// HandleUpdate обрабатывает одно обновление
// Ошибки и паники обработчиков команд логируются и не возвращаются.
// Ошибки остальных слушателей возвращаются вызывающему
func (d *Dispatcher) HandleUpdate(ctx context.Context, update domain.Update) error {
	if msg := update.Incoming; msg != nil {
		return d.handleMessage(ctx, msg)
	}

	if query := update.CallbackQuery; query != nil {
		for _, listener := range d.callbackQuery {
			if err := listener(ctx, query, update.CallbackSource); err != nil {
				return fmt.Errorf("%w: callback query %s: %v", ErrListener, query.ID, err)
			}
		}
		return nil
	}

	if member := update.MyChatMember; member != nil {
		for _, listener := range d.myChatMember {
			if err := listener(ctx, member); err != nil {
				return fmt.Errorf("%w: my chat member in chat %d: %v", ErrListener, member.Chat.ID, err)
			}
		}
	}

	return nil
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *domain.Message) error {
	for _, listener := range d.anyMessage {
		if err := listener(ctx, msg); err != nil {
			return fmt.Errorf("%w: message %d: %v", ErrListener, msg.MessageID, err)
		}
	}

	if strings.HasPrefix(msg.Text, string(command.Prefix)) {
		d.broadcastCommand(ctx, msg)
		return nil
	}

	for _, listener := range d.nonCommandMessage {
		if err := listener(ctx, msg); err != nil {
			return fmt.Errorf("%w: message %d: %v", ErrListener, msg.MessageID, err)
		}
	}

	return nil
}

// broadcastCommand выполняет команду из текста сообщения, незарегистрированные уходят слушателям неизвестных команд
func (d *Dispatcher) broadcastCommand(ctx context.Context, msg *domain.Message) {
	token, ok := command.Parse(msg.Text, d.username)
	if !ok {
		return
	}

	if d.RunCommand(ctx, token, msg) {
		return
	}

	for _, listener := range d.unknownCommand {
		if err := listener(ctx, msg); err != nil {
			d.logger.Error("Caught error on '%s' command broadcast: %v", token, err)
			return
		}
	}
}

// RunCommand вызывает обработчик зарегистрированной команды, перехватывая ошибки и паники
// Возвращает false, если команда не зарегистрирована. Ошибки обработчика только логируются
func (d *Dispatcher) RunCommand(ctx context.Context, token string, msg *domain.Message) (handled bool) {
	// Метрика пишется только для зарегистрированных команд
	status := ""
	defer func() {
		if r := recover(); r != nil {
			handled = true
			status = metrics.CommandStatusFailed
			d.logger.Error("Caught error on '%s' command broadcast: %v", token, r)
		}
		if d.metrics != nil && status != "" {
			d.metrics.IncCommand(token, status)
		}
	}()

	ok, err := d.router.Dispatch(ctx, token, msg)
	if !ok {
		return false
	}

	status = metrics.CommandStatusOK
	if err != nil {
		status = metrics.CommandStatusFailed
		d.logger.Error("Caught error on '%s' command broadcast: %v", token, err)
	}

	return true
}
