package botapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
)

// Client клиент Telegram Bot API
// HTTP клиент tgbotapi после создания не меняется. getUpdates идёт через отдельный клиент
// без таймаута, ограничение времени запроса задаётся контекстом из readTimeout
type Client struct {
	bot        *tgbotapi.BotAPI
	pollClient *http.Client
	token      string
	endpoint   string

	mu          sync.Mutex
	readTimeout time.Duration
}

// NewClient создает клиент Bot API и проверяет токен через getMe
// endpoint в формате tgbotapi.APIEndpoint ("https://api.telegram.org/bot%s/%s")
func NewClient(token, endpoint string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	httpClient := &http.Client{Timeout: timeout}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	return &Client{
		bot:         bot,
		pollClient:  &http.Client{Transport: httpClient.Transport},
		token:       token,
		endpoint:    endpoint,
		readTimeout: timeout,
	}, nil
}

// Bot возвращает низкоуровневый клиент tgbotapi
func (c *Client) Bot() *tgbotapi.BotAPI {
	return c.bot
}

// Username возвращает username бота, полученный через getMe
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// BotID возвращает ID бота
func (c *Client) BotID() int64 {
	return c.bot.Self.ID
}

// ReadTimeout возвращает текущий таймаут запроса getUpdates
func (c *Client) ReadTimeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.readTimeout
}

// EnsureReadTimeout увеличивает таймаут getUpdates до d, если он меньше
// Нулевой таймаут (без ограничения) не меняется. Остальные методы Bot API сохраняют исходный таймаут
func (c *Client) EnsureReadTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.readTimeout != 0 && c.readTimeout < d {
		c.readTimeout = d
	}
}

// GetUpdates запрашивает обновления через getUpdates
// В отличие от tgbotapi.GetUpdates учитывает контекст и сохраняет поля топиков
func (c *Client) GetUpdates(ctx context.Context, req UpdatesRequest) ([]domain.Update, error) {
	values := url.Values{}
	if req.Offset != 0 {
		values.Set("offset", strconv.Itoa(req.Offset))
	}
	if req.Limit > 0 {
		values.Set("limit", strconv.Itoa(req.Limit))
	}
	values.Set("timeout", strconv.Itoa(int(req.Timeout/time.Second)))
	if len(req.AllowedUpdates) > 0 {
		allowed, err := json.Marshal(req.AllowedUpdates)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode allowed_updates: %v", ErrInternal, err)
		}
		values.Set("allowed_updates", string(allowed))
	}

	endpoint := fmt.Sprintf(c.endpoint, c.token, "getUpdates")

	if timeout := c.ReadTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.pollClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Telegram отвечает JSON с ok=false и для 4xx/5xx, поэтому статус не проверяем
	var apiResp tgbotapi.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response (status %d): %v", ErrInvalidResponse, resp.StatusCode, err)
	}

	if !apiResp.Ok {
		apiErr := &tgbotapi.Error{
			Code:    apiResp.ErrorCode,
			Message: apiResp.Description,
		}
		if apiResp.Parameters != nil {
			apiErr.ResponseParameters = *apiResp.Parameters
		}
		return nil, fmt.Errorf("%w: %w", ErrAPI, apiErr)
	}

	updates, err := domain.DecodeUpdates(apiResp.Result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return updates, nil
}
