package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"filmapp/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	telegramAPIURL = "https://api.telegram.org/bot"
	defaultTimeout = 10 * time.Second
)

type TelegramClient struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

type TelegramConfig struct {
	BaseURL  string
	BotToken string
	// RatePerSecond caps outgoing calls; Telegram rejects bursts above ~30/s.
	RatePerSecond float64
	Timeout       time.Duration
	Logger        *logrus.Logger
}

func NewTelegramClient(config *TelegramConfig) *TelegramClient {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = telegramAPIURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.RatePerSecond <= 0 {
		config.RatePerSecond = 25
	}

	return &TelegramClient{
		baseURL:    config.BaseURL,
		botToken:   config.BotToken,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RatePerSecond), 1),
		logger:     config.Logger,
	}
}

// SendMessage sends an HTML formatted text message to a Telegram chat.
func (c *TelegramClient) SendMessage(ctx context.Context, chatId int, text string) error {
	return c.call(ctx, "sendMessage", models.TelegramResponse{
		ChatId:    chatId,
		Text:      text,
		ParseMode: "HTML",
	})
}

// SetBotCommands publishes the command menu shown by Telegram clients.
func (c *TelegramClient) SetBotCommands(ctx context.Context) error {
	// NOTE: keep in sync with bot.Handler.dispatch
	commands := []models.BotCommandMenu{
		{Command: "films", Description: "🎬 Show all films"},
		{Command: "favourites", Description: "⭐ Show your favourite films"},
		{Command: "like", Description: "➕ Add a film to favourites by id"},
		{Command: "unlike", Description: "🗑 Remove a film from favourites by id"},
		{Command: "reset", Description: "🔄 Forget your saved films and favourites"},
		{Command: "help", Description: "❓ Show help and available commands"},
	}

	return c.call(ctx, "setMyCommands", map[string]interface{}{
		"commands": commands,
	})
}

func (c *TelegramClient) call(ctx context.Context, method string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s%s/%s", c.baseURL, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram %s API error (status %d)", method, resp.StatusCode)
	}

	c.logger.WithField("method", method).Debug("Telegram request successful")
	return nil
}

// ParseTelegramRequest parses an incoming Telegram webhook HTTP request
// and returns the decoded Update object.
func ParseTelegramRequest(r *http.Request) (*models.Update, error) {
	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		return nil, err
	}
	return &update, nil
}
