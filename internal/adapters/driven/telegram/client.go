package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Messenger = (*Client)(nil)

const defaultBaseURL = "https://api.telegram.org"

// Telegram allows about 30 messages per second per bot.
const (
	sendRate  = 30
	sendBurst = 30
)

// Client talks to the Telegram Bot API.
// The bot token is part of every request path, so transport errors are
// unwrapped before they are returned to keep the URL out of logs.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu       sync.Mutex
	username string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 15s-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSendRate caps outbound messages per second. Non-positive values keep the default.
func WithSendRate(perSecond int) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		}
	}
}

// NewClient creates a Bot API client. An empty baseURL uses the public API.
func NewClient(token, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		token:      token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(sendRate, sendBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage delivers text to a chat and returns the message id.
func (c *Client) SendMessage(ctx context.Context, chatID, text, parseMode string) (int64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("wait for send slot: %w", err)
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: parseMode})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.call(ctx, http.MethodPost, "sendMessage", payload)
	if err != nil {
		return 0, err
	}
	if !resp.OK {
		return 0, sendError(resp)
	}

	var msg struct {
		MessageID int64 `json:"message_id"`
	}
	if err := json.Unmarshal(resp.Result, &msg); err != nil {
		return 0, fmt.Errorf("%w: telegram: decode message: %v", domain.ErrProvider, err)
	}
	return msg.MessageID, nil
}

// BotUsername returns the bot's username from getMe. The first successful
// answer is cached for the life of the client.
func (c *Client) BotUsername(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.username
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	resp, err := c.call(ctx, http.MethodGet, "getMe", nil)
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", &domain.ProviderError{
			Provider:    domain.ProviderTelegram,
			StatusCode:  resp.ErrorCode,
			Description: resp.Description,
		}
	}

	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(resp.Result, &me); err != nil || me.Username == "" {
		return "", fmt.Errorf("%w: telegram: getMe returned no username", domain.ErrProvider)
	}

	c.mu.Lock()
	c.username = me.Username
	c.mu.Unlock()
	return me.Username, nil
}

func (c *Client) call(ctx context.Context, method, apiMethod string, body []byte) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/bot"+c.token+"/"+apiMethod, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: telegram: create request", domain.ErrProvider)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: telegram %s: %v", domain.ErrProvider, apiMethod, stripURL(err))
	}
	defer func() { _ = resp.Body.Close() }()

	var out apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, &domain.ProviderError{
			Provider:    domain.ProviderTelegram,
			StatusCode:  resp.StatusCode,
			Description: "unreadable response",
		}
	}
	if !out.OK && out.ErrorCode == 0 {
		out.ErrorCode = resp.StatusCode
	}
	return &out, nil
}

// sendError maps Bot API failures onto the channel errors the verifier understands.
func sendError(resp *apiResponse) error {
	switch {
	case resp.ErrorCode == http.StatusBadRequest && strings.Contains(strings.ToLower(resp.Description), "chat not found"):
		return fmt.Errorf("telegram: %w", domain.ErrChannelNotFound)
	case resp.ErrorCode == http.StatusForbidden:
		return fmt.Errorf("telegram: %w", domain.ErrChannelBlocked)
	}
	return &domain.ProviderError{
		Provider:    domain.ProviderTelegram,
		StatusCode:  resp.ErrorCode,
		Description: resp.Description,
	}
}

// stripURL drops the request URL (which embeds the bot token) from transport errors.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
