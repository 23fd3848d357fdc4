// Package backend is the client of the remote mini-app backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

// InitDataHeader carries Telegram init data to the backend.
const InitDataHeader = "x-telegram-init-data"

// Client talks to the backend on behalf of a Telegram user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of every request. It works on a copy, so a
// client passed to WithHTTPClient is not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMe fetches the profile and stats of the user behind initData.
func (c *Client) GetMe(ctx context.Context, initData string) (*entities.MeResponse, error) {
	var me entities.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/me", initData, nil, &me); err != nil {
		return nil, err
	}
	if me.Profile == nil || me.Stats == nil {
		return nil, fmt.Errorf("%w: profile or stats missing", ErrInvalidResponse)
	}
	return &me, nil
}

// UpdateStats adds xp and optionally sets the streak.
func (c *Client) UpdateStats(ctx context.Context, initData string, req entities.UpdateStatsRequest) (*entities.SuccessResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var resp entities.SuccessResponse
	if err := c.do(ctx, http.MethodPost, "/api/stats", initData, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProgress lists the lesson progress of the user.
func (c *Client) GetProgress(ctx context.Context, initData string) ([]entities.LessonProgress, error) {
	var progress []entities.LessonProgress
	if err := c.do(ctx, http.MethodGet, "/api/progress", initData, nil, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// UpdateProgress stores the status of one lesson.
func (c *Client) UpdateProgress(ctx context.Context, initData string, req entities.UpdateProgressRequest) (*entities.SuccessResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var resp entities.SuccessResponse
	if err := c.do(ctx, http.MethodPost, "/api/progress", initData, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, endpoint, initData string, body, out any) error {
	if initData == "" {
		return ErrInitDataMissing
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(InitDataHeader, initData)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := fmt.Sprintf("request failed: %d", status)
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}
