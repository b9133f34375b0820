package line

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beemsaisuoy/my-salon-app/pkg/config"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

var errLoggerRequired = errors.New("line logger is required")

// Client pushes messages to the shop owner's LINE account via LINE Notify.
// The access token lives in shop settings, not in env config, so callers pass
// it per send.
type Client struct {
	httpClient *http.Client
	notifyURL  string
	logger     *logger.Logger
}

// NewClient initializes the LINE Notify wrapper.
func NewClient(cfg config.LineConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	notifyURL := strings.TrimSpace(cfg.NotifyURL)
	if notifyURL == "" {
		return nil, errors.New("line notify url is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		notifyURL:  notifyURL,
		logger:     logg,
	}, nil
}

// Notify sends a text message using the supplied access token. An empty token
// means the shop has not connected LINE; the send is skipped silently.
func (c *Client) Notify(ctx context.Context, token, message string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("line message is required")
	}

	form := url.Values{}
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.notifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building line notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending line notify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("line notify returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
