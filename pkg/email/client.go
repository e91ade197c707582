package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lisatcreative/printshop-backend/pkg/config"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

const defaultSendTimeout = 10 * time.Second

var (
	errAPIKeyRequired = errors.New("resend api key is required")
	errFromRequired   = errors.New("resend from address is required")
	errLoggerRequired = errors.New("email logger is required")
)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	ReplyTo string
}

// Sender delivers a single message. Implemented by Client; stubbed in tests.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client sends transactional email through the Resend REST API with
// centralized auth, timeouts, logging, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
	logger     *logger.Logger
}

// NewClient validates the Resend credentials and builds the sender.
func NewClient(ctx context.Context, cfg config.ResendConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	from := strings.TrimSpace(cfg.FromAddress)
	if from == "" {
		return nil, errFromRequired
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		from:       from,
		logger:     logg,
	}

	logg.Info(ctx, "resend client initialized")
	return c, nil
}

// Send posts the message to Resend. The request is bounded by the configured
// timeout; failures are mapped to dependency errors and never retried here.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.httpClient == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "email client not initialized")
	}
	if len(msg.To) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "email recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email subject is required")
	}

	payload := sendRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building email request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log(ctx, "request", msg.Subject, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", msg.Subject, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending email")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := fmt.Errorf("resend responded %d: %s", resp.StatusCode, readErrorBody(resp.Body))
		c.log(ctx, "error", msg.Subject, apiErr)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, apiErr, "sending email")
	}

	c.log(ctx, "response", msg.Subject, nil)
	return nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 2048))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (c *Client) log(ctx context.Context, phase, subject string, err error) {
	if c == nil || c.logger == nil {
		return
	}
	ctx = c.logger.WithFields(ctx, map[string]any{
		"phase":   phase,
		"subject": subject,
	})
	if err != nil {
		c.logger.Error(ctx, "resend send", err)
		return
	}
	c.logger.Info(ctx, fmt.Sprintf("resend %s", phase))
}
