// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"customer-admin/internal/domain/customer"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Ack is the server's acknowledgement of a mutation.
type Ack struct {
	Message  string
	Customer *customer.Customer
}

// CustomerClient calls the customer REST endpoints. Every call is
// single-shot; nothing is retried.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *CustomerClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CustomerClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type envelope[T any] struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Data     T                 `json:"data"`
	Error    string            `json:"error"`
	Conflict string            `json:"conflict"`
	Fields   map[string]string `json:"fields"`
}

// List fetches every customer in server order.
func (c *CustomerClient) List(ctx context.Context) ([]customer.Customer, error) {
	var env envelope[[]customer.Customer]
	if err := c.do(ctx, http.MethodGet, "/customer/getall", nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []customer.Customer{}, nil
	}
	return env.Data, nil
}

// Create adds a customer. The id of in is ignored.
func (c *CustomerClient) Create(ctx context.Context, in *customer.Customer) (*Ack, error) {
	body := *in
	body.ID = 0
	var env envelope[*customer.Customer]
	if err := c.do(ctx, http.MethodPost, "/customer/add", &body, &env); err != nil {
		return nil, err
	}
	return &Ack{Message: env.Message, Customer: env.Data}, nil
}

// Update replaces customer id with in.
func (c *CustomerClient) Update(ctx context.Context, id int64, in *customer.Customer) (*Ack, error) {
	var env envelope[*customer.Customer]
	path := fmt.Sprintf("/customer/update/%d", id)
	if err := c.do(ctx, http.MethodPut, path, in, &env); err != nil {
		return nil, err
	}
	return &Ack{Message: env.Message, Customer: env.Data}, nil
}

// Delete removes customer id.
func (c *CustomerClient) Delete(ctx context.Context, id int64) (*Ack, error) {
	var env envelope[*customer.Customer]
	path := fmt.Sprintf("/customer/delete/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &env); err != nil {
		return nil, err
	}
	return &Ack{Message: env.Message}, nil
}

func (c *CustomerClient) do(ctx context.Context, method, path string, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("customer api unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := sonic.Unmarshal(raw, out); err != nil {
			c.logger.Error("customer api sent an unreadable reply",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.Error(err),
			)
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return c.replyError(method, path, resp.StatusCode, raw)
}

func (c *CustomerClient) replyError(method, path string, status int, raw []byte) error {
	var env envelope[struct{}]
	_ = sonic.Unmarshal(raw, &env)

	if status == http.StatusConflict {
		reason := customer.ConflictReason(env.Conflict)
		if reason.Valid() {
			return &ConflictError{Reason: reason, Message: env.Message}
		}
	}

	serr := &StatusError{
		Method:  method,
		Path:    path,
		Code:    status,
		Message: env.Message,
		Fields:  env.Fields,
	}
	if status != http.StatusNotFound {
		c.logger.Warn("customer api rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("message", env.Message),
		)
	}
	return serr
}
