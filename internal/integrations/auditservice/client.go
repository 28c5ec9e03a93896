package auditservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент журнала аудита. Все уведомления отправляются асинхронно
// по принципу fire-and-forget: сбой аудита логируется, но никогда не
// блокирует и не ломает основную операцию.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента AuditService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

// Record отправляет событие аудита в фоне.
// Контекст запроса не используется: время жизни уведомления не должно
// зависеть от завершения HTTP запроса, породившего событие.
func (c *Client) Record(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.send(ctx, event); err != nil {
			c.log.Warn("audit: failed to record event action=%s actor=%d: %v", event.Action, event.ActorID, err)
		}
	}()
}

func (c *Client) send(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/audit/events", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return nil
}
