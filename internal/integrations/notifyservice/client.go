package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Движок только решает, что уведомление требуется; доставкой занимается NotifyService,
// который отчитывается флагом sent.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendStatusNotification отправляет сигнал о смене статуса записи
// Возвращает true, если NotifyService подтвердил доставку.
func (c *Client) SendStatusNotification(ctx context.Context, notification *StatusNotification) (bool, error) {
	url := fmt.Sprintf("%s/internal/notifications/status", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return false, fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result notificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return result.Sent, nil
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation
// При недоступности NotifyService возвращает sent=false и ErrServiceDegraded:
// смена статуса записи не должна падать из-за недоступной рассылки.
func (c *Client) SendWithGracefulDegradation(ctx context.Context, notification *StatusNotification) (bool, error) {
	sent, err := c.SendStatusNotification(ctx, notification)
	if err != nil {
		c.log.Error("NotifyService unavailable, applying graceful degradation for appointment_id=%d: %v",
			notification.AppointmentID, err)
		return false, fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, notification.AppointmentID, err)
	}

	c.log.Info("Status notification for appointment_id=%d delivered=%t", notification.AppointmentID, sent)
	return sent, nil
}
