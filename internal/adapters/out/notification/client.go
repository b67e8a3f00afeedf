// Package notification hands notifications to the notification service.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/ports"
)

type notificationRequest struct {
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// Client implements ports.Notifier with POST {baseURL}/notifications.
// Any 2xx answer counts as accepted.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Notify(ctx context.Context, n ports.Notification) error {
	body, err := json.Marshal(notificationRequest{
		UserID:  n.UserID,
		Type:    n.Type,
		OrderID: n.OrderID,
		Message: n.Message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify %s: %w", n.Type, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify %s: unexpected status %d", n.Type, resp.StatusCode)
	}
	return nil
}
