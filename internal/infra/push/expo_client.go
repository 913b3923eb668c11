// Package push delivers notifications to device push tokens through an
// external gateway.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"counsel/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultGatewayTimeout = 30 * time.Second

// expoClient implements PushService by sending HTTP POST requests to an
// Expo-compatible push gateway.
type expoClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// gatewayTicket is the per-message receipt inside the gateway response.
type gatewayTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type gatewayResponse struct {
	Data gatewayTicket `json:"data"`
}

// NewExpoClient creates a push client for the given gateway endpoint.
func NewExpoClient(endpoint string, timeout time.Duration, logger *slog.Logger) service.PushService {
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}

	return &expoClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send posts a single message to the gateway. Delivery counts as accepted
// only when the gateway reports ticket status "ok"; any other outcome is
// returned as an error carrying the raw gateway response.
func (c *expoClient) Send(ctx context.Context, message *service.PushMessage) error {
	payload := map[string]any{
		"to":    message.To,
		"sound": "default",
		"title": message.Title,
		"body":  message.Body,
		"data":  message.Data,
	}
	if message.Badge > 0 {
		payload["badge"] = message.Badge
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "push gateway request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read push gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("push gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed gatewayResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return errors.Errorf("undecodable push gateway response: %s", string(raw))
	}

	if parsed.Data.Status != "ok" {
		return errors.Errorf("push gateway rejected message: %s", string(raw))
	}

	c.logger.Debug("[Push] Gateway accepted message",
		slog.String("ticket_id", parsed.Data.ID),
	)

	return nil
}
