package whatsapp

import (
	"context"
	"fmt"

	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/comunidad/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// sendRequest is the gateway's message payload
type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// sendResponse is the gateway's reply
type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Client sends messages through a WhatsApp HTTP gateway. It implements
// notification.Sender; one failed send never aborts a batch, the caller
// records it and moves on.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a WhatsApp gateway client
func NewClient(cfg *config.WhatsAppConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// SendReminder messages a resident that the current cycle's dues are coming up
func (c *Client) SendReminder(ctx context.Context, to notification.Recipient) (string, error) {
	message := fmt.Sprintf("Hola %s, le recordamos que su cuota de condominio vence pronto. Gracias por mantenerse al día.", to.Name)
	if to.Amount != "" {
		message = fmt.Sprintf("Hola %s, le recordamos que su cuota de condominio de %s vence pronto. Gracias por mantenerse al día.", to.Name, to.Amount)
	}
	if err := c.send(ctx, to.Phone, message); err != nil {
		return "", err
	}
	return message, nil
}

// SendOverdueNotice messages a resident whose dues have lapsed
func (c *Client) SendOverdueNotice(ctx context.Context, to notification.Recipient) (string, error) {
	message := fmt.Sprintf("Estimado(a) %s, su cuota de condominio se encuentra vencida. Por favor regularice su pago para mantener activos sus controles de acceso.", to.Name)
	if err := c.send(ctx, to.Phone, message); err != nil {
		return "", err
	}
	return message, nil
}

func (c *Client) send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return fmt.Errorf("recipient has no phone number")
	}

	var result sendResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sendRequest{Phone: phone, Message: message}).
		SetResult(&result).
		SetError(&result).
		Post("/messages")
	if err != nil {
		c.logger.Warn("WhatsApp send failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return fmt.Errorf("whatsapp gateway unreachable: %w", err)
	}

	if resp.IsError() || !result.Success {
		c.logger.Warn("WhatsApp gateway rejected message",
			zap.String("phone", phone),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("gateway_error", result.Error),
		)
		return fmt.Errorf("whatsapp gateway rejected message: status %d", resp.StatusCode())
	}

	c.logger.Debug("WhatsApp message sent", zap.String("phone", phone))
	return nil
}
