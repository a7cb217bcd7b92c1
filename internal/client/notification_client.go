package client

import "context"

// NotificationClient talks to the remote notification delivery service.
type NotificationClient struct {
	client *httpClient
}

// NewNotificationClient creates a notification client for the given base URL.
func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{client: newHTTPClient(baseURL)}
}

type emailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	POID      string `json:"po_id,omitempty"`
}

// SendEmail delivers an email notification.
func (c *NotificationClient) SendEmail(ctx context.Context, recipient, subject, body, poID string) (Result, error) {
	return c.client.post(ctx, "/api/v1/notifications/email", emailRequest{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		POID:      poID,
	})
}

type chatRequest struct {
	Channel string `json:"channel"`
	Message string `json:"message"`
	POID    string `json:"po_id,omitempty"`
}

// SendChat posts a message to an internal chat channel.
func (c *NotificationClient) SendChat(ctx context.Context, channel, message, poID string) (Result, error) {
	return c.client.post(ctx, "/api/v1/notifications/chat", chatRequest{
		Channel: channel,
		Message: message,
		POID:    poID,
	})
}
