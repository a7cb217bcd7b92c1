package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// Notifier is a local stand-in for the notification delivery service. It
// logs each dispatch and returns the delivery receipt the remote service
// would produce.
type Notifier struct {
	log zerolog.Logger
}

// NewNotifier creates a local notifier.
func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{log: log}
}

// SendEmail records an email dispatch.
func (n *Notifier) SendEmail(_ context.Context, recipient, subject, _, poID string) (client.Result, error) {
	id := fmt.Sprintf("EMAIL_%s", time.Now().Format("20060102150405"))
	n.log.Info().
		Str("notification_id", id).
		Str("recipient", recipient).
		Str("po_id", poID).
		Msg("Email notification dispatched")

	return client.Result{
		"sent":            true,
		"notification_id": id,
		"recipient":       recipient,
		"subject":         subject,
		"po_id":           poID,
		"sent_at":         time.Now().Format(time.RFC3339),
		"method":          "email",
		"message":         fmt.Sprintf("Email notification sent to %s", recipient),
	}, nil
}

// SendChat records a chat-channel dispatch.
func (n *Notifier) SendChat(_ context.Context, channel, message, poID string) (client.Result, error) {
	id := fmt.Sprintf("CHAT_%s", time.Now().Format("20060102150405"))
	n.log.Info().
		Str("notification_id", id).
		Str("channel", channel).
		Str("po_id", poID).
		Msg("Chat notification dispatched")

	return client.Result{
		"sent":            true,
		"notification_id": id,
		"channel":         channel,
		"text":            message,
		"po_id":           poID,
		"sent_at":         time.Now().Format(time.RFC3339),
		"method":          "chat",
		"message":         fmt.Sprintf("Chat notification sent to %s", channel),
	}, nil
}
