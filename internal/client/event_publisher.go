package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// EventPublisher publishes workflow lifecycle events to NATS for consumption
// by downstream notification consumers.
//
// Subject convention: notifications.po.<event_type>
// Event types: approved, rejected, pending_approval, failed
//
// All publish operations are non-fatal — errors are logged but never
// propagated to the caller, so event delivery failures never affect the
// workflow outcome.
type EventPublisher struct {
	nc  *nats.Conn
	log zerolog.Logger
}

// WorkflowEvent is the JSON schema published to NATS.
type WorkflowEvent struct {
	EventType  string         `json:"event_type"`
	POID       string         `json:"po_id"`
	SupplierID string         `json:"supplier_id,omitempty"`
	Department string         `json:"department,omitempty"`
	Decision   string         `json:"decision"`
	Reason     string         `json:"reason,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEventPublisher creates a publisher backed by the given NATS connection.
// A nil connection yields a publisher that silently drops events.
func NewEventPublisher(nc *nats.Conn, log zerolog.Logger) *EventPublisher {
	return &EventPublisher{nc: nc, log: log}
}

// PublishWorkflowEvent publishes one workflow event. Safe on a nil receiver.
func (p *EventPublisher) PublishWorkflowEvent(ctx context.Context, event *WorkflowEvent) {
	if p == nil || p.nc == nil || event == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", event.EventType).Msg("events: failed to marshal event")
		return
	}

	subject := fmt.Sprintf("notifications.po.%s", event.EventType)
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("po_id", event.POID).
			Msg("events: failed to publish NATS event (non-fatal)")
		return
	}

	p.log.Debug().
		Str("subject", subject).
		Str("po_id", event.POID).
		Msg("events: workflow event published")
}
