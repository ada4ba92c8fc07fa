package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/events"
	"github.com/spec-kit/facility-complaints/internal/observability"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  *events.RedisPublisher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewNotificationService creates the service. publisher may be nil when Redis is disabled.
func NewNotificationService(dispatcher events.Dispatcher, publisher *events.RedisPublisher, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventComplaintCreated,
		events.EventComplaintStatusChanged,
		events.EventComplaintDeleted,
	} {
		n.dispatcher.Subscribe(eventType, n.logEvent)
		if n.publisher != nil {
			n.dispatcher.Subscribe(eventType, n.forward)
		}
	}
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if err := n.publisher.Handle(ctx, event); err != nil {
		n.logger.Warn("redis publish failed",
			zap.String("channel", n.publisher.Channel()),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return err
	}
	return nil
}
