package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resource-service/internal/config"
	"github.com/spec-kit/resource-service/internal/events"
)

type notifyChannel int

const (
	channelEmail notifyChannel = 1 << iota
	channelWebhook
)

// notificationRoutes lists the events that notify someone and through which channels.
var notificationRoutes = map[events.EventType]struct {
	label    string
	idField  string
	channels notifyChannel
}{
	events.EventUserCreated:         {"UserCreated", "user_id", channelEmail},
	events.EventTicketCreated:       {"TicketCreated", "ticket_id", channelEmail | channelWebhook},
	events.EventTicketStatusChanged: {"TicketStatusChanged", "ticket_id", channelWebhook},
	events.EventTicketDeleted:       {"TicketDeleted", "ticket_id", channelWebhook},
}

// NotificationService turns resource events into email and webhook notifications.
// Delivery is stubbed: each notification is a debug log line.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to every routed event type.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		if _, ok := notificationRoutes[eventType]; ok {
			n.dispatcher.Subscribe(eventType, n.handle)
		}
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	route, ok := notificationRoutes[event.Type]
	if !ok {
		return nil
	}
	fields := []zap.Field{zap.Int64(route.idField, event.ResourceID)}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	n.logger.Info(route.label, fields...)

	if route.channels&channelEmail != 0 {
		n.sendEmailNotificationStub(ctx, event)
	}
	if route.channels&channelWebhook != 0 {
		n.sendWebhookNotificationStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
