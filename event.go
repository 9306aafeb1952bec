package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
)

// EventPublisher receives an event after every persisted cart change.
type EventPublisher interface {
	PublishCartEvent(ctx context.Context, event *models.CartEvent) error
}

var _ EventPublisher = (*EventManager)(nil)

// EventManager publishes cart events to NATS on "<prefix>.<event type>",
// e.g. storefront.cart.updated.
type EventManager struct {
	conn          driver.Publisher
	subjectPrefix string
	logger        *zap.Logger
}

func NewEventManager(conn driver.Publisher, subjectPrefix string, logger *zap.Logger) *EventManager {
	return &EventManager{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}
}

func (em *EventManager) Subject(eventType enum.CartEventType) string {
	if em.subjectPrefix == "" {
		return string(eventType)
	}
	return em.subjectPrefix + "." + string(eventType)
}

func (em *EventManager) PublishCartEvent(_ context.Context, event *models.CartEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cart event: %w", err)
	}

	subject := em.Subject(event.Type)
	if err = em.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	em.logger.Debug("Published cart event", zap.String("subject", subject), zap.String("event_id", event.ID))
	return nil
}

func newCartEvent(eventType enum.CartEventType, cart models.Cart) *models.CartEvent {
	return &models.CartEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Items:      cart,
		Count:      cart.Count(),
		OccurredAt: time.Now(),
	}
}
