// Package notify delivers user-facing error messages. Delivery is fire-and-forget.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
)

type Notifier interface {
	Error(ctx context.Context, message string)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, message string)

func (f Func) Error(ctx context.Context, message string) {
	f(ctx, message)
}

// Multi fans a message out to every notifier in order.
type Multi []Notifier

func (m Multi) Error(ctx context.Context, message string) {
	for _, n := range m {
		n.Error(ctx, message)
	}
}

// LogNotifier writes messages to the log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Error(_ context.Context, message string) {
	l.logger.Info("User notification", zap.String("severity", string(enum.SeverityError)), zap.String("message", message))
}

// NATSNotifier publishes each message as a JSON models.Notification on subject.
type NATSNotifier struct {
	conn    driver.Publisher
	subject string
	logger  *zap.Logger
}

func NewNATSNotifier(conn driver.Publisher, subject string, logger *zap.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}
}

func (n *NATSNotifier) Error(_ context.Context, message string) {
	data, err := json.Marshal(models.Notification{
		Severity: enum.SeverityError,
		Message:  message,
		SentAt:   time.Now(),
	})
	if err != nil {
		n.logger.Error("Failed to marshal notification", zap.Error(err))
		return
	}

	if err = n.conn.Publish(n.subject, data); err != nil {
		n.logger.Warn("Failed to publish notification", zap.String("subject", n.subject), zap.Error(err))
	}
}
