package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"gofalre.io/storefront/models"
	"gofalre.io/storefront/models/enum"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{subject: subject, data: data})
	return nil
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	notifier.Error(context.Background(), "Quantidade solicitada fora de estoque")

	entries := logs.FilterField(zap.String("message", "Quantidade solicitada fora de estoque")).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["severity"] != string(enum.SeverityError) {
		t.Errorf("unexpected severity: %v", entries[0].ContextMap()["severity"])
	}
}

func TestNATSNotifier(t *testing.T) {
	pub := &fakePublisher{}
	notifier := NewNATSNotifier(pub, "storefront.notification.error", zaptest.NewLogger(t))

	notifier.Error(context.Background(), "Erro na adição do produto")

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(pub.messages))
	}
	if pub.messages[0].subject != "storefront.notification.error" {
		t.Errorf("unexpected subject %s", pub.messages[0].subject)
	}

	var n models.Notification
	if err := json.Unmarshal(pub.messages[0].data, &n); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if n.Severity != enum.SeverityError || n.Message != "Erro na adição do produto" || n.SentAt.IsZero() {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestNATSNotifier_PublishErrorIsSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	pub := &fakePublisher{err: errors.New("nats: connection closed")}
	notifier := NewNATSNotifier(pub, "subject", zap.New(core))

	notifier.Error(context.Background(), "message")

	if logs.Len() != 1 {
		t.Errorf("expected publish failure to be logged once, got %d entries", logs.Len())
	}
}

func TestMulti(t *testing.T) {
	var got []string
	record := func(prefix string) Notifier {
		return Func(func(_ context.Context, message string) {
			got = append(got, prefix+message)
		})
	}

	Multi{record("a:"), record("b:")}.Error(context.Background(), "x")

	if len(got) != 2 || got[0] != "a:x" || got[1] != "b:x" {
		t.Errorf("unexpected deliveries: %v", got)
	}
}
