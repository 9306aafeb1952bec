package driver

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	natsMaxReconnects = 10
	natsReconnectWait = 2 * time.Second
	natsTimeout       = 5 * time.Second
)

// Publisher is the publishing side of a NATS connection. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// ConnectNATS connects to the NATS server at url and logs connection state changes.
func ConnectNATS(url string, name string, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(natsTimeout),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		logger.Error("NATS connection error", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	return conn, nil
}
