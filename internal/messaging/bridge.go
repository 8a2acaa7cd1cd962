package messaging

import (
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Message headers. The body is the channel text.
const (
	headerOrigin = "Circle-Origin"
	headerFrom   = "Circle-From"
)

// Receiver is the game side of the bridge. Submit runs fn on the game
// goroutine; DeliverRemote must only be called from there.
type Receiver interface {
	Submit(fn func())
	DeliverRemote(channel, server, from, text string)
}

// Bridge publishes local channel messages and delivers remote ones.
type Bridge struct {
	nc     *nats.Conn
	sub    *nats.Subscription
	prefix string
	origin string
	logger *zap.Logger
}

// Connect dials url and subscribes to every channel under prefix.
// Messages published by origin itself are ignored.
//
// Precondition: rcv and logger must be non-nil; prefix and origin non-empty.
// Postcondition: Returns a live bridge or a non-nil error.
func Connect(url, prefix, origin string, rcv Receiver, logger *zap.Logger) (*Bridge, error) {
	nc, err := nats.Connect(url,
		nats.Name("circled "+origin),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	b := &Bridge{nc: nc, prefix: prefix, origin: origin, logger: logger}
	b.sub, err = nc.Subscribe(prefix+".>", func(msg *nats.Msg) {
		channel, server, from, ok := b.decode(msg)
		if !ok {
			return
		}
		text := string(msg.Data)
		rcv.Submit(func() { rcv.DeliverRemote(channel, server, from, text) })
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribing to %s.>: %w", prefix, err)
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}
	logger.Info("channel bridge connected", zap.String("url", nc.ConnectedUrl()), zap.String("origin", origin))
	return b, nil
}

func (b *Bridge) decode(msg *nats.Msg) (channel, server, from string, ok bool) {
	channel, found := strings.CutPrefix(msg.Subject, b.prefix+".")
	if !found || channel == "" {
		return "", "", "", false
	}
	server = msg.Header.Get(headerOrigin)
	from = msg.Header.Get(headerFrom)
	if server == "" || server == b.origin || from == "" {
		return "", "", "", false
	}
	return channel, server, from, true
}

// Publish sends text spoken by from on channel to every other server.
func (b *Bridge) Publish(channel, from, text string) error {
	msg := nats.NewMsg(b.prefix + "." + channel)
	msg.Header.Set(headerOrigin, b.origin)
	msg.Header.Set(headerFrom, from)
	msg.Data = []byte(text)
	if err := b.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing to %s: %w", msg.Subject, err)
	}
	return nil
}

// Close drains the subscription and closes the connection.
func (b *Bridge) Close() {
	if err := b.nc.Drain(); err != nil {
		b.logger.Warn("draining nats connection", zap.Error(err))
		b.nc.Close()
	}
}
