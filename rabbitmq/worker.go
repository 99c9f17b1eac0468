// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cellid-server/commons"
	"cellid-server/commons/mccmnc"
	"cellid-server/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func NewWorker(config WorkerConfig, resolver *mccmnc.Resolver, collector *metrics.Collector) (*Worker, error) {
	if config.URL == "" {
		return nil, errors.New("AMQP URL is required")
	}
	if config.Queue == "" {
		config.Queue = "carrier.resolve"
	}
	if config.Prefetch <= 0 {
		config.Prefetch = 16
	}
	w := &Worker{config: config, resolver: resolver, metrics: collector, done: make(chan struct{})}

	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	w.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	w.channel = ch

	if err := ch.Qos(config.Prefetch, 0, false); err != nil {
		w.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}
	if _, err := ch.QueueDeclare(config.Queue, true, false, false, false, nil); err != nil {
		w.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}

	commons.Logger.Infof("Resolve queue ready: %s (prefetch=%d)", config.Queue, config.Prefetch)
	return w, nil
}

// Start consumes the resolve queue until ctx is cancelled or the channel
// closes.
func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(w.config.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	closed := w.channel.NotifyClose(make(chan *amqp.Error, 1))

	go func() {
		defer close(w.done)
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					commons.Logger.Warn("Resolve queue delivery channel closed")
					return
				}
				w.handleDelivery(ctx, w.channel, msg)
			case err := <-closed:
				if err != nil {
					commons.Logger.Errorf("AMQP channel closed: %v", err)
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (w *Worker) handleDelivery(ctx context.Context, pub publisher, msg amqp.Delivery) {
	var req ResolveRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil ||
		strings.TrimSpace(req.MCC) == "" || strings.TrimSpace(req.MNC) == "" {
		commons.Logger.Warnf("Rejecting malformed resolve request %q", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			commons.Logger.Errorf("Nack failed: %v", err)
		}
		return
	}

	info, sources := w.resolver.ResolveWithSources(req.MCC, req.MNC)
	w.metrics.ObserveResolution("amqp", sources.Label())

	if msg.ReplyTo == "" {
		commons.Logger.Debugf("Resolve request %s-%s has no reply-to, dropping result", req.MCC, req.MNC)
		if err := msg.Ack(false); err != nil {
			commons.Logger.Errorf("Ack failed: %v", err)
		}
		return
	}

	body, err := json.Marshal(info)
	if err != nil {
		commons.Logger.Errorf("Failed to encode carrier %s-%s: %v", req.MCC, req.MNC, err)
		_ = msg.Nack(false, false)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = pub.PublishWithContext(pubCtx, "", msg.ReplyTo, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: msg.CorrelationId,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err != nil {
		commons.Logger.Errorf("Failed to publish reply to %s: %v", msg.ReplyTo, err)
		if err := msg.Nack(false, true); err != nil {
			commons.Logger.Errorf("Nack failed: %v", err)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		commons.Logger.Errorf("Ack failed: %v", err)
	}
}

// Close shuts down the channel and connection, which ends the delivery loop.
func (w *Worker) Close() {
	if w.channel != nil {
		_ = w.channel.Close()
	}
	if w.conn != nil {
		_ = w.conn.Close()
	}
}

// Done is closed once the delivery loop has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}
