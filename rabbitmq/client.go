// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cellid-server/commons/mccmnc"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Dial opens an RPC client for queue using direct reply-to.
func Dial(url, queue string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	replies, err := ch.Consume(DirectReplyTo, "", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("consume replies: %w", err)
	}
	return &Client{queue: queue, conn: conn, channel: ch, replies: replies}, nil
}

// Resolve sends one request and waits for the reply carrying the same
// correlation ID. Stray replies from earlier timed-out calls are skipped.
func (c *Client) Resolve(ctx context.Context, mcc, mnc string) (mccmnc.CarrierInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, err := json.Marshal(ResolveRequest{MCC: mcc, MNC: mnc})
	if err != nil {
		return mccmnc.CarrierInfo{}, err
	}
	correlationID := uuid.NewString()
	err = c.channel.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		ReplyTo:       DirectReplyTo,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err != nil {
		return mccmnc.CarrierInfo{}, fmt.Errorf("publish: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return mccmnc.CarrierInfo{}, ctx.Err()
		case msg, ok := <-c.replies:
			if !ok {
				return mccmnc.CarrierInfo{}, fmt.Errorf("reply channel closed")
			}
			if msg.CorrelationId != correlationID {
				continue
			}
			var info mccmnc.CarrierInfo
			if err := json.Unmarshal(msg.Body, &info); err != nil {
				return mccmnc.CarrierInfo{}, fmt.Errorf("decode reply: %w", err)
			}
			return info, nil
		}
	}
}

func (c *Client) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
