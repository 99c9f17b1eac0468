// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"sync"

	"cellid-server/commons/mccmnc"
	"cellid-server/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DirectReplyTo is RabbitMQ's pseudo-queue for RPC replies without a
// declared callback queue.
const DirectReplyTo = "amq.rabbitmq.reply-to"

type WorkerConfig struct {
	URL      string
	Queue    string
	Prefetch int
}

// ResolveRequest is the body of a message on the resolve queue.
type ResolveRequest struct {
	MCC string `json:"mcc"`
	MNC string `json:"mnc"`
}

// Worker answers ResolveRequests from a queue with CarrierInfo replies.
type Worker struct {
	config   WorkerConfig
	resolver *mccmnc.Resolver
	metrics  *metrics.Collector
	conn     *amqp.Connection
	channel  *amqp.Channel
	done     chan struct{}
}

// Client performs resolve RPCs against a Worker. Calls are serialized.
type Client struct {
	queue   string
	conn    *amqp.Connection
	channel *amqp.Channel
	replies <-chan amqp.Delivery
	mu      sync.Mutex
}
