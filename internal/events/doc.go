// Package events defines booking lifecycle events and a small in-process
// fan-out emitter.
//
// Services emit events after their transaction commits, without knowing which
// handlers consume them. The RabbitMQ publisher in internal/platform/rabbitmq
// is one such handler; LogHandler is another.
package events
