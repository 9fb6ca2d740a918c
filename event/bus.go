// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionInstall   = "install"
	ActionUninstall = "uninstall"
	ActionRegister  = "register"
	ActionUpdate    = "update"
)

// Event is a notification fired on a topic.
type Event struct {
	Topic string
	Data  map[string]any
}

// Handler reacts to an event. Returned errors are logged, never propagated
// to the publisher.
type Handler func(ctx context.Context, e Event) error

// Bus fans out notifications to subscribers.
type Bus interface {
	Publish(ctx context.Context, topic string, data map[string]any)
	Subscribe(topic string, handler Handler) (unsubscribe func())
}

var _ Bus = &LocalBus{}

type LocalBusConfig struct {
	Logger *zap.Logger
}

func NewLocalBus(config LocalBusConfig) *LocalBus {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalBus{
		logger:        logger,
		subscriptions: make(map[string][]subscription),
	}
}

type subscription struct {
	id      uint64
	handler Handler
}

// LocalBus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type LocalBus struct {
	logger *zap.Logger

	lock          sync.RWMutex
	nextID        uint64
	subscriptions map[string][]subscription
}

func (b *LocalBus) Publish(ctx context.Context, topic string, data map[string]any) {
	b.lock.RLock()
	subscriptions := append([]subscription(nil), b.subscriptions[topic]...)
	b.lock.RUnlock()

	e := Event{Topic: topic, Data: data}
	for _, s := range subscriptions {
		if err := s.handler(ctx, e); err != nil {
			b.logger.Error("event handler failed",
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
}

func (b *LocalBus) Subscribe(topic string, handler Handler) func() {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := b.nextID
	b.nextID++
	b.subscriptions[topic] = append(b.subscriptions[topic], subscription{id: id, handler: handler})

	return func() {
		b.lock.Lock()
		defer b.lock.Unlock()

		remaining := b.subscriptions[topic][:0:0]
		for _, s := range b.subscriptions[topic] {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		b.subscriptions[topic] = remaining
	}
}
