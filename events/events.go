// Package events announces component changes to interested listeners.
package events

import (
	"context"

	"dashboard/domain"
)

const TopicComponentUpserted = "dashboard.component.upserted"

type ComponentUpserted struct {
	Component domain.Component `json:"component"`
}

// Publisher delivers events on a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error { return nil }

func (NoopPublisher) Close() error { return nil }
