// Package events publishes content lifecycle events to a Redis stream so
// downstream consumers (dashboards, alerting) can observe refresh outcomes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/petalhealth/content-service/internal/logger"
)

// StreamName is the Redis stream content events are published to.
const StreamName = "content:events"

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies a content lifecycle event.
type EventType string

const (
	// RefreshCompleted is published when a refresh cycle finishes with every
	// resource replaced.
	RefreshCompleted EventType = "content.refresh.completed"
	// RefreshFailed is published when at least one resource in a refresh
	// cycle failed.
	RefreshFailed EventType = "content.refresh.failed"
	// ContentImported is published after an editorial import is applied.
	ContentImported EventType = "content.imported"
)

// Event is a single content lifecycle event.
type Event struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RefreshPayload summarizes a refresh cycle.
type RefreshPayload struct {
	Succeeded []string `json:"succeeded,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// ImportPayload summarizes an editorial import.
type ImportPayload struct {
	Resource string `json:"resource"`
	Imported int    `json:"imported"`
	Rejected int    `json:"rejected"`
}

// Publisher publishes content events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a new event publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log}
}

// Publish sends an event to the Redis stream.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil // No-op if publisher not configured
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Debug("Published content event",
			logger.String("event_type", string(event.EventType)),
			logger.String("stream_id", result.Val()),
		)
	}
	return nil
}

// PublishAsync publishes an event asynchronously. Errors are logged but not
// returned.
func (p *Publisher) PublishAsync(event Event) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.Error(err),
			)
		}
	}()
}
