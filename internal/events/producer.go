package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/thinkcraftlab/studio/internal/logging"
)

const (
	TopicUserEvents = "user_events"
	TopicCartEvents = "cart_events"
)

const (
	UserRegistered      = "user_registered"
	UserLoggedIn        = "user_logged_in"
	CartItemAdded       = "cart_item_added"
	CartItemUpdated     = "cart_item_updated"
	CartItemRemoved     = "cart_item_removed"
	CartCleared         = "cart_cleared"
	WishlistItemAdded   = "wishlist_item_added"
	WishlistItemRemoved = "wishlist_item_removed"
	WishlistItemMoved   = "wishlist_item_moved"
)

type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	ProductID  int       `json:"product_id,omitempty"`
	Size       string    `json:"size,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

// NewProducer writes asynchronously so a slow or unreachable broker never
// holds up a request. Delivery failures surface through log.
func NewProducer(brokers []string, log *slog.Logger) *Producer {
	return &Producer{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		Async:                  true,
		Completion:             logFailures(log),
	}}
}

func logFailures(log *slog.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		topic := ""
		if len(msgs) > 0 {
			topic = msgs[0].Topic
		}
		log.Warn("event_delivery_failed", "topic", topic, "count", len(msgs), "error", err)
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(ctx context.Context, topic, key string, event any) error { return nil }
func (Nop) Close() error { return nil }

// Emit publishes ev keyed by its user id. Failures are logged, never returned.
func Emit(ctx context.Context, p Publisher, topic string, ev Event) {
	if p == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := p.PublishEvent(ctx, topic, ev.UserID, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
