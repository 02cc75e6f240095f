package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"auctioneer/events"
)

const sourceService = "auctioneer"

// defaultPublishTimeout bounds how long a bid handler waits for a JetStream ack
const defaultPublishTimeout = 5 * time.Second

// EventEnvelope wraps every event published to NATS
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// AuctionSubjects returns the subjects the auction_events stream captures
func AuctionSubjects() []string {
	return []string{"auction.games.*.bids"}
}

// SubjectForEvent maps an event to its NATS subject
func SubjectForEvent(event events.Event) string {
	switch e := event.(type) {
	case events.BidPlacedEvent:
		return fmt.Sprintf("auction.games.%d.bids", e.GameID)
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MessagePublisher hands an encoded message to the broker under subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// PublishRecorder counts messages handed to NATS
type PublishRecorder interface {
	RecordNATSMessagePublished(eventType string, err error)
}

// BidEventBridge forwards committed bid events from the in-process bus to NATS
type BidEventBridge struct {
	publisher MessagePublisher
	recorder  PublishRecorder
	now       func() time.Time
	timeout   time.Duration
}

// NewBidEventBridge creates a bridge publishing through publisher. recorder may be nil.
func NewBidEventBridge(publisher MessagePublisher, recorder PublishRecorder) *BidEventBridge {
	return &BidEventBridge{
		publisher: publisher,
		recorder:  recorder,
		now:       time.Now,
		timeout:   defaultPublishTimeout,
	}
}

// Register subscribes the bridge to accepted bids on the bus
func (b *BidEventBridge) Register(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBidPlaced, b.HandleEvent)
}

// HandleEvent publishes one event. Failures are logged; the bid itself is
// already committed.
func (b *BidEventBridge) HandleEvent(ctx context.Context, event events.Event) {
	// the bus hands over a context without deadline once the bid has committed
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	err := b.publish(ctx, event)
	if b.recorder != nil {
		b.recorder.RecordNATSMessagePublished(string(event.Type()), err)
	}
	if err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to forward event to NATS")
	}
}

func (b *BidEventBridge) publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     string(event.Type()),
		Timestamp:     b.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := SubjectForEvent(event)
	if err := b.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Forwarded event to NATS")
	return nil
}
