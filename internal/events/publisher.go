package events

import (
	"context"
	"time"

	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// TransitionFact is the event emitted after a booking status change commits.
// Facts are only published for committed transitions, never for attempts
// that were rolled back.
type TransitionFact struct {
	BookingID  string              `json:"booking_id"`
	RoomID     string              `json:"room_id"`
	FromStatus model.BookingStatus `json:"from_status"`
	ToStatus   model.BookingStatus `json:"to_status"`
	ActorID    string              `json:"actor_id"`
	Reason     string              `json:"reason,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type TransitionPublisher interface {
	PublishTransition(ctx context.Context, fact TransitionFact) error
	Close() error
}

type kafkaTransitionPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewTransitionPublisher wires the Kafka producer, or a no-op publisher when
// no brokers are configured.
func NewTransitionPublisher(cfg *config.Config, kafkaCfg *kafka_config.Config) (TransitionPublisher, error) {
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, transition events disabled")
		return &noopTransitionPublisher{log: cfg.Log}, nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.TransitionsTopic, cfg.TransitionsDLQTopic)
	if err != nil {
		return nil, err
	}

	cfg.Log.Info("Transition event publisher initialized",
		"topic", cfg.TransitionsTopic,
		"dlq_topic", cfg.TransitionsDLQTopic,
	)
	return &kafkaTransitionPublisher{
		producer: producer,
		log:      cfg.Log,
	}, nil
}

func (p *kafkaTransitionPublisher) PublishTransition(ctx context.Context, fact TransitionFact) error {
	msg := kafka.NewMessage().
		WithKey(fact.BookingID).
		WithValue(fact).
		WithEventType("booking." + string(fact.ToStatus)).
		WithSchemaVersion("1").
		WithSource("booking-api").
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaTransitionPublisher) Close() error {
	return p.producer.Close()
}

type noopTransitionPublisher struct {
	log *logger.Logger
}

func (p *noopTransitionPublisher) PublishTransition(_ context.Context, fact TransitionFact) error {
	p.log.Debug("Transition event dropped (publishing disabled)",
		"booking_id", fact.BookingID,
		"from_status", fact.FromStatus,
		"to_status", fact.ToStatus,
	)
	return nil
}

func (p *noopTransitionPublisher) Close() error {
	return nil
}
