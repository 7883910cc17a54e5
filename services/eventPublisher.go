package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/Kariqs/orders-api/models"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderPaid          = "order.paid"
)

// OrderEvent is the message published whenever an order changes.
type OrderEvent struct {
	Type             string    `json:"type"`
	OrderID          uint      `json:"order_id"`
	CustomerID       uint      `json:"customer_id"`
	Status           string    `json:"status"`
	Total            float64   `json:"total"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewOrderEvent(eventType string, order *models.Order) OrderEvent {
	event := OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
	if order.PaymentReference != nil {
		event.PaymentReference = *order.PaymentReference
	}
	return event
}

type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

// KafkaPublisher writes order events to a topic keyed by order id, so every
// event for one order lands on the same partition. Publish only enqueues;
// delivery failures are reported from the producer's error channel.
type KafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	done     chan struct{}
}

// NewKafkaPublisher connects an asynchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Errors = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	log.Println("Kafka producer connected successfully.")
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.AsyncProducer, topic string) *KafkaPublisher {
	return newKafkaPublisher(producer, topic, func(perr *sarama.ProducerError) {
		log.Printf("Failed to deliver event to topic %s: %v", perr.Msg.Topic, perr.Err)
	})
}

func newKafkaPublisher(producer sarama.AsyncProducer, topic string, onError func(*sarama.ProducerError)) *KafkaPublisher {
	p := &KafkaPublisher{producer: producer, topic: topic, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		for perr := range producer.Errors() {
			onError(perr)
		}
	}()
	return p
}

// Publish hands the event to the producer. It blocks only until the producer
// accepts the message or ctx is done.
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s for order %d: %w", event.Type, event.OrderID, ctx.Err())
	}
}

// Close flushes buffered events and waits for their delivery errors to be
// reported.
func (p *KafkaPublisher) Close() error {
	p.producer.AsyncClose()
	<-p.done
	return nil
}
