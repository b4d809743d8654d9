package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Config настройки публикации событий
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher публикует доменные события в kafka.
// Без брокеров publisher выключен: события только логируются.
type Publisher struct {
	writer MessageWriter
	logger Logger
}

// NewPublisher создает publisher с kafka.Writer; пустой список брокеров выключает отправку
func NewPublisher(cfg Config, logger Logger) *Publisher {
	brokers := SplitBrokers(strings.Join(cfg.Brokers, ","))
	if len(brokers) == 0 {
		logger.Warn("events publisher disabled (no kafka brokers configured)")
		return &Publisher{logger: logger}
	}

	topic := cfg.Topic
	if topic == "" {
		topic = EventTypeInstancesPublished
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	return NewPublisherWithWriter(writer, logger)
}

// NewPublisherWithWriter создает publisher поверх произвольного writer'а
func NewPublisherWithWriter(writer MessageWriter, logger Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

// Enabled возвращает true, если события действительно отправляются
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// PublishInstancesPublished отправляет событие публикации экземпляров.
// Ключ сообщения - productID, чтобы события одного продукта попадали в одну партицию.
func (p *Publisher) PublishInstancesPublished(ctx context.Context, event InstancesPublished) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}

	if !p.Enabled() {
		p.logger.Info("events: skip %s for product=%s (publisher disabled)", EventTypeInstancesPublished, event.ProductID)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeEvent, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "event_type", Value: []byte(EventTypeInstancesPublished)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s product=%s: %v", ErrWriteMessage, EventTypeInstancesPublished, event.ProductID, err)
	}

	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
