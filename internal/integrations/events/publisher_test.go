package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublishInstancesPublished(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, nopLogger{})

	productID := uuid.MustParse("66666666-7777-4888-9999-aaaaaaaaaaaa")
	first := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	err := p.PublishInstancesPublished(context.Background(), InstancesPublished{
		TenantID:      uuid.MustParse("11111111-2222-4333-8444-555555555555"),
		ProductID:     productID,
		ScheduleType:  "recurring",
		InstanceCount: 158,
		FirstStart:    &first,
		PublishedAt:   first,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, productID.String(), string(msg.Key))
	assert.Equal(t, EventTypeInstancesPublished, headerValue(msg.Headers, "event_type"))

	eventID, err := uuid.Parse(headerValue(msg.Headers, "event_id"))
	require.NoError(t, err)

	var decoded InstancesPublished
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, eventID, decoded.EventID)
	assert.Equal(t, 158, decoded.InstanceCount)
	assert.Nil(t, decoded.LastStart)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishInstancesPublished_WriteError(t *testing.T) {
	p := NewPublisherWithWriter(&fakeWriter{err: errors.New("leader not available")}, nopLogger{})

	err := p.PublishInstancesPublished(context.Background(), InstancesPublished{ProductID: uuid.New()})
	assert.ErrorIs(t, err, ErrWriteMessage)
}

func TestNewPublisher_Disabled(t *testing.T) {
	p := NewPublisher(Config{Brokers: []string{" ", ""}}, nopLogger{})

	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishInstancesPublished(context.Background(), InstancesPublished{ProductID: uuid.New()}))
	assert.NoError(t, p.Close())
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
