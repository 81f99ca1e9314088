package rabbitmq

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест требует поднятого RabbitMQ; без TEST_RABBITMQ_URL пропускается.
func TestSubscribe_DeliversRawPayload(t *testing.T) {
	amqpURI := os.Getenv("TEST_RABBITMQ_URL")
	if amqpURI == "" {
		t.Skip("TEST_RABBITMQ_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	queue := QueueConfig{QueueName: "test_subscription_updates", RoutingKey: "subscriptions"}
	ch, err := SetupChannel(conn, []QueueConfig{queue})
	require.NoError(t, err)
	defer func() {
		if err := ch.Close(); err != nil {
			t.Errorf("failed to close channel: %v", err)
		}
	}()

	var mu sync.Mutex
	var received [][]byte
	done := make(chan struct{})

	err = Subscribe(ctx, ch, queue.QueueName, func(body []byte) error {
		mu.Lock()
		received = append(received, body)
		mu.Unlock()
		close(done)
		return nil
	})
	require.NoError(t, err)

	payload := []byte(`{"event":"UPDATE","table":"subscriptions"}`)
	err = ch.Publish(Exchange, queue.RoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("message was not delivered in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, payload, received[0])
}
