package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Fields(t *testing.T) {
	type OrderData struct {
		OrderID string `json:"order_id"`
		Total   int64  `json:"total"`
	}

	data := OrderData{OrderID: "ord-123", Total: 1050000}
	event, err := NewEvent("storefront.order.created", "ord-123", "order", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.order.created", event.EventType)
	assert.Equal(t, "ord-123", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var roundTripped OrderData
	require.NoError(t, json.Unmarshal(event.Data, &roundTripped))
	assert.Equal(t, data, roundTripped)
}

func TestNewEvent_InvalidData(t *testing.T) {
	// Channels are not serializable to JSON.
	_, err := NewEvent("test.event", "agg-1", "test", "storefront", make(chan int))
	require.Error(t, err)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("test.event", "agg-1", "test", "storefront", nil)
	require.NoError(t, err)

	result := event.WithCorrelationID("corr-xyz")
	assert.Same(t, event, result, "WithCorrelationID should return the same event for chaining")
	assert.Equal(t, "corr-xyz", event.CorrelationID)
}

func TestEvent_Marshal(t *testing.T) {
	event, err := NewEvent("storefront.product.updated", "prod-1", "product", "storefront", map[string]string{"name": "Burr Grinder"})
	require.NoError(t, err)

	bytes, err := event.Marshal()
	require.NoError(t, err)

	var restored Event
	require.NoError(t, json.Unmarshal(bytes, &restored))
	assert.Equal(t, event.EventID, restored.EventID)
	assert.Equal(t, event.EventType, restored.EventType)
	assert.JSONEq(t, string(event.Data), string(restored.Data))
}

func TestEvent_UnmarshalData(t *testing.T) {
	type ProductPayload struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}

	payload := ProductPayload{Name: "Espresso Pods", Price: 380000}
	event, err := NewEvent("storefront.product.created", "prod-3", "product", "storefront", payload)
	require.NoError(t, err)

	var target ProductPayload
	require.NoError(t, event.UnmarshalData(&target))
	assert.Equal(t, payload, target)
}

func TestEvent_UnmarshalData_Invalid(t *testing.T) {
	event := &Event{Data: json.RawMessage(`not valid json`)}
	var target map[string]string
	require.Error(t, event.UnmarshalData(&target))
}

func TestDefaultProducerConfig(t *testing.T) {
	brokers := []string{"broker1:9092", "broker2:9092"}
	cfg := DefaultProducerConfig(brokers)

	assert.Equal(t, brokers, cfg.Brokers)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 10*time.Millisecond, cfg.BatchTimeout)
	assert.False(t, cfg.Async)
}

func TestNewProducer_CreatesInstance(t *testing.T) {
	// The writer connects lazily, so no broker is needed here.
	cfg := DefaultProducerConfig([]string{"localhost:19092"})
	p := NewProducer(cfg, nil)
	require.NotNil(t, p)
	assert.Equal(t, []string{"localhost:19092"}, p.brokers)

	assert.NoError(t, p.Close())
}
