package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"canteen/internal/models"
)

func mockClient(hub *Hub, orderID primitive.ObjectID) *Client {
	return &Client{
		hub:     hub,
		orderID: orderID,
		send:    make(chan []byte, 16),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func receive(t *testing.T, ch <-chan []byte) Event {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubRoutesEventsByOrder(t *testing.T) {
	hub := startHub(t)

	watched := models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusConfirmed}
	other := primitive.NewObjectID()

	c1 := mockClient(hub, watched.ID)
	c2 := mockClient(hub, other)
	hub.register <- c1
	hub.register <- c2

	hub.OrderUpdated(watched)

	event := receive(t, c1.send)
	assert.Equal(t, EventOrderStatus, event.Type)

	var payload models.Order
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, models.OrderStatusConfirmed, payload.Status)

	select {
	case <-c2.send:
		t.Fatal("client watching another order received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterCleansUpRoom(t *testing.T) {
	hub := startHub(t)
	orderID := primitive.NewObjectID()
	client := mockClient(hub, orderID)

	hub.register <- client
	require.Eventually(t, func() bool { return hub.Subscribers(orderID) == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool { return hub.Subscribers(orderID) == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed")
}

func TestOrderUpdatedDoesNotBlockAfterStop(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	<-hub.done

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.OrderUpdated(models.Order{ID: primitive.NewObjectID()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OrderUpdated blocked on a stopped hub")
	}
}

func TestServeStreamsSnapshotAndUpdates(t *testing.T) {
	hub := startHub(t)
	order := models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusPending}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := Serve(hub, w, r, order); err != nil {
			t.Errorf("serve: %v", err)
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readStatus := func() models.OrderStatus {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var event Event
		require.NoError(t, conn.ReadJSON(&event))
		var payload models.Order
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		return payload.Status
	}

	assert.Equal(t, models.OrderStatusPending, readStatus())

	require.Eventually(t, func() bool { return hub.Subscribers(order.ID) == 1 }, time.Second, 5*time.Millisecond)
	order.Status = models.OrderStatusPreparing
	hub.OrderUpdated(order)
	assert.Equal(t, models.OrderStatusPreparing, readStatus())
}
