package hub

import (
	"encoding/json"
	"testing"

	"believestore/backend/internal/testutil"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
)

func TestBroadcastReachesRoomSubscribersOnly(t *testing.T) {
	h := NewHub(testutil.Logger())
	roomA, roomB := uuid.New(), uuid.New()
	a, b := NewClient(), NewClient()
	h.Subscribe(roomA, a)
	h.Subscribe(roomB, b)

	h.Broadcast(roomA, Event{Type: EventRoster, Payload: []string{"Ace"}})

	select {
	case msg := <-a:
		var ev struct {
			Type    string   `json:"type"`
			Payload []string `json:"payload"`
		}
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, EventRoster, ev.Type)
		assert.Equal(t, []string{"Ace"}, ev.Payload)
	default:
		t.Fatal("expected an event for room A")
	}

	select {
	case <-b:
		t.Fatal("room B should not receive room A events")
	default:
	}
}

func TestBroadcastDoesNotBlockOnFullClient(t *testing.T) {
	h := NewHub(testutil.Logger())
	room := uuid.New()
	slow := make(Client)
	h.Subscribe(room, slow)

	h.Broadcast(room, Event{Type: EventStarted})
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub(testutil.Logger())
	room := uuid.New()
	c := NewClient()
	h.Subscribe(room, c)
	assert.Equal(t, 1, h.Subscribers(room))

	h.Unsubscribe(room, c)
	_, open := <-c
	assert.Equal(t, false, open)
	assert.Equal(t, 0, h.Subscribers(room))

	// second unsubscribe is a no-op
	h.Unsubscribe(room, c)
}
