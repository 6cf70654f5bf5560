package socket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(memberID string) *Client {
	return &Client{
		ID:       "test-" + memberID,
		MemberID: memberID,
		Send:     make(chan []byte, 16),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("sari")
	hub.register <- client
	waitFor(t, func() bool { return hub.IsMemberOnline("sari") })
	assert.Equal(t, 1, hub.GetConnectedClientsCount())

	hub.unregister <- client
	waitFor(t, func() bool { return !hub.IsMemberOnline("sari") })
	assert.Equal(t, 0, hub.GetConnectedClientsCount())
}

func TestHub_SendToMemberTargetsAllConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	phone := newTestClient("sari")
	laptop := newTestClient("sari")
	other := newTestClient("budi")
	hub.register <- phone
	hub.register <- laptop
	hub.register <- other
	waitFor(t, func() bool { return hub.GetConnectedClientsCount() == 3 })

	hub.SendToMember("sari", MessageCommissionCredited, map[string]interface{}{
		"amount": 23310,
	})

	for _, c := range []*Client{phone, laptop} {
		select {
		case data := <-c.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, MessageCommissionCredited, msg.Type)
			assert.EqualValues(t, 23310, msg.Payload["amount"])
		case <-time.After(2 * time.Second):
			t.Fatal("member connection did not receive the message")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("unrelated member received a direct message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnknownMemberIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Must not block or panic when nobody is connected.
	hub.SendToMember("ghost", MessageNotification, nil)
	assert.False(t, hub.IsMemberOnline("ghost"))
}

func TestBroadcaster_MessageShapes(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	b := NewBroadcaster(hub)

	client := newTestClient("sari")
	hub.register <- client
	waitFor(t, func() bool { return hub.IsMemberOnline("sari") })

	b.SendWithdrawalUpdated("sari", "42", "Approved")

	select {
	case data := <-client.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MessageWithdrawalUpdated, msg.Type)
		assert.Equal(t, "42", msg.Payload["withdrawalId"])
		assert.Equal(t, "Approved", msg.Payload["status"])
	case <-time.After(2 * time.Second):
		t.Fatal("withdrawal update not delivered")
	}
}
