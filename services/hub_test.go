package services

import (
	"encoding/json"
	"testing"
	"time"

	"formhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watcher registers a bare client on the hub without a real socket; the
// broadcast path only touches the send channel.
func watcher(t *testing.T, h *Hub, formID uint) *Client {
	t.Helper()
	client := &Client{
		hub:    h,
		id:     generateClientID(),
		send:   make(chan []byte, 8),
		formID: formID,
	}
	h.register <- client

	require.Eventually(t, func() bool {
		return h.WatcherCount(formID) > 0
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestHubBroadcastsSubmissionToFormWatchers(t *testing.T) {
	h := NewHub()
	go h.Run()

	watching := watcher(t, h, 1)
	other := watcher(t, h, 2)

	answer := &models.Answer{FormID: 1, Values: map[uint]string{1: "yes"}}
	h.BroadcastSubmission(1, answer)

	select {
	case data := <-watching.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "submission", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("watcher did not receive the submission event")
	}

	select {
	case <-other.send:
		t.Fatal("watcher of another form received the event")
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := watcher(t, h, 7)
	h.UnregisterClient(client)

	require.Eventually(t, func() bool {
		return h.WatcherCount(7) == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}
