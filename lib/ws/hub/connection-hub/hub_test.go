package connectionhub

import (
	"testing"
	"time"

	wsmodels "employee-portal-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

func TestSendCloseDropsSession(t *testing.T) {
	hub := &impl{clients: map[string]clientSession{}}
	hub.AddClient("u1", &websocket.Conn{})

	hub.SendClose("u1")
	require.False(t, hub.IsConnected("u1"))
	_, ok := hub.clients["u1"]
	require.False(t, ok)

	// A later targeted send or broadcast must not block on the closed
	// session's channel.
	done := make(chan struct{})
	go func() {
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Msg: "after close"})
		hub.Broadcast(wsmodels.ServerMessage{Msg: "after close"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send blocked after close")
	}
}

func TestSendCloseUnknownUser(t *testing.T) {
	hub := &impl{clients: map[string]clientSession{}}
	hub.SendClose("nobody")
	require.False(t, hub.IsConnected("nobody"))
}
