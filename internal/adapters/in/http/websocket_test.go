package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type wsFixture struct {
	hub    *realtime.Hub
	auth   *Authenticator
	server *httptest.Server
}

func newWsFixture(t *testing.T) wsFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := realtime.NewHub(logger)
	auth := NewAuthenticator("secret")

	e := echo.New()
	e.GET("/ws", NewWebsocketHandler(hub, auth, logger).Serve)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return wsFixture{hub: hub, auth: auth, server: server}
}

func (f wsFixture) dial(t *testing.T, who actor.Actor) *websocket.Conn {
	t.Helper()
	token, err := f.auth.Issue(who, time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, cmd WsCommand) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
}

func receive(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func client(t *testing.T) actor.Actor {
	t.Helper()
	who, err := actor.NewActor(kernel.NewUUID(), actor.Client, nil)
	require.NoError(t, err)
	return who
}

func Test_WebsocketRejectsMissingToken(t *testing.T) {
	// Given
	f := newWsFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"

	// When
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	// Then
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func Test_WebsocketSubscribedClientReceivesItsEvents(t *testing.T) {
	// Given
	f := newWsFixture(t)
	who := client(t)
	conn := f.dial(t, who)
	room := realtime.ClientChannel(who.ID())

	// When
	send(t, conn, WsCommand{Action: ActionSubscribe, Room: room})
	ack := receive(t, conn)
	delivered := f.hub.Publish(room, "status_update", map[string]string{"status": "PREPARING"})
	event := receive(t, conn)

	// Then
	assert.Equal(t, EventSubscribed, ack.Event)
	var info RoomAck
	require.NoError(t, json.Unmarshal(ack.Data, &info))
	assert.Equal(t, room, info.Room)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, "status_update", event.Event)
	assert.JSONEq(t, `{"status":"PREPARING"}`, string(event.Data))
}

func Test_WebsocketRefusesForeignRooms(t *testing.T) {
	// Given
	f := newWsFixture(t)
	conn := f.dial(t, client(t))

	tests := []string{
		realtime.ClientChannel(kernel.NewUUID()),
		realtime.BranchChannel(kernel.NewUUID()),
		"kitchen:all",
	}
	for _, room := range tests {
		// When
		send(t, conn, WsCommand{Action: ActionSubscribe, Room: room})
		frame := receive(t, conn)

		// Then
		assert.Equal(t, EventError, frame.Event, room)
	}
	assert.Zero(t, f.hub.Publish(tests[0], "status_update", nil))
}

func Test_WebsocketListsAndLeavesRooms(t *testing.T) {
	// Given
	f := newWsFixture(t)
	branch := kernel.NewUUID()
	who, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branch)
	require.NoError(t, err)
	conn := f.dial(t, who)
	room := realtime.BranchChannel(branch)

	send(t, conn, WsCommand{Action: ActionSubscribe, Room: room})
	require.Equal(t, EventSubscribed, receive(t, conn).Event)

	// When
	send(t, conn, WsCommand{Action: ActionGetRooms})
	listed := receive(t, conn)
	send(t, conn, WsCommand{Action: ActionUnsubscribe, Room: room})
	left := receive(t, conn)
	send(t, conn, WsCommand{Action: "dance"})
	unknown := receive(t, conn)

	// Then
	assert.Equal(t, EventRooms, listed.Event)
	var info RoomsInfo
	require.NoError(t, json.Unmarshal(listed.Data, &info))
	assert.Equal(t, []string{room}, info.Rooms)
	assert.NotEmpty(t, info.SocketID)

	assert.Equal(t, EventUnsubscribed, left.Event)
	assert.Zero(t, f.hub.Publish(room, "new_order", nil))

	assert.Equal(t, EventError, unknown.Event)
}
