package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// Websocket actions sent by clients.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionGetRooms    = "get_rooms"
)

// Websocket events answering client actions.
const (
	EventSubscribed   = "subscribed"
	EventUnsubscribed = "unsubscribed"
	EventRooms        = "rooms"
	EventError        = "error"
)

// WsCommand is a client frame: {"action":"subscribe","room":"branch:<id>"}.
type WsCommand struct {
	Action string `json:"action"`
	Room   string `json:"room,omitempty"`
}

type RoomAck struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type RoomsInfo struct {
	SocketID string   `json:"socket_id"`
	Rooms    []string `json:"rooms"`
}

type WsError struct {
	Message string `json:"message"`
}

// WebsocketHandler serves GET /ws. The token comes from the query string
// because browsers cannot set headers on websocket requests.
type WebsocketHandler struct {
	hub      *realtime.Hub
	auth     *Authenticator
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWebsocketHandler(hub *realtime.Hub, auth *Authenticator, logger *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "websocket"),
	}
}

func (h *WebsocketHandler) Serve(c echo.Context) error {
	token, err := tokenFrom(c.Request())
	if err != nil {
		return unauthorized(c, "Authorization token required")
	}
	who, err := h.auth.Parse(token)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	s := &wsSession{
		who:     who,
		conn:    conn,
		hub:     h.hub,
		sub:     realtime.NewSubscriber(kernel.NewUUID().String(), realtime.DefaultBuffer),
		replies: make(chan realtime.Message, 8),
		done:    make(chan struct{}),
		logger:  h.logger,
	}
	h.hub.Register(s.sub)
	h.logger.InfoContext(c.Request().Context(), "websocket connected",
		"socket_id", s.sub.ID(), "user_id", who.ID().String(), "role", who.Role().String())

	go s.writePump()
	s.readPump()

	h.logger.InfoContext(c.Request().Context(), "websocket disconnected", "socket_id", s.sub.ID())
	return nil
}

// wsSession owns one connection. Only writePump writes to conn.
type wsSession struct {
	who     actor.Actor
	conn    *websocket.Conn
	hub     *realtime.Hub
	sub     *realtime.Subscriber
	replies chan realtime.Message
	done    chan struct{}
	logger  *slog.Logger
}

func (s *wsSession) readPump() {
	defer s.hub.Drop(s.sub)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "socket_id", s.sub.ID(), "error", err)
			}
			return
		}

		var cmd WsCommand
		if err = json.Unmarshal(data, &cmd); err != nil {
			s.reply(EventError, WsError{Message: "malformed message"})
			continue
		}
		s.handle(cmd)
	}
}

func (s *wsSession) handle(cmd WsCommand) {
	switch cmd.Action {
	case ActionSubscribe:
		channel, err := s.authorize(cmd.Room)
		if err != nil {
			s.reply(EventError, WsError{Message: err.Error()})
			return
		}
		s.hub.Subscribe(s.sub, channel)
		s.reply(EventSubscribed, RoomAck{Room: channel, Message: "subscribed to " + channel})
	case ActionUnsubscribe:
		s.hub.Unsubscribe(s.sub, cmd.Room)
		s.reply(EventUnsubscribed, RoomAck{Room: cmd.Room, Message: "unsubscribed from " + cmd.Room})
	case ActionGetRooms:
		s.reply(EventRooms, RoomsInfo{SocketID: s.sub.ID(), Rooms: s.hub.Channels(s.sub)})
	default:
		s.reply(EventError, WsError{Message: fmt.Sprintf("unknown action %q", cmd.Action)})
	}
}

func (s *wsSession) authorize(room string) (string, error) {
	channel, err := realtime.ParseChannel(room)
	if err != nil {
		return "", err
	}
	if !realtime.CanJoin(s.who, channel) {
		return "", errors.New("not allowed to join " + room)
	}
	return room, nil
}

func (s *wsSession) reply(event string, data any) {
	select {
	case s.replies <- realtime.Message{Event: event, Data: data}:
	case <-s.done:
	}
}

func (s *wsSession) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(s.done)
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.sub.Messages():
			if !ok {
				_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !s.write(msg) {
				return
			}
		case msg := <-s.replies:
			if !s.write(msg) {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *wsSession) write(msg realtime.Message) bool {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("websocket write failed", "socket_id", s.sub.ID(), "event", msg.Event, "error", err)
		return false
	}
	return true
}
