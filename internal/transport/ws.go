package transport

import (
	"encoding/binary"
	"net/http"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// conn adapts one websocket connection into a Session, serializing
// writes behind a mutex since the room may broadcast from a different
// goroutine than the one reading client frames.
type conn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	userID uint64
}

// Send implements Session.
func (c *conn) Send(msg ServerMessage) {
	data, err := cbor.Marshal(msg)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.WriteMessage(websocket.BinaryMessage, data)
}

// Handler returns an echo handler that upgrades to a websocket and
// serves one client's session against reg until the connection closes.
// LeaveGame with no room ID leaves every joined room but keeps the
// connection open.
func Handler(reg *Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer ws.Close()

		id := uuid.New()
		userID := binary.BigEndian.Uint64(id[:8]) // 64-bit identity derived from a random UUID
		session := &conn{ws: ws, userID: userID}

		session.Send(ServerMessage{
			Kind:   ServerIdentify,
			Token:  uuid.New().String(),
			UserID: session.userID,
		})

		var joined []*Room

		defer func() {
			for _, r := range joined {
				r.Leave(session.userID)
			}
		}()

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return nil
			}

			var msg ClientMessage
			if err := cbor.Unmarshal(data, &msg); err != nil {
				session.Send(ServerMessage{Kind: ServerMsgError, MsgError: "malformed message"})
				continue
			}

			switch msg.Kind {
			case ClientStartGame:
				room, ok := reg.CreateRoom(session.userID, msg.StartGame)
				if !ok {
					session.Send(ServerMessage{Kind: ServerError, Error: Error{Kind: ErrorOther, Message: "invalid game configuration"}})
					continue
				}
				room.Join(session.userID, session)
				joined = append(joined, room)

			case ClientJoinGame:
				if msg.RoomID == nil {
					continue
				}
				room, ok := reg.Get(*msg.RoomID)
				if !ok {
					continue
				}
				room.Join(session.userID, session)
				joined = append(joined, room)

			case ClientLeaveGame:
				joined = leaveRooms(joined, msg.RoomID, session.userID)

			case ClientGameAction:
				if msg.RoomID == nil {
					continue
				}
				room, ok := reg.Get(*msg.RoomID)
				if !ok {
					continue
				}
				room.HandleAction(session.userID, msg.Action)
			}
		}
	}
}

// leaveRooms removes session from roomID (or every joined room when
// roomID is nil), returning the remaining set.
func leaveRooms(joined []*Room, roomID *uint32, userID uint64) []*Room {
	if roomID == nil {
		for _, r := range joined {
			r.Leave(userID)
		}
		return nil
	}
	out := joined[:0]
	for _, r := range joined {
		if r.RoomID == *roomID {
			r.Leave(userID)
			continue
		}
		out = append(out, r)
	}
	return out
}
