package transport

import (
	"encoding/binary"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NewGameHandler returns an echo handler for POST /game/new (§10): it
// decodes a StartGame body and creates a room, owned by a freshly minted
// identity — REST requests carry no persistent session to derive one
// from, unlike the websocket handler in ws.go.
func NewGameHandler(reg *Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req StartGame
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
		}

		ownerID := newRESTIdentity()
		room, ok := reg.CreateRoom(ownerID, req)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid game configuration")
		}

		return c.JSON(http.StatusCreated, struct {
			RoomID uint32 `json:"room_id"`
			Owner  uint64 `json:"owner"`
		}{RoomID: room.RoomID, Owner: ownerID})
	}
}

// GetGameHandler returns an echo handler for GET /game/:id (§10): a
// read-only status fetch. The optional ?player_id= query parameter
// selects whose redacted view to return; omitted, it addresses no seat,
// matching a pure spectator (see game.View).
func GetGameHandler(reg *Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		roomID, err := parseRoomID(c)
		if err != nil {
			return err
		}
		room, ok := reg.Get(roomID)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "no such game")
		}

		playerID, err := parsePlayerID(c)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, room.Status(playerID))
	}
}

// MoveHandler returns an echo handler for POST /game/:id/move (§10): a
// synchronous equivalent of the websocket's ClientGameAction, for
// clients that would rather poll than hold a connection open.
func MoveHandler(reg *Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		roomID, err := parseRoomID(c)
		if err != nil {
			return err
		}
		room, ok := reg.Get(roomID)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "no such game")
		}

		var action GameAction
		if err := c.Bind(&action); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
		}

		status, err := room.Dispatch(action.PlayerID, action)
		if err != nil {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return c.JSON(http.StatusOK, status)
	}
}

func parseRoomID(c echo.Context) (uint32, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "malformed game id")
	}
	return uint32(id), nil
}

func parsePlayerID(c echo.Context) (uint64, error) {
	raw := c.QueryParam("player_id")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "malformed player_id")
	}
	return id, nil
}

// newRESTIdentity mints a fresh 64-bit identity the same way the
// websocket handler does for a new connection (ws.go), since REST
// requests carry no session to derive one from.
func newRESTIdentity() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}
