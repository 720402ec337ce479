// Package transport implements the WebSocket wire protocol and room
// collaborator that sit in front of the game engine (§5, §6). It knows
// nothing about Go rules beyond the types it forwards to package game;
// all legality and state-machine logic stays in internal/rules.
package transport

import "variantgo/internal/rules"

// ClientMessageKind discriminates ClientMessage, since Go has no tagged
// union: every inbound envelope carries exactly one of these kinds and
// only the matching payload field is populated.
type ClientMessageKind string

const (
	ClientIdentify   ClientMessageKind = "identify"
	ClientGetList    ClientMessageKind = "get_game_list"
	ClientJoinGame   ClientMessageKind = "join_game"
	ClientLeaveGame  ClientMessageKind = "leave_game"
	ClientGameAction ClientMessageKind = "game_action"
	ClientStartGame  ClientMessageKind = "start_game"
	ClientAdmin      ClientMessageKind = "admin"
)

// GameActionKind discriminates GameAction.
type GameActionKind string

const (
	ActPlace      GameActionKind = "place"
	ActPass       GameActionKind = "pass"
	ActCancel     GameActionKind = "cancel"
	ActResign     GameActionKind = "resign"
	ActBoardAt    GameActionKind = "board_at"
	ActTakeSeat   GameActionKind = "take_seat"
	ActLeaveSeat  GameActionKind = "leave_seat"
	ActKickPlayer GameActionKind = "kick_player"
)

// GameAction is one of the in-room action kinds a client may send. It
// doubles as the JSON body of POST /game/:id/move (§10): both transports
// share this one shape.
type GameAction struct {
	Kind     GameActionKind `cbor:"kind" json:"kind"`
	X        int            `cbor:"x,omitempty" json:"x,omitempty"`
	Y        int            `cbor:"y,omitempty" json:"y,omitempty"`
	Start    int            `cbor:"start,omitempty" json:"start,omitempty"`
	End      int            `cbor:"end,omitempty" json:"end,omitempty"`
	SeatID   int            `cbor:"seat_id,omitempty" json:"seat_id,omitempty"`
	PlayerID uint64         `cbor:"player_id,omitempty" json:"player_id,omitempty"`
}

// ToRulesAction converts a place/pass/cancel/resign GameAction into a
// rules.ActionKind. It panics if called on a BoardAt/TakeSeat/LeaveSeat/
// KickPlayer kind, which the room handles separately.
func (a GameAction) ToRulesAction() rules.ActionKind {
	switch a.Kind {
	case ActPlace:
		return rules.PlaceAction(a.X, a.Y)
	case ActPass:
		return rules.PassAction()
	case ActCancel:
		return rules.CancelAction()
	case ActResign:
		return rules.ResignAction()
	default:
		panic("ToRulesAction called on a non-play action kind")
	}
}

// StartGame requests a new room. It doubles as the JSON body of
// POST /game/new (§10): both transports share this one shape.
type StartGame struct {
	Name      string             `cbor:"name" json:"name"`
	Seats     []uint8            `cbor:"seats" json:"seats"`
	Komis     []int              `cbor:"komis" json:"komis"`
	Width     int                `cbor:"width" json:"width"`
	Height    int                `cbor:"height" json:"height"`
	Mods      rules.GameModifier `cbor:"mods" json:"mods"`
	ClockRule *ClockRule         `cbor:"clock_rule,omitempty" json:"clock_rule,omitempty"`
}

// ClockRuleKind discriminates ClockRule.
type ClockRuleKind string

const (
	ClockRuleSimple  ClockRuleKind = "simple"
	ClockRuleFischer ClockRuleKind = "fischer"
)

// ClockRule configures the room's optional per-seat clock (§4.10). All
// durations are milliseconds on the wire; clockRuleFromWire (registry.go)
// converts them to time.Duration for game.Config.
type ClockRule struct {
	Kind        ClockRuleKind `cbor:"kind" json:"kind"`
	TurnTimeMs  int64         `cbor:"turn_time_ms,omitempty" json:"turn_time_ms,omitempty"`
	MainTimeMs  int64         `cbor:"main_time_ms,omitempty" json:"main_time_ms,omitempty"`
	IncrementMs int64         `cbor:"increment_ms,omitempty" json:"increment_ms,omitempty"`
}

// AdminActionKind discriminates AdminAction.
type AdminActionKind string

const AdminUnloadRoom AdminActionKind = "unload_room"

// AdminAction is a privileged, room-management action.
type AdminAction struct {
	Kind   AdminActionKind `cbor:"kind"`
	RoomID uint32          `cbor:"room_id,omitempty"`
}

// ClientMessage is one inbound envelope (§6): exactly one of the
// payload fields is set, selected by Kind.
type ClientMessage struct {
	Kind ClientMessageKind `cbor:"kind"`

	Token *string `cbor:"token,omitempty"`
	Nick  *string `cbor:"nick,omitempty"`

	RoomID *uint32 `cbor:"room_id,omitempty"`

	Action GameAction `cbor:"action,omitempty"`

	StartGame StartGame `cbor:"start_game,omitempty"`

	Admin AdminAction `cbor:"admin,omitempty"`
}

// ServerMessageKind discriminates ServerMessage.
type ServerMessageKind string

const (
	ServerIdentify     ServerMessageKind = "identify"
	ServerAnnounceGame ServerMessageKind = "announce_game"
	ServerCloseGame    ServerMessageKind = "close_game"
	ServerGameStatus   ServerMessageKind = "game_status"
	ServerBoardAt      ServerMessageKind = "board_at"
	ServerProfile      ServerMessageKind = "profile"
	ServerMsgError     ServerMessageKind = "msg_error"
	ServerError        ServerMessageKind = "error"
)

// SeatStatus is one seat's public state as reported in GameStatus.
type SeatStatus struct {
	PlayerID *uint64 `cbor:"player_id,omitempty" json:"player_id,omitempty"`
	Team     uint8   `cbor:"team" json:"team"`
	Resigned bool    `cbor:"resigned" json:"resigned"`
}

// GameStatus is the redacted board-and-room state sent to one observer,
// one per GetView call (§6). It doubles as the JSON response of
// GET /game/:id (§10). statusFromView fills the room, member, turn,
// board, hidden-stone, size, points and clock fields; Seats,
// BoardVisibility, State and MoveNumber are not filled and stay at their
// zero values.
type GameStatus struct {
	RoomID           uint32       `cbor:"room_id" json:"room_id"`
	Owner            uint64       `cbor:"owner" json:"owner"`
	Members          []uint64     `cbor:"members" json:"members"`
	Seats            []SeatStatus `cbor:"seats" json:"seats"`
	Turn             int          `cbor:"turn" json:"turn"`
	Board            []uint8      `cbor:"board" json:"board"`
	BoardVisibility  []uint16     `cbor:"board_visibility,omitempty" json:"board_visibility,omitempty"`
	HiddenStonesLeft int          `cbor:"hidden_stones_left" json:"hidden_stones_left"`
	Width            int          `cbor:"width" json:"width"`
	Height           int          `cbor:"height" json:"height"`
	State            string       `cbor:"state" json:"state"`
	Points           []int        `cbor:"points" json:"points"`
	MoveNumber       int          `cbor:"move_number" json:"move_number"`
	Clock            *ClockStatus `cbor:"clock,omitempty" json:"clock,omitempty"`
}

// ClockStatus reports every seat's remaining time, when the room has a
// clock configured (§4.10, §6's GameStatus.clock field).
type ClockStatus struct {
	TimeLeftMs []int64 `cbor:"time_left_ms" json:"time_left_ms"`
	Paused     bool    `cbor:"paused" json:"paused"`
}

// ErrorKind discriminates Error.
type ErrorKind string

const (
	ErrorGameStartTimer ErrorKind = "game_start_timer"
	ErrorGame           ErrorKind = "game"
	ErrorRateLimit      ErrorKind = "rate_limit"
	ErrorOther          ErrorKind = "other"
)

// Error is a transport-surfaced error (§7): Seating/Action errors from
// the engine are wrapped under ErrorGame, everything else is a
// lifecycle/transport concern.
type Error struct {
	Kind             ErrorKind `cbor:"kind"`
	GameStartSeconds uint64    `cbor:"game_start_seconds,omitempty"`
	RoomID           uint32    `cbor:"room_id,omitempty"`
	Message          string    `cbor:"message,omitempty"`
}

// ServerMessage is one outbound envelope; exactly one payload field is
// populated, selected by Kind.
type ServerMessage struct {
	Kind ServerMessageKind `cbor:"kind"`

	Token  string  `cbor:"token,omitempty"`
	Nick   *string `cbor:"nick,omitempty"`
	UserID uint64  `cbor:"user_id,omitempty"`

	RoomID uint32 `cbor:"room_id,omitempty"`
	Name   string `cbor:"name,omitempty"`

	GameStatus GameStatus `cbor:"game_status,omitempty"`

	MsgError string `cbor:"msg_error,omitempty"`
	Error    Error  `cbor:"error,omitempty"`
}
