package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Event type discriminators
const (
	TypeInit  = "init"
	TypePlay  = "play"
	TypeWin   = "win"
	TypeError = "error"
)

// PlayerID is an opaque label identifying one of the two participants.
// Servers send it either as a number (1, 2) or a string ("red").
type PlayerID string

// UnmarshalJSON accepts a JSON string or number.
func (p *PlayerID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlayerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("player must be a string or a number: %w", err)
	}
	*p = PlayerID(n.String())
	return nil
}

// MarshalJSON writes canonical integer labels ("1", "-3") as numbers and
// everything else, including "007" and "+1", as strings.
func (p PlayerID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(p), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(p) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

// String returns the label
func (p PlayerID) String() string {
	return string(p)
}

// ClientEvent is a message sent from the client to the server.
type ClientEvent interface {
	Type() string
	clientEvent()
}

// InitRequest opens a game. An empty GameID asks the server for a new game.
type InitRequest struct {
	GameID string
}

// PlayRequest asks the server to drop a piece in Column.
type PlayRequest struct {
	Column int
}

func (InitRequest) Type() string { return TypeInit }
func (PlayRequest) Type() string { return TypePlay }

func (InitRequest) clientEvent() {}
func (PlayRequest) clientEvent() {}

// ServerHandler receives decoded server events, one method per variant.
type ServerHandler interface {
	OnInit(InitEvent) error
	OnPlay(PlayEvent) error
	OnWin(WinEvent) error
	OnError(ErrorEvent) error
}

// ServerEvent is a message pushed by the server to the client.
type ServerEvent interface {
	Type() string
	// Accept dispatches the event to the matching handler method.
	Accept(h ServerHandler) error
	serverEvent()
}

// InitEvent carries the identifier of the game the client belongs to.
type InitEvent struct {
	GameID string
}

// PlayEvent reports one ply by either player. Row is decided by the server.
type PlayEvent struct {
	Player PlayerID
	Column int
	Row    int
}

// WinEvent ends the game.
type WinEvent struct {
	Player PlayerID
}

// ErrorEvent reports a non-fatal problem, such as a rejected move.
type ErrorEvent struct {
	Message string
}

func (InitEvent) Type() string  { return TypeInit }
func (PlayEvent) Type() string  { return TypePlay }
func (WinEvent) Type() string   { return TypeWin }
func (ErrorEvent) Type() string { return TypeError }

func (e InitEvent) Accept(h ServerHandler) error  { return h.OnInit(e) }
func (e PlayEvent) Accept(h ServerHandler) error  { return h.OnPlay(e) }
func (e WinEvent) Accept(h ServerHandler) error   { return h.OnWin(e) }
func (e ErrorEvent) Accept(h ServerHandler) error { return h.OnError(e) }

func (InitEvent) serverEvent()  {}
func (PlayEvent) serverEvent()  {}
func (WinEvent) serverEvent()   {}
func (ErrorEvent) serverEvent() {}
