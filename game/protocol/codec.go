package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEvent means the peer sent a discriminator this client
	// does not know. It signals a client/server version mismatch.
	ErrUnsupportedEvent = errors.New("unsupported event type")

	// ErrMalformedEvent means the frame is not a JSON object, has no type,
	// or lacks a field its type requires.
	ErrMalformedEvent = errors.New("malformed event")
)

// envelope is the flat JSON shape shared by every variant
type envelope struct {
	Type    string    `json:"type"`
	GameID  *string   `json:"game_id,omitempty"`
	Player  *PlayerID `json:"player,omitempty"`
	Column  *int      `json:"column,omitempty"`
	Row     *int      `json:"row,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// EncodeClient serializes a client event into a text frame.
func EncodeClient(event ClientEvent) ([]byte, error) {
	env := envelope{Type: event.Type()}

	switch e := event.(type) {
	case InitRequest:
		if e.GameID != "" {
			env.GameID = &e.GameID
		}
	case PlayRequest:
		env.Column = &e.Column
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, event)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
	}
	return data, nil
}

// DecodeServer parses a text frame received from the server.
func DecodeServer(data []byte) (ServerEvent, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case TypeInit:
		if env.GameID == nil || *env.GameID == "" {
			return nil, missingField(env.Type, "game_id")
		}
		return InitEvent{GameID: *env.GameID}, nil

	case TypePlay:
		if env.Player == nil {
			return nil, missingField(env.Type, "player")
		}
		if env.Column == nil {
			return nil, missingField(env.Type, "column")
		}
		if env.Row == nil {
			return nil, missingField(env.Type, "row")
		}
		return PlayEvent{Player: *env.Player, Column: *env.Column, Row: *env.Row}, nil

	case TypeWin:
		if env.Player == nil {
			return nil, missingField(env.Type, "player")
		}
		return WinEvent{Player: *env.Player}, nil

	case TypeError:
		if env.Message == nil {
			return nil, missingField(env.Type, "message")
		}
		return ErrorEvent{Message: *env.Message}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, env.Type)
	}
}

// EncodeServer serializes a server event. Test servers and the
// development log server use it to speak the server side of the protocol.
func EncodeServer(event ServerEvent) ([]byte, error) {
	env := envelope{Type: event.Type()}

	switch e := event.(type) {
	case InitEvent:
		env.GameID = &e.GameID
	case PlayEvent:
		env.Player = &e.Player
		env.Column = &e.Column
		env.Row = &e.Row
	case WinEvent:
		env.Player = &e.Player
	case ErrorEvent:
		env.Message = &e.Message
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, event)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
	}
	return data, nil
}

// DecodeClient parses a text frame sent by a client.
func DecodeClient(data []byte) (ClientEvent, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case TypeInit:
		req := InitRequest{}
		if env.GameID != nil {
			req.GameID = *env.GameID
		}
		return req, nil

	case TypePlay:
		if env.Column == nil {
			return nil, missingField(env.Type, "column")
		}
		return PlayRequest{Column: *env.Column}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, env.Type)
	}
}

func decodeEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	return &env, nil
}

func missingField(eventType, field string) error {
	return fmt.Errorf("%w: %s event without %s", ErrMalformedEvent, eventType, field)
}
