package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeClient(t *testing.T) {
	tests := []struct {
		name  string
		event ClientEvent
		want  string
	}{
		{"new game", InitRequest{}, `{"type":"init"}`},
		{"join game", InitRequest{GameID: "abcd"}, `{"type":"init","game_id":"abcd"}`},
		{"play", PlayRequest{Column: 3}, `{"type":"play","column":3}`},
		{"play first column", PlayRequest{Column: 0}, `{"type":"play","column":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeClient(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
			assert.NotContains(t, string(data), "\n")
		})
	}
}

func TestDecodeServer(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  ServerEvent
	}{
		{"init", `{"type":"init","game_id":"abcd"}`, InitEvent{GameID: "abcd"}},
		{"play numeric player", `{"type":"play","player":1,"column":3,"row":0}`, PlayEvent{Player: "1", Column: 3, Row: 0}},
		{"play string player", `{"type":"play","player":"red","column":6,"row":5}`, PlayEvent{Player: "red", Column: 6, Row: 5}},
		{"win", `{"type":"win","player":2}`, WinEvent{Player: "2"}},
		{"error", `{"type":"error","message":"This slot is full."}`, ErrorEvent{Message: "This slot is full."}},
		{"empty error message", `{"type":"error","message":""}`, ErrorEvent{}},
		{"extra fields ignored", `{"type":"win","player":1,"extra":true}`, WinEvent{Player: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeServer([]byte(tt.frame))
			require.NoError(t, err)
			assert.Equal(t, tt.want, event)
		})
	}
}

func TestDecodeServer_Unsupported(t *testing.T) {
	for _, frame := range []string{
		`{"type":"chat","message":"hi"}`,
		`{"type":"INIT","game_id":"abcd"}`,
		`{"type":"start"}`,
	} {
		_, err := DecodeServer([]byte(frame))
		require.Error(t, err, frame)
		assert.True(t, errors.Is(err, ErrUnsupportedEvent), "frame %s: %v", frame, err)
	}
}

func TestDecodeServer_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":           `not json`,
		"array":              `[1,2]`,
		"no type":            `{"game_id":"abcd"}`,
		"numeric type":       `{"type":3}`,
		"init without id":    `{"type":"init"}`,
		"init with empty id": `{"type":"init","game_id":""}`,
		"play without row":   `{"type":"play","player":1,"column":3}`,
		"play without col":   `{"type":"play","player":1,"row":0}`,
		"play null player":   `{"type":"play","player":null,"column":3,"row":0}`,
		"win without player": `{"type":"win"}`,
		"error without text": `{"type":"error"}`,
		"bad player":         `{"type":"win","player":true}`,
	}

	for name, frame := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeServer([]byte(frame))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedEvent), "got %v", err)
		})
	}
}

func TestServerRoundTrip(t *testing.T) {
	events := []ServerEvent{
		InitEvent{GameID: "xyz"},
		PlayEvent{Player: "2", Column: 4, Row: 1},
		PlayEvent{Player: "yellow", Column: 0, Row: 0},
		WinEvent{Player: "1"},
		ErrorEvent{Message: "Not your turn."},
	}

	for _, event := range events {
		data, err := EncodeServer(event)
		require.NoError(t, err)

		decoded, err := DecodeServer(data)
		require.NoError(t, err)
		assert.Equal(t, event, decoded)
	}
}

func TestDecodeClient(t *testing.T) {
	event, err := DecodeClient([]byte(`{"type":"init"}`))
	require.NoError(t, err)
	assert.Equal(t, InitRequest{}, event)

	event, err = DecodeClient([]byte(`{"type":"play","column":2}`))
	require.NoError(t, err)
	assert.Equal(t, PlayRequest{Column: 2}, event)

	_, err = DecodeClient([]byte(`{"type":"play"}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = DecodeClient([]byte(`{"type":"win","player":1}`))
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestPlayerID_JSON(t *testing.T) {
	data, err := json.Marshal(PlayerID("1"))
	require.NoError(t, err)
	assert.Equal(t, `1`, string(data))

	data, err = json.Marshal(PlayerID("red"))
	require.NoError(t, err)
	assert.Equal(t, `"red"`, string(data))

	var p PlayerID
	require.NoError(t, json.Unmarshal([]byte(`2`), &p))
	assert.Equal(t, PlayerID("2"), p)
	require.NoError(t, json.Unmarshal([]byte(`"yellow"`), &p))
	assert.Equal(t, "yellow", p.String())
}

func TestPlayerID_NonCanonicalNumbersStayStrings(t *testing.T) {
	tests := []struct {
		label PlayerID
		want  string
	}{
		{"007", `"007"`},
		{"+1", `"+1"`},
		{"-0", `"-0"`},
		{"-3", `-3`},
		{"99999999999999999999", `"99999999999999999999"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			data, err := json.Marshal(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEncodeServer_WinWithPaddedPlayer(t *testing.T) {
	ev, err := DecodeServer([]byte(`{"type":"win","player":"007"}`))
	require.NoError(t, err)

	data, err := EncodeServer(ev)
	require.NoError(t, err)

	again, err := DecodeServer(data)
	require.NoError(t, err)
	assert.Equal(t, WinEvent{Player: "007"}, again)
}

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) OnInit(InitEvent) error   { h.calls = append(h.calls, TypeInit); return nil }
func (h *recordingHandler) OnPlay(PlayEvent) error   { h.calls = append(h.calls, TypePlay); return nil }
func (h *recordingHandler) OnWin(WinEvent) error     { h.calls = append(h.calls, TypeWin); return nil }
func (h *recordingHandler) OnError(ErrorEvent) error { h.calls = append(h.calls, TypeError); return nil }

func TestAccept(t *testing.T) {
	h := &recordingHandler{}
	events := []ServerEvent{InitEvent{}, PlayEvent{}, WinEvent{}, ErrorEvent{}}
	for _, event := range events {
		require.NoError(t, event.Accept(h))
	}
	assert.Equal(t, []string{TypeInit, TypePlay, TypeWin, TypeError}, h.calls)
}
