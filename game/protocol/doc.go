// Package protocol defines the wire protocol spoken between the Connect Four
// client and the game server.
//
// The protocol package implements:
//   - Closed sum types for client-to-server and server-to-client events
//   - A JSON codec for single-frame, newline-free text messages
//   - Visitor-based dispatch of server events
//   - Sentinel errors for protocol violations
//
// Message Protocol:
//
// Every frame is one JSON object carrying a "type" discriminator:
//   - Client to server: {"type":"init"}, {"type":"init","game_id":"abcd"},
//     {"type":"play","column":3}
//   - Server to client: {"type":"init","game_id":"abcd"},
//     {"type":"play","player":1,"column":3,"row":0},
//     {"type":"win","player":1}, {"type":"error","message":"..."}
//
// Dispatch:
//
// ServerEvent values can only be created inside this package. Consumers
// handle them through ServerHandler, which has one method per variant, so
// a handler that forgets a variant fails to compile. An unknown
// discriminator never becomes a ServerEvent; DecodeServer reports it as
// ErrUnsupportedEvent instead.
//
// Usage:
//
//	data, err := protocol.EncodeClient(protocol.PlayRequest{Column: 3})
//
//	event, err := protocol.DecodeServer(frame)
//	if err != nil {
//		return err
//	}
//	return event.Accept(handler)
package protocol
