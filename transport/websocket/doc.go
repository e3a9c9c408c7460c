// Package websocket provides the WebSocket transport for the Connect Four client.
//
// The websocket package implements:
//   - Dialing the game server
//   - A read pump delivering inbound text frames to a Handler
//   - A write pump draining a bounded outbound queue, so sends never block
//   - Closing with an explicit close code, or tearing down without one
//   - Keepalive pings and read deadlines
//
// Architecture:
//
// A Conn runs two goroutines once started. The read pump is the only reader
// of the socket and the write pump is the only writer of data frames;
// outbound frames and the close request share one queue so they leave in
// the order they were submitted.
//
// Lifecycle:
//
// 1. Dial performs the handshake
// 2. Start reports HandleOpen, then starts both pumps
// 3. Every text frame is passed to HandleMessage
// 4. Close queues a close frame; the server's reply ends the read pump
// 5. HandleClose is called exactly once, with nil for a normal closure
//
// Usage:
//
//	conn, err := websocket.Dial(ctx, "ws://localhost:8001/", logger)
//	if err != nil {
//		return err
//	}
//	defer conn.Teardown()
//
//	conn.Start(handler)
package websocket
