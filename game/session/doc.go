// Package session implements the Connection Session of the Connect Four client.
//
// A Session owns one live connection to the game server and runs the client
// side of the protocol on top of it:
//   - Sends the init event once the transport is open
//   - Relays column clicks to the server as play events
//   - Decodes server events and routes each to the board, the notifier,
//     the invitation display, or connection termination
//
// States:
//
//	Connecting -> Open -> Playing -> Closed
//
// Closed is terminal. A session closes when the server announces a winner
// (the session closes the transport with a normal-closure code), when the
// transport goes away, or on a protocol fault.
//
// Concurrency:
//
// Every input (transport open, inbound frame, transport close, user click)
// is queued on a single channel and handled by the goroutine running Run,
// one at a time and to completion. Inputs can be submitted from any
// goroutine. Once the session has closed, inputs are dropped without
// blocking, so nothing is ever sent on a dead transport.
//
// Usage:
//
//	sess, err := session.New(session.Config{JoinGameID: gameID, PageURL: pageURL},
//		conn, grid, notifier, console)
//	if err != nil {
//		return err
//	}
//	conn.Start(sess)
//	err = sess.Run(ctx)
//
// Limitations:
//
// There is no timeout on the handshake, no acknowledgment of sent events,
// and no reconnection after the transport fails. A play event that the
// server never answers simply has no visible effect.
package session
