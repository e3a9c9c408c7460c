// Package api provides a local HTTP control API for a running Connect Four
// client.
//
// The api package exposes the same live session as the terminal, so other
// local tools (a browser page, a script, a bot) can follow and drive it.
//
// Endpoints:
//
//	GET  /api/board                  Session state, game id, invite link and rendered board
//	GET  /api/messages               Notifications shown so far
//	POST /api/columns/{column}/click Click a column (1-based, as on the board)
//
// A click on a column the board does not have is accepted and ignored,
// exactly like a click outside the board in the terminal. Whether a move
// is legal is decided by the game server, never here.
//
// Usage:
//
//	srv := api.NewServer(sess, grid, notifier)
//	http.ListenAndServe("127.0.0.1:8002", srv)
package api
