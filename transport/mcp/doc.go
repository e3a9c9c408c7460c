// Package mcp exposes a live Connect Four session to AI agents over the
// Model Context Protocol.
//
// The mcp package implements:
//   - An MCP server served over stdio
//   - Tools that click board columns and inspect the rendered board
//   - Read-only access to notifications and the invitation link
//
// MCP Tools:
//   - play: drop a piece in a column (1-based, as shown on the board)
//   - board: rendered board, session state and game id
//   - messages: notifications shown so far (errors, the winner)
//   - invite_link: link a second player opens to join
//
// The server never judges moves. play only checks that the column exists
// on the board, then relays the click; the game server answers with a
// move or an error, which show up in board and messages.
//
// Usage:
//
//	srv := mcp.NewServer(sess, grid, notifier)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
