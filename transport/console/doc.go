// Package console connects the Connect Four client to a terminal.
//
// Each line typed on stdin is hit-tested against the board ("1".."N" or a
// column letter) and submitted to the session as a click. Lines that miss
// every column are still submitted and ignored by the session; blank lines
// are skipped. The console also prints the invitation link once the server
// assigns a game.
//
// Usage:
//
//	term := console.New(os.Stdin, os.Stdout, grid)
//	go term.Run(ctx, sess)
package console
