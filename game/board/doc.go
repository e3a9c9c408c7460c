// Package board provides the Board Surface of the Connect Four client.
//
// The board is a passive rendering target. It lays out an empty grid, draws
// pieces where the server says they landed, and hit-tests raw user input
// against its columns. It never decides whether a move is legal, whose turn
// it is, or who won; the server is the authority on all of that.
//
// Coordinates:
//
// Columns are numbered from 0 on the left, rows from 0 at the bottom. On
// screen, and in user input, columns are shown 1-based.
//
// Usage:
//
//	grid := board.NewGrid(os.Stdout, board.DefaultColumns, board.DefaultRows)
//	grid.CreateBoard()
//
//	if column, ok := grid.ColumnAt(line); ok {
//		// the user picked a column
//	}
//
//	grid.PlayMove("1", 3, 0)
package board
