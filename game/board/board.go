package board

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/wricardo/connect-four-client/game/protocol"
)

// Standard Connect Four geometry
const (
	DefaultColumns = 7
	DefaultRows    = 6
)

// ErrOutOfRange is returned for a move that falls outside the grid.
var ErrOutOfRange = errors.New("coordinate outside the board")

// Surface is the rendering target a session drives.
type Surface interface {
	// CreateBoard lays out an empty grid.
	CreateBoard()
	// PlayMove draws a piece for player at (column, row).
	PlayMove(player protocol.PlayerID, column, row int) error
}

// Grid is a terminal Board Surface
type Grid struct {
	mu      sync.RWMutex
	columns int
	rows    int
	cells   [][]protocol.PlayerID // indexed [row][column]
	moves   int
	out     io.Writer
}

// NewGrid creates a grid that redraws itself to out after every change.
// A nil out disables drawing.
func NewGrid(out io.Writer, columns, rows int) *Grid {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	if out == nil {
		out = io.Discard
	}

	g := &Grid{
		columns: columns,
		rows:    rows,
		out:     out,
	}
	g.cells = emptyCells(columns, rows)
	return g
}

func emptyCells(columns, rows int) [][]protocol.PlayerID {
	cells := make([][]protocol.PlayerID, rows)
	for r := range cells {
		cells[r] = make([]protocol.PlayerID, columns)
	}
	return cells
}

// Columns returns the grid width
func (g *Grid) Columns() int {
	return g.columns
}

// Rows returns the grid height
func (g *Grid) Rows() int {
	return g.rows
}

// CreateBoard clears the grid and draws it.
func (g *Grid) CreateBoard() {
	g.mu.Lock()
	g.cells = emptyCells(g.columns, g.rows)
	g.moves = 0
	g.mu.Unlock()

	g.redraw()
}

// PlayMove draws a piece. The cell is overwritten if already occupied.
func (g *Grid) PlayMove(player protocol.PlayerID, column, row int) error {
	if column < 0 || column >= g.columns || row < 0 || row >= g.rows {
		return fmt.Errorf("%w: column %d, row %d on a %dx%d grid",
			ErrOutOfRange, column, row, g.columns, g.rows)
	}

	g.mu.Lock()
	g.cells[row][column] = player
	g.moves++
	g.mu.Unlock()

	g.redraw()
	return nil
}

// Cell returns the player occupying (column, row), if any.
func (g *Grid) Cell(column, row int) (protocol.PlayerID, bool) {
	if column < 0 || column >= g.columns || row < 0 || row >= g.rows {
		return "", false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	player := g.cells[row][column]
	return player, player != ""
}

// Moves returns how many pieces have been drawn since CreateBoard.
func (g *Grid) Moves() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.moves
}

// HasColumn reports whether column is a playable region of the grid.
func (g *Grid) HasColumn(column int) bool {
	return column >= 0 && column < g.columns
}

// ColumnAt hit-tests raw input. "1".."N" and "a", "b", ... select a column;
// anything else misses the playable region.
func (g *Grid) ColumnAt(input string) (int, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(input); err == nil {
		if g.HasColumn(n - 1) {
			return n - 1, true
		}
		return 0, false
	}

	if len(input) == 1 && input[0] >= 'a' && input[0] <= 'z' {
		column := int(input[0] - 'a')
		if g.HasColumn(column) {
			return column, true
		}
	}

	return 0, false
}

// String renders the grid with the top row first.
func (g *Grid) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	width := len(strconv.Itoa(g.columns))
	var b strings.Builder

	b.WriteString(" ")
	for c := 0; c < g.columns; c++ {
		fmt.Fprintf(&b, " %*d", width, c+1)
	}
	b.WriteString("\n")

	for r := g.rows - 1; r >= 0; r-- {
		b.WriteString("|")
		for c := 0; c < g.columns; c++ {
			fmt.Fprintf(&b, " %*s", width, symbol(g.cells[r][c]))
		}
		b.WriteString(" |\n")
	}

	b.WriteString("+" + strings.Repeat("-", g.columns*(width+1)+1) + "+\n")
	return b.String()
}

func (g *Grid) redraw() {
	fmt.Fprint(g.out, "\n"+g.String())
}

// symbol picks the glyph for a player: the first rune of its label, upper-cased
func symbol(player protocol.PlayerID) string {
	if player == "" {
		return "."
	}
	r, _ := utf8.DecodeRuneInString(string(player))
	return string(unicode.ToUpper(r))
}
