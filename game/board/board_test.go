package board

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(nil, 0, 0)
	assert.Equal(t, DefaultColumns, g.Columns())
	assert.Equal(t, DefaultRows, g.Rows())

	g = NewGrid(nil, 9, 8)
	assert.Equal(t, 9, g.Columns())
	assert.Equal(t, 8, g.Rows())
}

func TestCreateBoard_RendersEmptyGrid(t *testing.T) {
	var out bytes.Buffer
	g := NewGrid(&out, 7, 6)
	g.CreateBoard()

	expected := strings.Join([]string{
		"  1 2 3 4 5 6 7",
		"| . . . . . . . |",
		"| . . . . . . . |",
		"| . . . . . . . |",
		"| . . . . . . . |",
		"| . . . . . . . |",
		"| . . . . . . . |",
		"+---------------+",
		"",
	}, "\n")

	assert.Equal(t, expected, g.String())
	assert.Equal(t, "\n"+expected, out.String())
}

func TestPlayMove(t *testing.T) {
	var out bytes.Buffer
	g := NewGrid(&out, 7, 6)
	g.CreateBoard()
	out.Reset()

	require.NoError(t, g.PlayMove("1", 3, 0))
	require.NoError(t, g.PlayMove("2", 3, 1))
	require.NoError(t, g.PlayMove("red", 0, 0))

	player, ok := g.Cell(3, 0)
	assert.True(t, ok)
	assert.Equal(t, "1", player.String())

	player, ok = g.Cell(3, 1)
	assert.True(t, ok)
	assert.Equal(t, "2", player.String())

	_, ok = g.Cell(4, 0)
	assert.False(t, ok)

	assert.Equal(t, 3, g.Moves())

	lines := strings.Split(g.String(), "\n")
	// Bottom row sits just above the footer
	assert.Equal(t, "| R . . 1 . . . |", lines[6])
	assert.Equal(t, "| . . . 2 . . . |", lines[5])

	assert.Equal(t, 3, strings.Count(out.String(), "+---------------+"), "board redrawn after each move")
}

func TestPlayMove_DoesNotJudgeLegality(t *testing.T) {
	g := NewGrid(nil, 7, 6)
	g.CreateBoard()

	// A piece floating above an empty column and an overwrite are both drawn
	require.NoError(t, g.PlayMove("1", 2, 5))
	require.NoError(t, g.PlayMove("2", 2, 5))

	player, ok := g.Cell(2, 5)
	assert.True(t, ok)
	assert.Equal(t, "2", player.String())
}

func TestPlayMove_OutOfRange(t *testing.T) {
	g := NewGrid(nil, 7, 6)
	g.CreateBoard()

	for _, coord := range [][2]int{{-1, 0}, {7, 0}, {0, -1}, {0, 6}} {
		err := g.PlayMove("1", coord[0], coord[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfRange))
	}
	assert.Equal(t, 0, g.Moves())
}

func TestCreateBoard_Clears(t *testing.T) {
	g := NewGrid(nil, 7, 6)
	require.NoError(t, g.PlayMove("1", 0, 0))

	g.CreateBoard()

	_, ok := g.Cell(0, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, g.Moves())
}

func TestColumnAt(t *testing.T) {
	g := NewGrid(nil, 7, 6)

	tests := []struct {
		input  string
		column int
		ok     bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{" 7 ", 6, true},
		{"a", 0, true},
		{"G", 6, true},
		{"0", 0, false},
		{"8", 0, false},
		{"-1", 0, false},
		{"h", 0, false},
		{"", 0, false},
		{"play", 0, false},
		{"?", 0, false},
	}

	for _, tt := range tests {
		column, ok := g.ColumnAt(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.column, column, "input %q", tt.input)
		}
	}
}

func TestWideGridRendering(t *testing.T) {
	g := NewGrid(nil, 10, 2)
	require.NoError(t, g.PlayMove("yellow", 9, 0))

	lines := strings.Split(g.String(), "\n")
	assert.Equal(t, "   1  2  3  4  5  6  7  8  9 10", lines[0])
	assert.True(t, strings.HasSuffix(lines[2], " Y |"), lines[2])
	assert.Equal(t, len(lines[1]), len(lines[3]), "footer matches row width")
}
