package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/connect-four-client/game/session"
)

const (
	serverName    = "Connect Four"
	serverVersion = "1.0.0"
)

// Game is the live session the tools act on.
type Game interface {
	HandleClick(click session.Click)
	State() session.State
	GameID() string
	InviteLink() string
}

// Board renders the grid and knows its columns.
type Board interface {
	HasColumn(column int) bool
	Columns() int
	String() string
}

// History lists notifications shown to the user.
type History interface {
	History() []string
}

// Server is an MCP front end for one session
type Server struct {
	game      Game
	board     Board
	history   History
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with all tools registered
func NewServer(game Game, board Board, history History) *Server {
	s := &Server{
		game:    game,
		board:   board,
		history: history,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Connect Four - MCP Interface

You are one of two players in a game of Connect Four run by a remote server.

GAME OBJECTIVE:
Line up four of your pieces horizontally, vertically or diagonally. Pieces
fall to the lowest free row of the column you pick; the server decides
where they land, whose turn it is and who wins.

AVAILABLE TOOLS:
- play: drop a piece in a column (1-based, as printed above the board)
- board: see the board, the session state and the game id
- messages: read notifications (rejected moves, the winner)
- invite_link: get the link your opponent opens to join

After play, call board to see the result. A rejected move shows up in messages.`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play",
		Description: "Drop a piece in a column. The server decides whether the move is legal.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"column": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Column number, 1 to %d", s.board.Columns()),
				},
			},
			Required: []string{"column"},
		},
	}, s.handlePlay)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "board",
		Description: "Show the board, the session state and the game id",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "messages",
		Description: "List notifications shown so far, oldest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleMessages)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "invite_link",
		Description: "Get the link a second player opens to join this game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInviteLink)
}

// Tool handlers

func (s *Server) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	raw, ok := args["column"].(float64)
	if !ok || raw != math.Trunc(raw) {
		return mcp.NewToolResultError("column must be an integer"), nil
	}
	// int() of an out-of-range float is implementation-defined
	if raw < 1 || raw > float64(s.board.Columns()) {
		return mcp.NewToolResultError(fmt.Sprintf("there is no column %g; pick 1 to %d", raw, s.board.Columns())), nil
	}
	column := int(raw) - 1

	if !s.board.HasColumn(column) {
		return mcp.NewToolResultError(fmt.Sprintf("there is no column %d; pick 1 to %d", column+1, s.board.Columns())), nil
	}

	switch s.game.State() {
	case session.StateConnecting:
		return mcp.NewToolResultError("not connected to the game server yet"), nil
	case session.StateClosed:
		return mcp.NewToolResultError("the game is over"), nil
	}

	s.game.HandleClick(session.Click{Column: column, InColumn: true})
	return mcp.NewToolResultText(fmt.Sprintf("Played column %d. Call board to see where the piece landed.", column+1)), nil
}

func (s *Server) handleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatBoard(s.game, s.board)), nil
}

func (s *Server) handleMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messages := s.history.History()
	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Messages (%d):\n", len(messages))
	for i, m := range messages {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleInviteLink(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	link := s.game.InviteLink()
	if link == "" {
		return mcp.NewToolResultError("the server has not assigned a game yet"), nil
	}
	return mcp.NewToolResultText(link), nil
}

// formatBoard renders the session summary and the grid
func formatBoard(game Game, board Board) string {
	var b strings.Builder

	fmt.Fprintf(&b, "State: %s\n", game.State())
	if id := game.GameID(); id != "" {
		fmt.Fprintf(&b, "Game: %s\n", id)
	}
	b.WriteString("\n")
	b.WriteString(board.String())
	return b.String()
}
