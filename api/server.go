package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wricardo/connect-four-client/game/session"
)

// Game is the live session behind the API.
type Game interface {
	HandleClick(click session.Click)
	State() session.State
	GameID() string
	InviteLink() string
}

// Board renders the grid and knows its columns.
type Board interface {
	HasColumn(column int) bool
	String() string
}

// History lists notifications shown to the user.
type History interface {
	History() []string
}

// BoardResponse is the body of GET /api/board
type BoardResponse struct {
	State      string `json:"state"`
	GameID     string `json:"game_id,omitempty"`
	InviteLink string `json:"invite_link,omitempty"`
	Board      string `json:"board"`
}

// ClickResponse is the body of POST /api/columns/{column}/click
type ClickResponse struct {
	Column   int  `json:"column"`
	InColumn bool `json:"in_column"`
}

// Server represents the control API server
type Server struct {
	game    Game
	board   Board
	history History
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(game Game, board Board, history History) *Server {
	s := &Server{
		game:    game,
		board:   board,
		history: history,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/board", s.handleGetBoard).Methods("GET")
	api.HandleFunc("/messages", s.handleGetMessages).Methods("GET")
	api.HandleFunc("/columns/{column}/click", s.handleClick).Methods("POST")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, BoardResponse{
		State:      s.game.State().String(),
		GameID:     s.game.GameID(),
		InviteLink: s.game.InviteLink(),
		Board:      s.board.String(),
	})
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.history.History()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(messages),
		"messages": messages,
	})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["column"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "column must be an integer")
		return
	}

	if s.game.State() == session.StateClosed {
		respondError(w, http.StatusConflict, "the game is over")
		return
	}

	click := session.Click{Column: n - 1, InColumn: s.board.HasColumn(n - 1)}
	if !click.InColumn {
		click.Column = 0
	}
	s.game.HandleClick(click)

	respondJSON(w, http.StatusAccepted, ClickResponse{Column: n, InColumn: click.InColumn})
}
