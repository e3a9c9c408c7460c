package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/wricardo/connect-four-client/game/board"
	"github.com/wricardo/connect-four-client/game/protocol"
)

// NormalClosure is the close code sent after a win.
const NormalClosure = 1000

const defaultQueueSize = 64

var (
	// ErrProtocolFault wraps an inbound frame the client cannot handle.
	// The session cannot safely continue past it.
	ErrProtocolFault = errors.New("protocol fault")

	ErrAlreadyRunning = errors.New("session already running")
)

// State is the lifecycle stage of a session
type State int

const (
	StateConnecting State = iota
	StateOpen
	StatePlaying
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StatePlaying:
		return "playing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transport is the connection a session exclusively owns.
type Transport interface {
	// Send queues a text frame without waiting for it to be written.
	Send(data []byte) error
	// Close closes the connection with the given close code.
	Close(code int) error
}

// Notifier displays user-visible messages without blocking.
type Notifier interface {
	Notify(message string)
}

// Inviter exposes the link a second player uses to join the game.
type Inviter interface {
	ShowInvite(link string)
}

// Click is a user click on the board. InColumn is false when the click
// missed every column.
type Click struct {
	Column   int
	InColumn bool
}

// Config holds the per-session inputs
type Config struct {
	// JoinGameID joins an existing game. Empty asks the server for a new one.
	JoinGameID string
	// PageURL is the location the invitation link is built from.
	PageURL string
	// QueueSize bounds the number of pending inputs.
	QueueSize int
	Logger    *slog.Logger
}

// Session runs the client side of the game protocol over one transport.
type Session struct {
	id        string
	cfg       Config
	page      *url.URL
	transport Transport
	surface   board.Surface
	notifier  Notifier
	inviter   Inviter
	logger    *slog.Logger

	events  chan event
	done    chan struct{}
	running atomic.Bool

	mu         sync.RWMutex
	state      State
	gameID     string
	inviteLink string
}

type event interface{}

type (
	openEvent    struct{}
	messageEvent struct{ data []byte }
	closeEvent   struct{ err error }
	clickEvent   struct{ click Click }
)

// New creates a session in the Connecting state. Nothing is sent until
// HandleOpen is called and Run is consuming inputs.
func New(cfg Config, transport Transport, surface board.Surface, notifier Notifier, inviter Inviter) (*Session, error) {
	if transport == nil || surface == nil || notifier == nil || inviter == nil {
		return nil, errors.New("session requires a transport, surface, notifier and inviter")
	}

	page, err := url.Parse(cfg.PageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", cfg.PageURL, err)
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	id := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		id:        id,
		cfg:       cfg,
		page:      page,
		transport: transport,
		surface:   surface,
		notifier:  notifier,
		inviter:   inviter,
		logger:    logger.With("session", id),
		events:    make(chan event, cfg.QueueSize),
		done:      make(chan struct{}),
		state:     StateConnecting,
	}, nil
}

// ID returns the session's correlation id
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// GameID returns the game identifier learned from the server, if any.
func (s *Session) GameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameID
}

// InviteLink returns the invitation link, once the server has assigned a game.
func (s *Session) InviteLink() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inviteLink
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// HandleOpen reports that the transport finished its handshake.
func (s *Session) HandleOpen() {
	s.dispatch(openEvent{})
}

// HandleMessage delivers one inbound text frame.
func (s *Session) HandleMessage(data []byte) {
	s.dispatch(messageEvent{data: data})
}

// HandleClose reports that the transport closed. A nil err means a normal closure.
func (s *Session) HandleClose(err error) {
	s.dispatch(closeEvent{err: err})
}

// HandleClick delivers a user click.
func (s *Session) HandleClick(click Click) {
	s.dispatch(clickEvent{click: click})
}

func (s *Session) dispatch(ev event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// Run consumes inputs until the session closes. It returns nil after a
// win or a transport close, ctx.Err() on cancellation, and an error
// wrapping ErrProtocolFault when the server sends something the client
// cannot handle. Run may only be called once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.setState(StateClosed)
			return ctx.Err()

		case ev := <-s.events:
			if err := s.handle(ev); err != nil {
				s.setState(StateClosed)
				return err
			}
			if s.State() == StateClosed {
				return nil
			}
		}
	}
}

func (s *Session) handle(ev event) error {
	switch ev := ev.(type) {
	case openEvent:
		s.handleOpen()
	case clickEvent:
		s.handleClick(ev.click)
	case messageEvent:
		return s.handleMessage(ev.data)
	case closeEvent:
		s.handleClose(ev.err)
	}
	return nil
}

func (s *Session) handleOpen() {
	if state := s.State(); state != StateConnecting {
		s.logger.Warn("ignoring repeated open", "state", state)
		return
	}
	s.setState(StateOpen)

	s.logger.Info("connection open", "join", s.cfg.JoinGameID != "")
	s.send(protocol.InitRequest{GameID: s.cfg.JoinGameID})
}

func (s *Session) handleClick(click Click) {
	if !click.InColumn {
		return
	}
	if s.State() == StateConnecting {
		s.logger.Debug("click before connection open dropped", "column", click.Column)
		return
	}

	s.send(protocol.PlayRequest{Column: click.Column})
}

func (s *Session) handleMessage(data []byte) error {
	ev, err := protocol.DecodeServer(data)
	if err != nil {
		s.logger.Error("protocol violation", "error", err, "frame", string(data))
		return fmt.Errorf("%w: %w", ErrProtocolFault, err)
	}

	s.logger.Debug("event received", "type", ev.Type())
	return ev.Accept(serverEvents{s})
}

func (s *Session) handleClose(err error) {
	s.setState(StateClosed)
	if err != nil {
		s.logger.Warn("connection lost", "error", err)
		return
	}
	s.logger.Info("connection closed")
}

func (s *Session) send(ev protocol.ClientEvent) {
	data, err := protocol.EncodeClient(ev)
	if err != nil {
		s.logger.Error("failed to encode event", "type", ev.Type(), "error", err)
		return
	}

	if err := s.transport.Send(data); err != nil {
		s.logger.Warn("failed to send event", "type", ev.Type(), "error", err)
		return
	}
	s.logger.Debug("event sent", "type", ev.Type())
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// serverEvents handles decoded server events on the Run goroutine.
type serverEvents struct {
	*Session
}

func (h serverEvents) OnInit(e protocol.InitEvent) error {
	h.mu.Lock()
	if h.inviteLink != "" {
		h.mu.Unlock()
		h.logger.Warn("ignoring repeated init", "game_id", e.GameID, "current", h.GameID())
		return nil
	}

	link := InviteLink(h.page, e.GameID)
	h.gameID = e.GameID
	h.inviteLink = link
	if h.state == StateOpen {
		h.state = StatePlaying
	}
	h.mu.Unlock()

	h.logger = h.logger.With("game_id", e.GameID)
	h.logger.Info("game assigned", "invite", link)
	h.inviter.ShowInvite(link)
	return nil
}

func (h serverEvents) OnPlay(e protocol.PlayEvent) error {
	if err := h.surface.PlayMove(e.Player, e.Column, e.Row); err != nil {
		h.logger.Warn("failed to render move", "player", e.Player, "column", e.Column, "row", e.Row, "error", err)
	}
	return nil
}

func (h serverEvents) OnWin(e protocol.WinEvent) error {
	h.notifier.Notify(fmt.Sprintf("Player %s wins!", e.Player))
	h.setState(StateClosed)

	if err := h.transport.Close(NormalClosure); err != nil {
		h.logger.Warn("failed to close connection", "error", err)
	}
	h.logger.Info("game over", "winner", e.Player)
	return nil
}

func (h serverEvents) OnError(e protocol.ErrorEvent) error {
	h.notifier.Notify(e.Message)
	return nil
}

// InviteLink returns page with game_id=gameID set in its query string.
// Other query parameters are kept.
func InviteLink(page *url.URL, gameID string) string {
	u := *page
	q := u.Query()
	q.Set("game_id", gameID)
	u.RawQuery = q.Encode()
	return u.String()
}
