// Command connect4 plays Connect Four against a second player through a
// game server.
//
// It supports two modes:
//  1. "console" (default) – draws the board in the terminal and reads column numbers from stdin
//  2. "mcp" – serves the session to an AI agent over MCP stdio, drawing the board on stderr
//
// Without a game id the server starts a new game and the client prints an
// invitation link for the second player. With a game id (positional
// argument, --game-id, or the game_id of a --join link) the client joins
// that game instead. An optional local HTTP control API can be enabled with
// --http.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/connect-four-client/api"
	"github.com/wricardo/connect-four-client/config"
	"github.com/wricardo/connect-four-client/game/board"
	"github.com/wricardo/connect-four-client/game/notify"
	"github.com/wricardo/connect-four-client/game/session"
	"github.com/wricardo/connect-four-client/transport/console"
	"github.com/wricardo/connect-four-client/transport/mcp"
	"github.com/wricardo/connect-four-client/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Connect Four Client"
)

// Time allowed for the server to acknowledge our close after a win.
const closeWait = 3 * time.Second

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "error", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("connect4 failed", "error", err)
		os.Exit(1)
	}
}

// newCommand declares the CLI. Flags override the config file and environment.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect4",
		Usage:     "play Connect Four through a game server",
		Version:   Version,
		ArgsUsage: "[game_id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "env", Usage: "runtime environment: local or production"},
			&cli.StringFlag{Name: "server", Usage: "game server WebSocket URL, overrides --env"},
			&cli.StringFlag{Name: "page-url", Usage: "page the invitation link points to"},
			&cli.StringFlag{Name: "game-id", Usage: "join an existing game"},
			&cli.StringFlag{Name: "join", Usage: "join the game of an invitation link"},
			&cli.IntFlag{Name: "columns", Usage: "board width"},
			&cli.IntFlag{Name: "rows", Usage: "board height"},
			&cli.DurationFlag{Name: "notify-delay", Usage: "delay before notifications are shown"},
			&cli.StringFlag{Name: "mode", Usage: "front end: console or mcp"},
			&cli.StringFlag{Name: "http", Usage: "serve the control API on this address, e.g. 127.0.0.1:8002"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg.Debug)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			// In MCP mode stdout carries the protocol
			screen := io.Writer(os.Stdout)
			if cfg.Mode == config.ModeMCP {
				screen = os.Stderr
			}

			return play(ctx, cfg, logger, os.Stdin, screen)
		},
	}
}

// loadConfig layers flags over the config file and environment
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("env") {
		cfg.Environment = cmd.String("env")
	}
	if cmd.IsSet("server") {
		cfg.ServerURL = cmd.String("server")
	}
	if cmd.IsSet("page-url") {
		cfg.PageURL = cmd.String("page-url")
	}
	if cmd.IsSet("game-id") {
		cfg.GameID = cmd.String("game-id")
	} else if id := cmd.Args().First(); id != "" {
		cfg.GameID = id
	}
	if cmd.IsSet("join") {
		cfg.JoinLink = cmd.String("join")
	}
	if cmd.IsSet("columns") {
		cfg.Columns = int(cmd.Int("columns"))
	}
	if cmd.IsSet("rows") {
		cfg.Rows = int(cmd.Int("rows"))
	}
	if cmd.IsSet("notify-delay") {
		cfg.NotifyDelay = cmd.Duration("notify-delay")
	}
	if cmd.IsSet("mode") {
		cfg.Mode = cmd.String("mode")
	}
	if cmd.IsSet("http") {
		cfg.HTTPAddr = cmd.String("http")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// play runs one game session until it ends, the context is cancelled, or
// the server breaks the protocol.
func play(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, screen io.Writer) error {
	joinID, err := cfg.JoinGameID()
	if err != nil {
		return err
	}

	grid := board.NewGrid(screen, cfg.Columns, cfg.Rows)
	notifier := notify.New(screen, cfg.NotifyDelay)
	term := console.New(in, screen, grid)

	endpoint := cfg.Endpoint()
	logger.Info("starting", "app", AppName, "version", Version,
		"endpoint", endpoint, "mode", cfg.Mode, "join", joinID)

	grid.CreateBoard()

	conn, err := websocket.Dial(ctx, endpoint, logger)
	if err != nil {
		return err
	}
	defer conn.Teardown()

	sess, err := session.New(session.Config{
		JoinGameID: joinID,
		PageURL:    cfg.PageURL,
		Logger:     logger,
	}, conn, grid, notifier, term)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := conn.Start(sess); err != nil {
		return err
	}

	switch cfg.Mode {
	case config.ModeMCP:
		srv := mcp.NewServer(sess, grid, notifier)
		go func() {
			if err := srv.ServeStdio(); err != nil {
				logger.Warn("MCP server stopped", "error", err)
			}
			// Nobody is left to play
			cancel()
		}()
	default:
		go func() {
			if err := term.Run(ctx, sess); err != nil {
				logger.Warn("input stopped", "error", err)
			}
		}()
	}

	if cfg.HTTPAddr != "" {
		httpServer := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      api.NewServer(sess, grid, notifier),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			logger.Info("control API listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("control API failed", "error", err)
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()
	}

	err = sess.Run(ctx)
	notifier.Wait()

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("stopped")
		return nil
	case err != nil:
		return fmt.Errorf("game aborted: %w", err)
	}

	// Let the close frame sent after a win reach the server
	select {
	case <-conn.Done():
	case <-time.After(closeWait):
	}
	return nil
}
