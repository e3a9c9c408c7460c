// Command logserver is a development game server. It accepts client
// connections, prints every frame it receives and, with --respond, answers
// init with a fresh game id and echoes each play as a move so a client can
// be exercised end to end without the real server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/connect-four-client/game/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// frameLogger prints what clients send and optionally plays along.
type frameLogger struct {
	out     io.Writer
	respond bool
	rows    int
	logger  *slog.Logger
}

func (f *frameLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	logger := f.logger.With("remote", r.RemoteAddr)
	logger.Info("client connected")

	// Next free row per column, only used with --respond
	heights := map[int]int{}
	moves := 0

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			logger.Info("client disconnected", "reason", err)
			return
		}
		fmt.Fprintln(f.out, string(data))

		ev, err := protocol.DecodeClient(data)
		if err != nil {
			logger.Warn("undecodable frame", "error", err)
			continue
		}
		logger.Debug("event", "type", ev.Type())

		if !f.respond {
			continue
		}

		var reply protocol.ServerEvent
		switch e := ev.(type) {
		case protocol.InitRequest:
			id := e.GameID
			if id == "" {
				id = uuid.NewString()
			}
			reply = protocol.InitEvent{GameID: id}

		case protocol.PlayRequest:
			row := heights[e.Column]
			if row >= f.rows {
				reply = protocol.ErrorEvent{Message: "This column is full."}
				break
			}
			heights[e.Column] = row + 1
			moves++
			player := protocol.PlayerID("1")
			if moves%2 == 0 {
				player = "2"
			}
			reply = protocol.PlayEvent{Player: player, Column: e.Column, Row: row}
		}

		if err := f.send(ws, reply); err != nil {
			logger.Warn("reply failed", "error", err)
			return
		}
	}
}

func (f *frameLogger) send(ws *websocket.Conn, ev protocol.ServerEvent) error {
	data, err := protocol.EncodeServer(ev)
	if err != nil {
		return err
	}
	ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return ws.WriteMessage(websocket.TextMessage, data)
}

func main() {
	cmd := &cli.Command{
		Name:  "logserver",
		Usage: "development game server that prints client frames",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8001", Usage: "listen address"},
			&cli.BoolFlag{Name: "respond", Usage: "answer init and play frames"},
			&cli.IntFlag{Name: "rows", Value: 6, Usage: "column height used with --respond"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level := slog.LevelInfo
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cmd.String("addr"), &frameLogger{
				out:     os.Stdout,
				respond: cmd.Bool("respond"),
				rows:    int(cmd.Int("rows")),
				logger:  logger,
			})
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("logserver failed", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
