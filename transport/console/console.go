package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/connect-four-client/game/session"
)

// Locator hit-tests raw input against the board's columns.
type Locator interface {
	ColumnAt(input string) (int, bool)
}

// Clicker accepts board clicks.
type Clicker interface {
	HandleClick(click session.Click)
}

// Console reads clicks from in and writes prompts to out.
type Console struct {
	in      io.Reader
	out     io.Writer
	locator Locator
}

// New creates a console bound to a board locator
func New(in io.Reader, out io.Writer, locator Locator) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{in: in, out: out, locator: locator}
}

// ShowInvite prints the link the second player opens to join.
func (c *Console) ShowInvite(link string) {
	fmt.Fprintf(c.out, "\nInvite a friend to this game: %s\n", link)
}

// Run reads one click per line until in is exhausted or ctx is done.
// Lines that miss every column are still submitted; the session ignores them.
func (c *Console) Run(ctx context.Context, clicker Clicker) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	fmt.Fprintf(c.out, "Type a column and press Enter to play.\n")

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			if strings.TrimSpace(line) == "" {
				continue
			}
			column, inColumn := c.locator.ColumnAt(line)
			clicker.HandleClick(session.Click{Column: column, InColumn: inColumn})
		}
	}
}
