package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultDelay postpones delivery just enough for the triggering event's
// other side effects to be issued first.
const DefaultDelay = 50 * time.Millisecond

// delivery is a queued message and the time it becomes visible
type delivery struct {
	message string
	due     time.Time
}

// Notifier prints messages to a writer after a short delay.
type Notifier struct {
	out   io.Writer
	delay time.Duration

	mu       sync.Mutex
	queue    []delivery
	draining bool
	history  []string
	pending  sync.WaitGroup
}

// New creates a notifier writing to out. A negative delay is treated as zero.
func New(out io.Writer, delay time.Duration) *Notifier {
	if out == nil {
		out = io.Discard
	}
	if delay < 0 {
		delay = 0
	}
	return &Notifier{out: out, delay: delay}
}

// Notify schedules message for display and returns immediately.
func (n *Notifier) Notify(message string) {
	n.pending.Add(1)

	n.mu.Lock()
	defer n.mu.Unlock()

	n.queue = append(n.queue, delivery{message: message, due: time.Now().Add(n.delay)})
	if !n.draining {
		n.draining = true
		go n.drain()
	}
}

// drain delivers queued messages in order until the queue is empty.
// Due times never decrease, so waiting on the head is enough.
func (n *Notifier) drain() {
	for {
		n.mu.Lock()
		if len(n.queue) == 0 {
			n.draining = false
			n.mu.Unlock()
			return
		}
		next := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		if wait := time.Until(next.due); wait > 0 {
			time.Sleep(wait)
		}
		n.deliver(next.message)
	}
}

func (n *Notifier) deliver(message string) {
	defer n.pending.Done()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, message)
	fmt.Fprintf(n.out, "\n*** %s ***\n", message)
}

// Wait blocks until every scheduled message has been written.
func (n *Notifier) Wait() {
	n.pending.Wait()
}

// History returns delivered messages, oldest first.
func (n *Notifier) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}
