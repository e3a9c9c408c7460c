// Package notify shows user-visible messages without blocking the caller.
//
// Messages are delivered after a short delay, so the side effects of the
// event that raised them (a board redraw, a close frame) are issued first.
// Delivery is strictly in the order Notify was called: one goroutine drains
// a FIFO queue and sleeps until each message is due. The goroutine exits
// when the queue is empty and is restarted by the next Notify.
//
// Delivered messages are kept, oldest first, for front ends that list them
// (the MCP messages tool and GET /api/messages).
//
// Usage:
//
//	n := notify.New(os.Stdout, notify.DefaultDelay)
//	n.Notify("Player 1 wins!")
//	n.Wait() // before exiting
package notify
