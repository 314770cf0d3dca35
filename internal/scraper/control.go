package scraper

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled is returned once a Control has been cancelled.
var ErrCancelled = errors.New("download cancelled")

// Control carries the pause and cancel signals between a download loop and
// whoever drives it. Both are only observed between chapters, so an
// in-flight fetch always completes. The zero value is ready to use.
type Control struct {
	mu        sync.Mutex
	paused    bool
	cancelled bool
	// resumed is closed and replaced whenever the paused state clears.
	resumed chan struct{}
}

// Pause holds the loop at its next check until Resume or Cancel.
func (c *Control) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled || c.paused {
		return
	}
	c.paused = true
	c.resumed = make(chan struct{})
}

// Resume releases a pause. It is a no-op when not paused.
func (c *Control) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
}

// Toggle flips the pause state and reports whether the control is now
// paused.
func (c *Control) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		return false
	}
	if c.paused {
		c.release()
		return false
	}
	c.paused = true
	c.resumed = make(chan struct{})
	return true
}

// Cancel stops the loop at its next check. It also clears a pause so a
// blocked Wait returns.
func (c *Control) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
	c.release()
}

// Paused reports whether the control is currently paused.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Cancelled reports whether Cancel has been called.
func (c *Control) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// Wait blocks while the control is paused. It returns ErrCancelled once the
// control is cancelled and ctx.Err() if ctx ends during a pause.
func (c *Control) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.cancelled {
			c.mu.Unlock()
			return ErrCancelled
		}
		if !c.paused {
			c.mu.Unlock()
			return nil
		}
		resumed := c.resumed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-resumed:
		}
	}
}

// release must be called with mu held.
func (c *Control) release() {
	if !c.paused {
		return
	}
	c.paused = false
	close(c.resumed)
}
