package simhal

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Ticker is the minimal interface a Clock needs from a kernel: a single
// method invoked once per tick, from the driver goroutine, exactly as a
// real periodic interrupt would invoke the kernel's ISR entry point.
type Ticker interface {
	Tick()
}

// Clock drives a Ticker at a fixed period on its own goroutine, and wakes
// early whenever a Board's ForceSchedule fires — the host analogue of
// "wind the scheduling timer so it overflows on the next cycle".
type Clock struct {
	board  *Board
	ticker Ticker
	period time.Duration
}

// NewClock constructs a Clock that calls ticker.Tick() every period,
// additionally waking early on board.ForceSchedule.
func NewClock(board *Board, ticker Ticker, period time.Duration) *Clock {
	return &Clock{board: board, ticker: ticker, period: period}
}

// Run drives the clock until ctx is canceled, registering itself with g so
// a panic inside Tick (a kernel contract violation) fails the whole
// harness instead of hanging silently.
func (c *Clock) Run(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		t := time.NewTicker(c.period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				c.ticker.Tick()
			case <-c.board.forceCh:
				c.ticker.Tick()
			}
		}
	})
}
