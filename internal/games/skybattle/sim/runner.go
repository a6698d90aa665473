package sim

import (
	"context"
	"errors"
	"time"
)

// ErrTickLimit is returned by Run when RunOptions.MaxTicks is reached.
var ErrTickLimit = errors.New("sim: tick limit reached")

// Controller feeds input to the current level before each tick.
type Controller interface {
	Control(l *Level)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(l *Level)

func (f ControllerFunc) Control(l *Level) { f(l) }

// RunOptions configures Run.
type RunOptions struct {
	// Period between ticks. Zero runs as fast as possible.
	Period time.Duration
	// MaxTicks stops the run with ErrTickLimit. Zero means no limit.
	MaxTicks   int
	Controller Controller
}

// Run drives c until it is won or lost, ctx is done, or the tick limit is
// reached. It is the headless scheduler; the terminal UI schedules ticks
// itself.
func Run(ctx context.Context, c *Campaign, opts RunOptions) (Result, error) {
	var tick <-chan time.Time
	if opts.Period > 0 {
		ticker := time.NewTicker(opts.Period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if opts.MaxTicks > 0 && c.Ticks() >= opts.MaxTicks {
			return c.Result(), ErrTickLimit
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return c.Result(), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return c.Result(), err
		}

		if opts.Controller != nil {
			opts.Controller.Control(c.Level())
		}

		more, err := c.Tick()
		if err != nil {
			return c.Result(), err
		}
		if !more {
			return c.Result(), nil
		}
	}
}
