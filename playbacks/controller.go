package playbacks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reusee/stepper/stepconfigs"
)

// Notice prints a one-line status on the real terminal
type Notice func(text string) error

// Sleeper blocks for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Controller owns the pacing state. Commands may come from any goroutine;
// the traced thread always observes a whole State.
type Controller struct {
	state   atomic.Pointer[State]
	step    time.Duration
	minTick time.Duration
	notice  Notice
	sleep   Sleeper

	mu      sync.Mutex
	changed chan struct{}
}

func NewController(
	tick time.Duration,
	step time.Duration,
	minTick time.Duration,
	notice Notice,
	sleeper Sleeper,
) *Controller {
	if minTick <= 0 {
		minTick = stepconfigs.DefaultMinTick
	}
	if step <= 0 {
		step = stepconfigs.DefaultTickStep
	}
	if sleeper == nil {
		sleeper = SleepContext
	}
	c := &Controller{
		step:    step,
		minTick: minTick,
		notice:  notice,
		sleep:   sleeper,
		changed: make(chan struct{}),
	}
	c.state.Store(&State{
		Tick: max(tick, minTick),
	})
	return c
}

func (c *Controller) Snapshot() State {
	return *c.state.Load()
}

func (c *Controller) update(fn func(State) State) State {
	for {
		old := c.state.Load()
		next := fn(*old)
		if c.state.CompareAndSwap(old, &next) {
			c.mu.Lock()
			close(c.changed)
			c.changed = make(chan struct{})
			c.mu.Unlock()
			return next
		}
	}
}

func (c *Controller) changes() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

func (c *Controller) TogglePause() error {
	state := c.update(func(s State) State {
		s.Paused = !s.Paused
		return s
	})
	if state.Paused {
		return c.say("Paused")
	}
	return c.say("Running")
}

func (c *Controller) IncreaseTick() error {
	state := c.update(func(s State) State {
		s.Tick += c.step
		return s
	})
	return c.sayTick(state)
}

// DecreaseTick never goes below the minimum tick
func (c *Controller) DecreaseTick() error {
	state := c.update(func(s State) State {
		s.Tick = max(s.Tick-c.step, c.minTick)
		return s
	})
	return c.sayTick(state)
}

func (c *Controller) SetTick(tick time.Duration) error {
	state := c.update(func(s State) State {
		s.Tick = max(tick, c.minTick)
		return s
	})
	return c.sayTick(state)
}

// Do runs a named command
func (c *Controller) Do(command string) error {
	switch command {
	case stepconfigs.CommandTogglePause:
		return c.TogglePause()
	case stepconfigs.CommandIncreaseTick:
		return c.IncreaseTick()
	case stepconfigs.CommandDecreaseTick:
		return c.DecreaseTick()
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
}

func (c *Controller) say(text string) error {
	if c.notice == nil {
		return nil
	}
	return c.notice(text)
}

func (c *Controller) sayTick(state State) error {
	return c.say(fmt.Sprintf("Tick %.1fs", state.Tick.Seconds()))
}

// WaitWhilePaused blocks until the controller is running or ctx is done.
// It wakes on every state change; there is no polling interval.
func (c *Controller) WaitWhilePaused(ctx context.Context) error {
	for {
		ch := c.changes()
		if !c.state.Load().Paused {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Sleep waits one tick
func (c *Controller) Sleep(ctx context.Context) error {
	return c.sleep(ctx, c.state.Load().Tick)
}

func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
