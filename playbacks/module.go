package playbacks

import (
	"context"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/stepconfigs"
)

type Module struct {
	dscope.Module
}

func (Module) Sleeper(
	mode modes.Mode,
) Sleeper {
	if mode == modes.ModeTest {
		return func(ctx context.Context, _ time.Duration) error {
			return ctx.Err()
		}
	}
	return SleepContext
}

func (Module) Controller(
	tick stepconfigs.Tick,
	step stepconfigs.TickStep,
	minTick stepconfigs.MinTick,
	notice Notice,
	sleeper Sleeper,
) *Controller {
	return NewController(
		time.Duration(tick),
		time.Duration(step),
		time.Duration(minTick),
		notice,
		sleeper,
	)
}
