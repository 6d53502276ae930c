package stepconfigs

import (
	"cmp"
	"time"

	"github.com/reusee/stepper/cmds"
	"github.com/reusee/stepper/configs"
)

const (
	DefaultTick     = 1800 * time.Millisecond
	DefaultTickStep = time.Second
	DefaultMinTick  = 100 * time.Millisecond
)

// Tick is the delay between two displayed steps
type Tick time.Duration

// TickStep is the amount one speed command adds or removes
type TickStep time.Duration

// MinTick is the lower bound of Tick
type MinTick time.Duration

var tickFlag float64

func init() {
	cmds.Define("-tick", cmds.Func(func(seconds float64) error {
		if seconds <= 0 {
			return errNotPositive
		}
		tickFlag = seconds
		return nil
	}).Args("seconds").Desc("delay between steps"))
}

func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (Module) Tick(
	loader configs.Loader,
	minTick MinTick,
) Tick {
	seconds := cmp.Or(
		tickFlag,
		configs.First[float64](loader, "tick"),
	)
	if seconds == 0 {
		return Tick(max(DefaultTick, time.Duration(minTick)))
	}
	return Tick(max(Seconds(seconds), time.Duration(minTick)))
}

func (Module) TickStep(
	loader configs.Loader,
) TickStep {
	if seconds := configs.First[float64](loader, "tick_step"); seconds > 0 {
		return TickStep(Seconds(seconds))
	}
	return TickStep(DefaultTickStep)
}

func (Module) MinTick(
	loader configs.Loader,
) MinTick {
	if seconds := configs.First[float64](loader, "min_tick"); seconds > 0 {
		return MinTick(Seconds(seconds))
	}
	return MinTick(DefaultMinTick)
}

// TickFromFlag reports whether -tick was given; it then wins over any config file
func TickFromFlag() bool {
	return tickFlag > 0
}

// ConfiguredTick reads the tick from config files, clamped to minTick
func ConfiguredTick(loader configs.Loader, minTick MinTick) (time.Duration, bool) {
	seconds, ok := configs.Lookup[float64](loader, "tick")
	if !ok || seconds <= 0 {
		return 0, false
	}
	return max(Seconds(seconds), time.Duration(minTick)), true
}
