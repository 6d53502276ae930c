package playbacks

import (
	"context"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/stepconfigs"
)

func TestModule(t *testing.T) {
	dscope.New(
		new(Module),
		new(stepconfigs.Module),
		new(logs.Module),
		modes.ForTest(t),
		func() Notice {
			return func(string) error {
				return nil
			}
		},
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, stepconfigs.Schema)
		},
	).Call(func(
		controller *Controller,
	) {
		if tick := controller.Snapshot().Tick; tick != stepconfigs.DefaultTick {
			t.Fatalf("got %v", tick)
		}
		start := time.Now()
		if err := controller.Sleep(context.Background()); err != nil {
			t.Fatal(err)
		}
		if time.Since(start) > time.Second {
			t.Fatal("test mode should not sleep")
		}
	})
}
