package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/tracers"
)

type Module struct {
	dscope.Module
}

func (Module) Run(
	newDispatcher tracers.NewDispatcher,
	display tracers.Display,
	sleeper playbacks.Sleeper,
	logger logs.Logger,
	newSpan logs.NewSpan,
) Run {
	r := &runner{
		newDispatcher: newDispatcher,
		display:       display,
		sleeper:       sleeper,
		logger:        logger,
		newSpan:       newSpan,
	}
	return r.run
}
