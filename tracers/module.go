package tracers

import (
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/stepconfigs"
)

type Module struct {
	dscope.Module
}

func (Module) IgnoreSpec(
	modules stepconfigs.IgnoreModules,
	dirs stepconfigs.IgnoreDirs,
) IgnoreSpec {
	return NewIgnoreSpec(
		modules,
		append([]string{"$stdlib"}, dirs...),
		map[string]string{
			"stdlib": StdlibRoot,
			"prefix": StdlibRoot,
		},
	)
}

type NewDispatcher func(sources Sources) *Dispatcher

func (Module) NewDispatcher(
	ignore IgnoreSpec,
	display Display,
	controller *playbacks.Controller,
	maxVars stepconfigs.MaxVars,
	logger logs.Logger,
) NewDispatcher {
	return func(sources Sources) *Dispatcher {
		dir, _ := os.Getwd()
		return &Dispatcher{
			Ignore:  ignore,
			Display: display,
			Pacer:   controller,
			Sources: sources,
			MaxVars: int(maxVars),
			Dir:     dir,
			Logger:  logger,
		}
	}
}
