package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stepper/hotkeys"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/scripts"
	"github.com/reusee/stepper/stepconfigs"
	"github.com/reusee/stepper/terminals"
	"github.com/reusee/stepper/tracers"
	"github.com/reusee/stepper/watches"
)

type Module struct {
	dscope.Module
	Scripts     scripts.Module
	Tracers     tracers.Module
	Playbacks   playbacks.Module
	Terminals   terminals.Module
	StepConfigs stepconfigs.Module
	Hotkeys     hotkeys.Module
	Watches     watches.Module
	Logs        logs.Module
}
