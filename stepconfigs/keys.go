package stepconfigs

import (
	"github.com/reusee/stepper/configs"
)

// KeyBindings maps a key, as typed, to a command name
type KeyBindings map[string]string

const (
	CommandTogglePause  = "toggle_pause"
	CommandIncreaseTick = "increase_tick"
	CommandDecreaseTick = "decrease_tick"
)

var DefaultKeys = map[string][]string{
	CommandTogglePause:  {" "},
	CommandIncreaseTick: {"+", "="},
	CommandDecreaseTick: {"-", "_"},
}

func (Module) KeyBindings(
	loader configs.Loader,
) KeyBindings {
	ret := make(KeyBindings)
	for command, keys := range DefaultKeys {
		if configured, ok := configs.Lookup[[]string](loader, "keys."+command); ok {
			keys = configured
		}
		for _, key := range keys {
			ret[key] = command
		}
	}
	return ret
}
