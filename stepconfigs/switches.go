package stepconfigs

import (
	"os"

	"github.com/reusee/stepper/cmds"
	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/vars"
)

// HotkeysEnabled reports whether the key listener should run
type HotkeysEnabled bool

// WatchEnabled reports whether config files are watched for tick changes
type WatchEnabled bool

// NoHotkeysEnv disables hotkeys when set to a true value, and enables them over the config when false
const NoHotkeysEnv = "STEPPER_NO_HOTKEYS"

var (
	noHotkeysFlag = cmds.Switch("-no-hotkeys")
	noWatchFlag   = cmds.Switch("-no-watch")
)

func (Module) HotkeysEnabled(
	loader configs.Loader,
) HotkeysEnabled {
	if *noHotkeysFlag {
		return false
	}
	if disabled, ok := vars.ParseBool(os.Getenv(NoHotkeysEnv)); ok {
		return HotkeysEnabled(!disabled)
	}
	if enabled, ok := configs.Lookup[bool](loader, "hotkeys"); ok {
		return HotkeysEnabled(enabled)
	}
	return true
}

func (Module) WatchEnabled(
	loader configs.Loader,
) WatchEnabled {
	if *noWatchFlag {
		return false
	}
	if enabled, ok := configs.Lookup[bool](loader, "watch"); ok {
		return WatchEnabled(enabled)
	}
	return true
}
