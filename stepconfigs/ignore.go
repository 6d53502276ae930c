package stepconfigs

import (
	"github.com/reusee/stepper/cmds"
	"github.com/reusee/stepper/configs"
)

// IgnoreModules holds comma separated lists of dotted module names
type IgnoreModules []string

// IgnoreDirs holds path-list separated lists of directories
type IgnoreDirs []string

var (
	ignoreModuleFlags = cmds.Collect[string]("-ignore-module")
	ignoreDirFlags    = cmds.Collect[string]("-ignore-dir")
)

func (Module) IgnoreModules(
	loader configs.Loader,
) (ret IgnoreModules) {
	for list := range configs.All[[]string](loader, "ignore_modules") {
		ret = append(ret, list...)
	}
	ret = append(ret, *ignoreModuleFlags...)
	return
}

func (Module) IgnoreDirs(
	loader configs.Loader,
) (ret IgnoreDirs) {
	for list := range configs.All[[]string](loader, "ignore_dirs") {
		ret = append(ret, list...)
	}
	ret = append(ret, *ignoreDirFlags...)
	return
}
