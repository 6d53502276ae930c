package stepconfigs

import (
	"github.com/reusee/stepper/cmds"
	"github.com/reusee/stepper/configs"
)

const DefaultMaxVars = 16

// MaxVars is the number of local and of global bindings displayed per step
type MaxVars int

var maxVarsFlag int

func init() {
	cmds.Define("-max-vars", cmds.Func(func(n int) error {
		if n <= 0 {
			return errNotPositive
		}
		maxVarsFlag = n
		return nil
	}).Args("n").Desc("number of bindings shown per scope"))
}

func (Module) MaxVars(
	loader configs.Loader,
) MaxVars {
	if maxVarsFlag > 0 {
		return MaxVars(maxVarsFlag)
	}
	if n := configs.First[int](loader, "max_vars"); n > 0 {
		return MaxVars(n)
	}
	return DefaultMaxVars
}
