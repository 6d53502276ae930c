package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs the leading commands in args and returns what follows them.
// Errors print usage and exit the process.
func Execute(args []string) []string {
	rest, err := GlobalExecutor.ExecutePrefix(args)
	if err != nil {
		fmt.Fprintln(GlobalExecutor.Output, err)
		GlobalExecutor.PrintUsage()
		os.Exit(2)
	}
	return rest
}
