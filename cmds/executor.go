package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

type Executor struct {
	commands map[string]*Command
	Output   io.Writer
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
		Output:   os.Stderr,
	}

	usage := Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help")
	ret.Define("-h", usage)

	return ret
}

func (p *Executor) Define(name string, command *Command) {
	if _, ok := p.commands[name]; ok {
		panic(fmt.Errorf("duplicated command %s", name))
	}
	p.commands[name] = command
	for _, name := range command.Aliases {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

// Execute runs every argument as a command; unknown names are errors
func (p *Executor) Execute(args []string) error {
	_, err := p.execute(args, false)
	return err
}

// ExecutePrefix runs commands until "--" or the first argument that is neither a
// known command nor dash-prefixed, and returns the remaining arguments untouched.
func (p *Executor) ExecutePrefix(args []string) ([]string, error) {
	return p.execute(args, true)
}

func (p *Executor) execute(args []string, prefix bool) ([]string, error) {
	commands := p.commands
	for {
		if len(args) == 0 {
			return nil, nil
		}

		name := strings.TrimSpace(args[0])
		if prefix && name == "--" {
			return args[1:], nil
		}

		command, ok := commands[name]
		if !ok {
			if prefix && !strings.HasPrefix(name, "-") {
				return args, nil
			}
			return nil, fmt.Errorf("unknown command: %s", name)
		}
		args = args[1:]

		if command.Func.IsValid() {
			var callArgs []reflect.Value
			for i, max := 0, command.Func.Type().NumIn(); i < max; i++ {
				value, err := getArg(command.Func.Type().In(i), args)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				if len(args) > 0 {
					args = args[1:]
				}
				callArgs = append(callArgs, value)
			}
			rets := command.Func.Call(callArgs)
			if len(rets) > 0 && !rets[0].IsNil() {
				return nil, rets[0].Interface().(error)
			}
		}

		if len(command.Subs) > 0 {
			commands = maps.Clone(commands)
			for subname, cmd := range command.Subs {
				if _, ok := commands[subname]; ok {
					return nil, fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = cmd
			}
		}

	}
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func (p *Executor) PrintUsage() {
	byCommand := make(map[*Command][]string)
	for name, command := range p.commands {
		byCommand[command] = append(byCommand[command], name)
	}
	var lines []string
	for command, names := range byCommand {
		slices.Sort(names)
		lines = append(lines, usageLines(strings.Join(names, ", "), command, 0)...)
	}
	slices.Sort(lines)
	for _, line := range lines {
		fmt.Fprintln(p.Output, line)
	}
}

func usageLines(names string, command *Command, depth int) []string {
	if command == nil {
		return nil
	}
	head := strings.Repeat("  ", depth) + names
	for _, arg := range command.ArgNames {
		head += " <" + arg + ">"
	}
	if command.Description != "" {
		head += "\t" + command.Description
	}
	lines := []string{head}
	subNames := slices.Sorted(maps.Keys(command.Subs))
	for _, name := range subNames {
		lines = append(lines, usageLines(name, command.Subs[name], depth+1)...)
	}
	return lines
}

func getArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if len(args) == 0 {

		if t.Kind() == reflect.Pointer {
			// optional, use zero value
			return reflect.New(t.Elem()), nil
		}

		return ret, fmt.Errorf("expecting argument, got nothing")
	}

	if t.Kind() == reflect.Pointer {
		elemValue, err := getArg(t.Elem(), args)
		if err != nil {
			return ret, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elemValue)
		return ptr, nil
	}

	str := args[0]

	ret = reflect.New(t).Elem()

	switch t.Kind() {

	case reflect.Bool:
		v, err := parseBool(str)
		if err != nil {
			return ret, err
		}
		ret.SetBool(v)
		return ret, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
		return ret, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
		return ret, nil

	case reflect.String:
		ret.SetString(str)
		return ret, nil

	}

	return ret, fmt.Errorf("unsupported type: %v", t)
}

func parseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("convert %s to bool: unknown value", str)
}
