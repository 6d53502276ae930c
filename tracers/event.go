package tracers

import "fmt"

type EventKind uint8

const (
	EventCall EventKind = iota + 1
	EventLine
	EventReturn
	EventException
)

func (k EventKind) String() string {
	switch k {
	case EventCall:
		return "call"
	case EventLine:
		return "line"
	case EventReturn:
		return "return"
	case EventException:
		return "exception"
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

type Event struct {
	Kind  EventKind
	Frame *Frame
	// set for EventException
	Err error
}

// Frame is one active invocation in the target program.
// Parent links to the caller and is nil for the outermost frame.
type Frame struct {
	File     string
	Line     int
	Function string
	Module   string
	Depth    int
	Parent   *Frame
	Vars     Vars
}

// Vars reads the live bindings of a frame; only valid while the frame is active
type Vars interface {
	Locals() []Binding
	Globals() []Binding
}

type Binding struct {
	Name  string
	Value fmt.Stringer
}

type noVars struct{}

func (noVars) Locals() []Binding {
	return nil
}

func (noVars) Globals() []Binding {
	return nil
}

var NoVars Vars = noVars{}
