package playbacks

import (
	"fmt"
	"time"
)

// State is an immutable snapshot of the pacing settings
type State struct {
	Tick   time.Duration
	Paused bool
}

func (s State) String() string {
	if s.Paused {
		return fmt.Sprintf("paused, tick %v", s.Tick)
	}
	return fmt.Sprintf("running, tick %v", s.Tick)
}
