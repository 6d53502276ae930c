package modes

import (
	"os"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

// ModeEnv selects the mode of a binary started with FromEnv
const ModeEnv = "STEPPER_MODE"

type ModuleForProduction struct {
	dscope.Module
	mode Mode
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{
		mode: ModeProduction,
	}
}

// FromEnv is ForProduction unless ModeEnv asks for development
func FromEnv() ModuleForProduction {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(ModeEnv))) {
	case "dev", "development":
		return ModuleForProduction{
			mode: ModeDevelopment,
		}
	}
	return ForProduction()
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (m ModuleForProduction) Mode() Mode {
	if m.mode == 0 {
		return ModeProduction
	}
	return m.mode
}
