package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModuleForProduction(t *testing.T) {
	dscope.New(new(ModuleForProduction)).Call(func(
		t *testing.T,
		mode Mode,
	) {
		if mode != ModeProduction {
			t.Fatal()
		}
	})
}

func TestFromEnv(t *testing.T) {
	for env, want := range map[string]Mode{
		"":             ModeProduction,
		"dev":          ModeDevelopment,
		" Development": ModeDevelopment,
		"foo":          ModeProduction,
	} {
		t.Setenv(ModeEnv, env)
		dscope.New(FromEnv()).Call(func(
			mode Mode,
		) {
			if mode != want {
				t.Fatalf("%q: got %v", env, mode)
			}
		})
	}
}
