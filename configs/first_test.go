package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"test2.cue", "test.cue"}, testSchema)

	tick := First[float64](loader, "tick")
	if tick != 0.5 {
		t.Fatalf("got %v", tick)
	}

	maxVars, ok := Lookup[int](loader, "max_vars")
	if !ok {
		t.Fatal("should found")
	}
	if maxVars != 8 {
		t.Fatalf("got %v", maxVars)
	}

}

func TestLookupMissing(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)
	_, ok := Lookup[int](loader, "max_vars")
	if ok {
		t.Fatal("should not found")
	}
	if n := First[int](loader, "max_vars"); n != 0 {
		t.Fatalf("got %v", n)
	}
}
