package tracers

import "testing"

func TestStepDedup(t *testing.T) {
	var d StepDedup
	if d.Seen("", 0) {
		t.Fatal("empty dedup should not match")
	}
	d.Mark("a", 1)
	if !d.Seen("a", 1) {
		t.Fatal()
	}
	if d.Seen("a", 2) || d.Seen("b", 1) {
		t.Fatal()
	}
}

func TestModuleTracker(t *testing.T) {
	var m ModuleTracker
	if !m.Changed("a") {
		t.Fatal()
	}
	m.Announced("a")
	if m.Changed("a") {
		t.Fatal()
	}
	if !m.Changed("b") {
		t.Fatal()
	}
	if m.Current() != "a" {
		t.Fatal()
	}
}

func TestEventKindString(t *testing.T) {
	if EventCall.String() != "call" || EventException.String() != "exception" {
		t.Fatal()
	}
	if EventKind(42).String() != "EventKind(42)" {
		t.Fatal()
	}
}
