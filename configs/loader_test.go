package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
tick?: number & >0
max_vars?: int & >0
ignore_dirs?: [...string]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var tick float64
	err := loader.AssignFirst("tick", &tick)
	if err != nil {
		t.Fatal(err)
	}
	if tick != 1.5 {
		t.Fatalf("got %v", tick)
	}

	var dirs []string
	err = loader.AssignFirst("ignore_dirs", &dirs)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", dirs); str != "[/usr/lib/python vendor]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("max_vars", &tick)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"test.cue",
		"test2.cue",
	}, testSchema)

	var ticks []float64
	for value, err := range loader.IterCueValues("tick") {
		if err != nil {
			t.Fatal(err)
		}
		var f float64
		if err := value.Decode(&f); err != nil {
			t.Fatal(err)
		}
		ticks = append(ticks, f)
	}
	if str := fmt.Sprintf("%v", ticks); str != "[1.5 0.5]" {
		t.Fatalf("got %q", str)
	}

	var dirs []string
	for list := range All[[]string](loader, "ignore_dirs") {
		dirs = append(dirs, list...)
	}
	if str := fmt.Sprintf("%v", dirs); str != "[/usr/lib/python vendor third_party]" {
		t.Fatalf("got %q", str)
	}

}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	if err := loader.Check(); err == nil {
		t.Fatal("should error")
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"no-such-file.cue"}, testSchema)
	if err := loader.Check(); err == nil {
		t.Fatal("should error")
	}
	if paths := loader.Paths(); len(paths) != 1 || paths[0] != "no-such-file.cue" {
		t.Fatalf("got %v", paths)
	}
}
