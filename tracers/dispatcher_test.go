package tracers

import (
	"context"
	"errors"
	"testing"
)

type testSources map[string][]string

func (s testSources) Lines(file string) ([]string, bool) {
	lines, ok := s[file]
	return lines, ok
}

func (s testSources) Own(file string) bool {
	return file == "/tracer/prelude.star"
}

type testPacer struct {
	sleeps int
	waits  int
}

func (p *testPacer) WaitWhilePaused(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func (p *testPacer) Sleep(ctx context.Context) error {
	p.sleeps++
	return ctx.Err()
}

type testVars struct{}

func (testVars) Locals() []Binding {
	return []Binding{{Name: "x", Value: str("1")}}
}

func (testVars) Globals() []Binding {
	return []Binding{{Name: "g", Value: str("2")}}
}

func newTestDispatcher() (*Dispatcher, *Recorder, *testPacer) {
	recorder := new(Recorder)
	pacer := new(testPacer)
	return &Dispatcher{
		Ignore: NewIgnoreSpec([]string{"helpers"}, []string{"/lib"}, nil),
		Display: recorder,
		Pacer:   pacer,
		Sources: testSources{
			"/src/main.star":       {"a = 1", "b = 2", "c = 3"},
			"/src/other.star":      {"def f():", "    return 1"},
			"/src/helpers.star":    {"def h():", "    return 1"},
			"/lib/deep.star":       {"def d():", "    return 1"},
			"/tracer/prelude.star": {"def sum(xs):", "    pass"},
		},
		MaxVars: 10,
		Dir:     "/src",
	}, recorder, pacer
}

func frameAt(file string, module string, line int) *Frame {
	return &Frame{
		File:     file,
		Module:   module,
		Line:     line,
		Function: "<toplevel>",
		Vars:     testVars{},
	}
}

func TestDedup(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	ctx := context.Background()
	frame := frameAt("/src/main.star", "main", 1)
	fn, err := d.OnCall(ctx, frame)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []int{1, 1, 2, 2, 2, 1} {
		frame.Line = line
		if err := fn(ctx, frame); err != nil {
			t.Fatal(err)
		}
	}
	lines := recorder.Lines()
	if len(lines) != 3 || lines[0] != 1 || lines[1] != 2 || lines[2] != 1 {
		t.Fatalf("got %v", lines)
	}
	if n := recorder.Count("panel"); n != 3 {
		t.Fatalf("got %v", n)
	}
}

func TestSingleModuleAnnouncement(t *testing.T) {
	d, recorder, pacer := newTestDispatcher()
	ctx := context.Background()
	for range 3 {
		fn, err := d.OnCall(ctx, frameAt("/src/main.star", "main", 1))
		if err != nil {
			t.Fatal(err)
		}
		if fn == nil {
			t.Fatal("should trace")
		}
	}
	if n := recorder.Count("banner"); n != 1 {
		t.Fatalf("got %v", n)
	}
	if pacer.sleeps != 1 {
		t.Fatalf("got %v", pacer.sleeps)
	}

	// leave and come back
	if _, err := d.OnCall(ctx, frameAt("/src/other.star", "other", 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := d.OnCall(ctx, frameAt("/src/main.star", "main", 1)); err != nil {
		t.Fatal(err)
	}
	entries := recorder.Entries()
	want := []string{"banner main.star", "banner other.star", "banner main.star"}
	if len(entries) != len(want) {
		t.Fatalf("got %v", entries)
	}
	for i, entry := range want {
		if entries[i] != entry {
			t.Fatalf("got %v", entries)
		}
	}
}

func TestIgnoredNeverDisplayed(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	ctx := context.Background()

	var parent *Frame
	for depth := range 10 {
		for _, c := range []struct{ file, module string }{
			{"/src/helpers.star", "helpers"},
			{"/lib/deep.star", "deep"},
			{"/tracer/prelude.star", "stdlib.prelude"},
			{"<builtin>", ""},
			{"/src/main.star", ""},
		} {
			frame := frameAt(c.file, c.module, 2)
			frame.Depth = depth
			frame.Parent = parent
			fn, err := d.OnCall(ctx, frame)
			if err != nil {
				t.Fatal(err)
			}
			if fn != nil {
				t.Fatalf("%s should be ignored", c.file)
			}
			parent = frame
		}
	}
	if entries := recorder.Entries(); len(entries) != 0 {
		t.Fatalf("got %v", entries)
	}
}

func TestPanel(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	ctx := context.Background()
	frame := frameAt("/src/main.star", "main", 2)
	fn, err := d.OnCall(ctx, frame)
	if err != nil {
		t.Fatal(err)
	}
	if err := fn(ctx, frame); err != nil {
		t.Fatal(err)
	}
	panels := recorder.Panels()
	if len(panels) != 1 {
		t.Fatalf("got %v", panels)
	}
	if panels[0].Locals[0] != (Variable{Name: "x", Value: "1"}) {
		t.Fatalf("got %v", panels[0])
	}
	if panels[0].Globals[0] != (Variable{Name: "g", Value: "2"}) {
		t.Fatalf("got %v", panels[0])
	}
	windows := recorder.Windows()
	if windows[0].Path != "main.star" || len(windows[0].Lines) != 3 {
		t.Fatalf("got %+v", windows[0])
	}
}

type failingDisplay struct {
	Recorder
}

var errDisplay = errors.New("display")

func (f *failingDisplay) SourceWindow(Window) error {
	return errDisplay
}

func TestDisplayErrorDoesNotMark(t *testing.T) {
	d, _, pacer := newTestDispatcher()
	display := new(failingDisplay)
	d.Display = display
	ctx := context.Background()
	frame := frameAt("/src/main.star", "main", 1)
	fn, err := d.OnCall(ctx, frame)
	if err != nil {
		t.Fatal(err)
	}
	sleeps := pacer.sleeps
	if err := fn(ctx, frame); !errors.Is(err, errDisplay) {
		t.Fatalf("got %v", err)
	}
	if d.dedup.Seen(frame.File, frame.Line) {
		t.Fatal("should not mark")
	}
	if pacer.sleeps != sleeps {
		t.Fatal("should not sleep")
	}
}

func TestCanceled(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.OnCall(ctx, frameAt("/src/main.star", "main", 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if entries := recorder.Entries(); len(entries) != 0 {
		t.Fatalf("got %v", entries)
	}
}

func TestObserve(t *testing.T) {
	d, recorder, _ := newTestDispatcher()
	d.Observe(Event{Kind: EventReturn, Frame: frameAt("/src/main.star", "main", 1)})
	d.Observe(Event{Kind: EventException, Frame: frameAt("/src/main.star", "main", 1), Err: errDisplay})
	d.Observe(Event{Kind: EventReturn})
	if entries := recorder.Entries(); len(entries) != 0 {
		t.Fatalf("got %v", entries)
	}
}
