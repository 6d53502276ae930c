package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/reusee/stepper/scripts"
)

func TestReport(t *testing.T) {
	color.NoColor = true

	buf := new(bytes.Buffer)
	report(buf, nil)
	if buf.Len() != 0 {
		t.Fatal()
	}

	report(buf, &scripts.SetupError{
		Path: "foo.star",
		Err:  os.ErrNotExist,
	})
	if got := buf.String(); got != `cannot run file "foo.star": file does not exist`+"\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	report(buf, errors.Join(scripts.ErrAborted, context.Canceled))
	if got := buf.String(); got != "aborted\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	report(buf, errors.New("foo"))
	if got := buf.String(); !strings.Contains(got, "foo") {
		t.Fatalf("got %q", got)
	}
}

func TestExecute(t *testing.T) {
	listened := false
	watched := false
	err := execute(
		context.Background(),
		scripts.Target{Path: "foo.star"},
		func(ctx context.Context, target scripts.Target) error {
			if target.Path != "foo.star" {
				t.Fatalf("got %v", target.Path)
			}
			return nil
		},
		func(ctx context.Context, abort func()) error {
			<-ctx.Done()
			listened = true
			return nil
		},
		func(ctx context.Context) error {
			<-ctx.Done()
			watched = true
			return nil
		},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	if !listened || !watched {
		t.Fatal("listeners not stopped")
	}
}

func TestExecuteAbortByKey(t *testing.T) {
	err := execute(
		context.Background(),
		scripts.Target{Path: "foo.star"},
		func(ctx context.Context, target scripts.Target) error {
			<-ctx.Done()
			return errors.Join(scripts.ErrAborted, ctx.Err())
		},
		func(ctx context.Context, abort func()) error {
			abort()
			return nil
		},
		func(ctx context.Context) error {
			return nil
		},
		nil,
	)
	if scripts.ExitCode(err) != scripts.ExitAborted {
		t.Fatalf("got %v", err)
	}
}
