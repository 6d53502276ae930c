package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestHandlerWithAttrs(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
		logger.With("target", "search.star").InfoContext(ctx, "run")
		line := buf.String()
		if !strings.Contains(line, "target=search.star") {
			t.Fatalf("got %v", line)
		}
		if !strings.Contains(line, "logs.span=foo") {
			t.Fatalf("got %v", line)
		}
	})
}

func TestWrapSpan(t *testing.T) {
	base := errors.New("foo")
	err := WrapSpan(context.Background(), base)
	if err != base {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("bar"))
	err = WrapSpan(ctx, base)
	if !errors.Is(err, base) {
		t.Fatal()
	}
	if err.Error() != "foo" {
		t.Fatalf("got %v", err)
	}
	if span, ok := ErrorSpan(err); !ok || span != "bar" {
		t.Fatalf("got %v", span)
	}

	// outer spans do not replace the inner one
	outer := context.WithValue(context.Background(), SpanKey, Span("baz"))
	err = WrapSpan(outer, err)
	if span, _ := ErrorSpan(err); span != "bar" {
		t.Fatalf("got %v", span)
	}

	if WrapSpan(ctx, nil) != nil {
		t.Fatal()
	}
}

func TestToJournalKey(t *testing.T) {
	if key := toJournalKey("logs.span"); key != "LOGS_SPAN" {
		t.Fatalf("got %v", key)
	}
}
