package logs

import (
	"context"
	"errors"
)

// SpanError carries the span an error happened in.
// The message is the wrapped error's, so diagnostics stay readable.
type SpanError struct {
	Span Span
	Err  error
}

func (e *SpanError) Error() string {
	return e.Err.Error()
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

func WrapSpan(ctx context.Context, err error) error {
	v := ctx.Value(SpanKey)
	if v == nil || err == nil {
		return err
	}
	var spanErr *SpanError
	if errors.As(err, &spanErr) {
		// innermost span wins
		return err
	}
	return &SpanError{
		Span: v.(Span),
		Err:  err,
	}
}

// ErrorSpan returns the span recorded by WrapSpan
func ErrorSpan(err error) (Span, bool) {
	var spanErr *SpanError
	if errors.As(err, &spanErr) {
		return spanErr.Span, true
	}
	return "", false
}
