package sigread

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

// ///////////////////////////////////////////////
// Result
// ///////////////////////////////////////////////

// Outcome classifies how a read attempt ended.
type Outcome int

const (
	// Data means at least one byte was read.
	Data Outcome = iota
	// EOF means the stream ended before any byte was read.
	EOF
	// Interrupted means a signal notification arrived while the read was pending.
	Interrupted
	// Canceled means the context was done while the read was pending.
	Canceled
	// Failed means the read returned an error other than end of stream.
	Failed
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case Data:
		return "data"
	case EOF:
		return "eof"
	case Interrupted:
		return "interrupted"
	case Canceled:
		return "canceled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of [ReadOnce].
type Result struct {
	Outcome Outcome
	// N is the number of bytes placed in the buffer. Only meaningful for Data.
	N int
	// Signal is set for Interrupted.
	Signal os.Signal
	// Err is set for Canceled and Failed.
	Err error
}

// Count mirrors the return value of read(2): the byte count for Data, 0 at
// end of stream, and -1 otherwise.
func (r Result) Count() int {
	switch r.Outcome {
	case Data:
		return r.N
	case EOF:
		return 0
	default:
		return -1
	}
}

// classify maps the return values of io.Reader.Read to a Result. Bytes win
// over an accompanying error, as with a short read(2). A zero-byte read
// without error is treated as end of stream since there is no second attempt.
func classify(n int, err error) Result {
	switch {
	case n > 0:
		return Result{Outcome: Data, N: n}
	case err == nil, errors.Is(err, io.EOF):
		return Result{Outcome: EOF}
	default:
		return Result{Outcome: Failed, Err: err}
	}
}

// ///////////////////////////////////////////////
// ReadOnce
// ///////////////////////////////////////////////

// deadliner is implemented by sources whose pending Read can be aborted,
// such as pollable *os.File values.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// ReadOnce makes exactly one Read call on src into buf and never retries.
//
// If a value arrives on interrupted, or ctx is done, before the read
// completes, the pending read is aborted and Interrupted (or Canceled) is
// returned. Aborting requires src to support SetReadDeadline; otherwise the
// read is abandoned and may still write into buf after ReadOnce returns, so
// buf must not be reused in that case. A nil interrupted channel disables
// interruption.
func ReadOnce(ctx context.Context, src io.Reader, buf []byte, interrupted <-chan os.Signal) Result {
	done := make(chan Result, 1)
	go func() {
		n, err := src.Read(buf)
		done <- classify(n, err)
	}()

	select {
	case r := <-done:
		return r
	case sig := <-interrupted:
		abort(src, done)
		return Result{Outcome: Interrupted, Signal: sig}
	case <-ctx.Done():
		abort(src, done)
		return Result{Outcome: Canceled, Err: ctx.Err()}
	}
}

// abort forces a pending read on src to return and waits for it. Sources
// without deadline support are left to finish on their own.
func abort(src io.Reader, done <-chan Result) {
	d, ok := src.(deadliner)
	if !ok {
		return
	}
	if err := d.SetReadDeadline(time.Now()); err != nil {
		return
	}
	<-done
	_ = d.SetReadDeadline(time.Time{})
}

// ///////////////////////////////////////////////
// Echo
// ///////////////////////////////////////////////

// Echo writes buf[:r.N] to w with a single Write call when r.Count() is
// positive, and does nothing otherwise. A short write is returned as-is
// and not retried.
func Echo(w io.Writer, buf []byte, r Result) (int, error) {
	if r.Count() <= 0 {
		return 0, nil
	}
	return w.Write(buf[:r.N])
}
