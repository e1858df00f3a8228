// Package sigread performs one interruptible read from a stream and echoes
// what it read.
//
// A signal handler is installed with [Registrar.Register]. Each delivery of
// the signal runs the [Handler] to completion and then posts a notification
// on [Registration.Interrupted]. [ReadOnce] watches that channel while the
// read is pending, aborts the read when a notification arrives, and reports
// [Interrupted]. The handler's output is therefore always written before
// ReadOnce returns.
package sigread

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
)

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

var (
	// ErrRegister wraps every failure to install a signal handler.
	ErrRegister = errors.New("register signal handler")
	// ErrUnknownSignal reports a signal name that does not resolve.
	ErrUnknownSignal = errors.New("unknown signal")
	// ErrUncatchable reports a signal whose disposition cannot be changed.
	ErrUncatchable = errors.New("signal cannot be caught")
)

// ParseSignal resolves a signal name such as "SIGINT", "int" or "interrupt".
// Matching is case-insensitive and the "SIG" prefix is optional.
func ParseSignal(name string) (os.Signal, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownSignal)
	}
	if n == "INTERRUPT" {
		return os.Interrupt, nil
	}
	if !strings.HasPrefix(n, "SIG") {
		n = "SIG" + n
	}
	sig, ok := lookupSignal(n)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}
	return sig, nil
}

// ///////////////////////////////////////////////
// Handler
// ///////////////////////////////////////////////

// Handler reacts to a delivered signal.
type Handler interface {
	Handle(sig os.Signal)
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(sig os.Signal)

// Handle calls f(sig).
func (f HandlerFunc) Handle(sig os.Signal) { f(sig) }

// DefaultMessage is the line [MessageHandler] prints when Message is empty.
const DefaultMessage = "interrupt handled"

// MessageHandler prints a fixed line for every delivery. It keeps no state
// and does not influence the read.
type MessageHandler struct {
	W       io.Writer
	Message string
}

// Handle writes the message followed by a newline.
func (h *MessageHandler) Handle(os.Signal) {
	msg := h.Message
	if msg == "" {
		msg = DefaultMessage
	}
	fmt.Fprintln(h.W, msg)
}

// ///////////////////////////////////////////////
// Registration
// ///////////////////////////////////////////////

// Registrar installs signal handlers. The zero value uses [signal.Notify]
// and [signal.Stop]; tests substitute their own to deliver signals without
// touching the process.
type Registrar struct {
	Notify func(c chan<- os.Signal, sig ...os.Signal)
	Stop   func(c chan<- os.Signal)
	Logger *slog.Logger
}

// Registration is an installed handler. It stays active until Stop.
type Registration struct {
	sig         os.Signal
	handler     Handler
	log         *slog.Logger
	stop        func(c chan<- os.Signal)
	signals     chan os.Signal
	interrupted chan os.Signal
	done        chan struct{}
	finished    chan struct{}
	stopOnce    sync.Once
}

// Register installs h for sig. It fails with an error wrapping
// [ErrRegister] when sig is nil or cannot be caught.
func (r Registrar) Register(sig os.Signal, h Handler) (*Registration, error) {
	if sig == nil {
		return nil, fmt.Errorf("%w: %w", ErrRegister, ErrUnknownSignal)
	}
	if !catchable(sig) {
		return nil, fmt.Errorf("%w: %v: %w", ErrRegister, sig, ErrUncatchable)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: nil handler", ErrRegister)
	}

	notify, stop, log := r.Notify, r.Stop, r.Logger
	if notify == nil {
		notify = signal.Notify
	}
	if stop == nil {
		stop = signal.Stop
	}
	if log == nil {
		log = slog.Default()
	}

	reg := &Registration{
		sig:         sig,
		handler:     h,
		log:         log,
		stop:        stop,
		signals:     make(chan os.Signal, 1),
		interrupted: make(chan os.Signal, 1),
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
	notify(reg.signals, sig)
	go reg.dispatch()

	log.Debug("signal handler installed", "signal", sig)
	return reg, nil
}

// dispatch runs the handler for every delivery, then posts a notification.
// A notification that nobody has consumed yet absorbs later ones.
func (r *Registration) dispatch() {
	defer close(r.finished)
	for {
		select {
		case sig := <-r.signals:
			r.handler.Handle(sig)
			r.log.Debug("signal handled", "signal", sig)
			select {
			case r.interrupted <- sig:
			default:
			}
		case <-r.done:
			return
		}
	}
}

// Signal returns the registered signal.
func (r *Registration) Signal() os.Signal { return r.sig }

// Interrupted receives one value per handled delivery that has not yet been
// consumed.
func (r *Registration) Interrupted() <-chan os.Signal { return r.interrupted }

// Stop restores the default disposition and waits for an in-flight handler
// call to finish. It is safe to call more than once.
func (r *Registration) Stop() {
	r.stopOnce.Do(func() {
		r.stop(r.signals)
		close(r.done)
		<-r.finished
	})
}
