//go:build !windows

package sigread

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Pollable returns a duplicate of f that is registered with the runtime
// poller, so a read blocked on a terminal or pipe can be aborted with
// SetReadDeadline. The returned restore func puts the descriptor back into
// its original blocking mode and closes the duplicate. It must run before
// exit: O_NONBLOCK is shared with every process holding the same open file,
// including the parent shell.
//
// restore only runs on a normal return. If the process is killed by a
// signal it does not handle (SIGTERM or SIGQUIT while the read is blocked,
// for instance) a terminal on stdin is left non-blocking. Callers that
// care should register those signals too and return normally.
//
// On error f itself is returned together with a no-op restore.
func Pollable(f *os.File) (*os.File, func(), error) {
	noop := func() {}

	sc, err := f.SyscallConn()
	if err != nil {
		return f, noop, fmt.Errorf("raw conn: %w", err)
	}
	var fd int
	var dupErr error
	if err := sc.Control(func(raw uintptr) {
		fd, dupErr = unix.Dup(int(raw))
	}); err != nil {
		return f, noop, fmt.Errorf("control: %w", err)
	}
	if dupErr != nil {
		return f, noop, fmt.Errorf("dup %s: %w", f.Name(), dupErr)
	}

	wasNonblock, err := isNonblock(fd)
	if err != nil {
		unix.Close(fd)
		return f, noop, fmt.Errorf("query nonblock: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return f, noop, fmt.Errorf("set nonblock: %w", err)
	}

	// os.NewFile registers a non-blocking descriptor with the poller when the
	// file type supports it. Regular files are never pollable, but their
	// reads do not block either.
	pf := os.NewFile(uintptr(fd), f.Name())
	restore := func() {
		_ = unix.SetNonblock(fd, wasNonblock)
		pf.Close()
	}
	return pf, restore, nil
}

// isNonblock reports whether O_NONBLOCK is set on the open file behind fd.
func isNonblock(fd int) (bool, error) {
	fl, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return false, err
	}
	return fl&unix.O_NONBLOCK != 0, nil
}
