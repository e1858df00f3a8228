//go:build !windows

package sigread

import (
	"os"

	"golang.org/x/sys/unix"
)

// lookupSignal resolves a "SIG"-prefixed upper-case name using the
// platform's signal table.
func lookupSignal(name string) (os.Signal, bool) {
	sig := unix.SignalNum(name)
	if sig == 0 {
		return nil, false
	}
	return sig, true
}

// catchable reports whether a handler can be installed for sig.
func catchable(sig os.Signal) bool {
	return sig != unix.SIGKILL && sig != unix.SIGSTOP
}
