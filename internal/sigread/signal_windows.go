//go:build windows

package sigread

import "os"

// lookupSignal resolves the only two signals Windows delivers to Go
// programs. The runtime maps CTRL_C_EVENT and CTRL_BREAK_EVENT to
// os.Interrupt.
func lookupSignal(name string) (os.Signal, bool) {
	switch name {
	case "SIGINT":
		return os.Interrupt, true
	case "SIGKILL":
		return os.Kill, true
	}
	return nil, false
}

// catchable reports whether a handler can be installed for sig.
func catchable(sig os.Signal) bool {
	return sig != os.Kill
}
