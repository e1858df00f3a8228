// Package paths centralizes file and directory names used by sigread.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Data directory file names.
const (
	ConfigFile = "config.toml"
	LogFile    = "sigread.log"
)

const (
	BinaryName = "sigread"
	DataDirRel = ".sigread" // relative to $HOME
)

// ///////////////////////////////////////////////
// DataDir
// ///////////////////////////////////////////////

// DataDir provides path construction methods rooted at a data directory.
type DataDir struct {
	Root string
}

// Config returns the full path to the config file.
func (d DataDir) Config() string { return filepath.Join(d.Root, ConfigFile) }

// Log returns the full path to the default log file.
func (d DataDir) Log() string { return filepath.Join(d.Root, LogFile) }

// Resolve returns p unchanged when it is absolute and joined onto Root
// otherwise. An empty p resolves to the empty string.
func (d DataDir) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.Root, p)
}
