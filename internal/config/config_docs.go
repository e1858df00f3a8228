package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "read.buffer_size")
// to their [FieldDoc] entries.
var ConfigDocs = map[string]FieldDoc{
	"version": {
		Comment: "Config schema version, do not edit.",
	},

	// ── Read ─────────────────────────────────────────────────────
	"read": {
		Comment: "One blocking read from standard input, echoed to standard output.",
	},
	"read.buffer_size": {
		Comment: "Maximum number of bytes read (and echoed). Longer input is truncated.",
	},
	"read.signal": {
		Comment: "Signal that interrupts the read. SIGKILL and SIGSTOP cannot be caught.",
		Alternatives: []string{
			`signal = "SIGTERM"`,
			`signal = "SIGQUIT"`,
		},
	},
	"read.message": {
		Comment: "Line printed to standard output each time the signal arrives.",
	},

	// ── Log ──────────────────────────────────────────────────────
	"log.level": {
		Alternatives: []string{
			`level = "debug"`,
			`level = "trace"`,
		},
	},
	"log.file": {
		Comment: "Log file, relative to the data directory. Empty disables logging.",
		Alternatives: []string{
			`file = "sigread.log"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Rotate the log file after this many megabytes.",
	},
}
