// Package sigread provides embedded assets for the sigread command.
//
// The root package exists solely to embed config.default.toml via
// [DefaultConfigTOML], which `sigread --write-config` copies into the data
// directory.
package sigread

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
