package config

import (
	_ "embed"
)

// defaultConfig holds the embedded default configuration shipped with the
// binary. It is always loaded first; a project-local .packup.toml is layered
// on top.
//
//go:embed packup.toml
var defaultConfig []byte
