// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the recovery CLI's optional settings from a TOML
// file, falling back to defaults when the file is absent, the way
// FrankyGo's internal/config package does for its engine settings.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/coldbrewsec/xs128recover/internal/xlog"
)

// Settings holds the values read from a TOML config file.
type Settings struct {
	Engine   EngineSettings
	Recovery RecoverySettings
	Log      LogSettings
}

// EngineSettings picks the default JavaScript engine when none is given on
// the command line.
type EngineSettings struct {
	Default string `toml:"default"`
}

// RecoverySettings tunes the nullspace search.
type RecoverySettings struct {
	Workers int `toml:"workers"`
}

// LogSettings controls verbosity.
type LogSettings struct {
	Level string `toml:"level"`
}

// defaults mirrors the zero-config behavior: sequential V8 recovery at
// warning-level logging.
func defaults() Settings {
	return Settings{
		Engine:   EngineSettings{Default: "v8"},
		Recovery: RecoverySettings{Workers: 1},
		Log:      LogSettings{Level: "warning"},
	}
}

// Load reads path as TOML into Settings. A missing or unreadable file is
// not an error: Load logs it at info level and returns the defaults.
func Load(path string) Settings {
	settings := defaults()
	if path == "" {
		return settings
	}
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		xlog.Get().Infof("config file %q not used, falling back to defaults: %v", path, err)
		return defaults()
	}
	return settings
}

// Apply pushes the log level from settings into the package-wide logger.
func (s Settings) Apply() {
	xlog.SetLevel(xlog.ParseLevel(s.Log.Level))
}
