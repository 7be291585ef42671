// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package xlog is a thin helper over "github.com/op/go-logging" that keeps
// the setup boilerplate out of every file that wants a logger, the way
// FrankyGo's logging package wraps the same library.
package xlog

import (
	"os"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("xs128recover")

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-10.10s} %{level:-7.7s} %{message}`,
	)
)

func init() {
	SetLevel(logging.WARNING)
}

// Get returns the package-wide logger.
func Get() *logging.Logger { return logger }

// SetLevel reconfigures the logger's verbosity; callers typically invoke
// this once at startup from config.
func SetLevel(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logger.SetBackend(leveled)
}

// ParseLevel maps a config string ("debug", "info", "warning", "error") to
// a logging.Level, defaulting to WARNING for anything unrecognized.
func ParseLevel(name string) logging.Level {
	level, err := logging.LogLevel(name)
	if err != nil {
		return logging.WARNING
	}
	return level
}
