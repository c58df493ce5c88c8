// SPDX-License-Identifier: MIT

// Package logging builds the zerolog loggers used across lazymat.
// Library code never logs to a global; every component receives a
// zerolog.Logger (Nop by default) and derives a child with Component.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to w at the named level
// ("trace", "debug", "info", "warn", "error", "disabled", ...).
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("lib", "lazymat").Logger(), nil
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger { return zerolog.Nop() }

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
