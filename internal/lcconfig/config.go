// Package lcconfig loads and hot-reloads linecraft's runtime configuration.
//
// The load-defaults-then-unmarshal-over-them pattern, and treating a missing
// file as "use defaults" rather than an error, are grounded on the teacher's
// internal/config.LoadServerConfig.
package lcconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/stlalpha/linecraft/internal/clog"
)

// CloseMode selects the behavior of a non-blocking stream when it is
// accessed after Close. See spec.md §3 and §4.2.
type CloseMode string

const (
	CloseStrict  CloseMode = "strict"
	CloseWarn    CloseMode = "warn"
	CloseLenient CloseMode = "lenient"
)

// Valid reports whether m is one of the three recognized close modes.
func (m CloseMode) Valid() bool {
	switch m {
	case CloseStrict, CloseWarn, CloseLenient:
		return true
	}
	return false
}

// Config is the runtime configuration for the pump, the renderer, and the
// description engine's status bar.
type Config struct {
	// CloseMode selects strict/warn/lenient close-mode policy for every
	// ioqueue stream and pump. Corresponds to the "close-mode" key.
	CloseMode CloseMode `json:"close-mode"`

	// StrictClose is the legacy boolean equivalent: true maps to "strict",
	// false maps to "warn". Only consulted when CloseMode is empty.
	StrictClose *bool `json:"strict-close,omitempty"`

	// DisableAlternateCharset suppresses alt-charset box-drawing
	// substitution in the renderer's output.
	DisableAlternateCharset bool `json:"disable-alternate-charset"`

	// StatusBarHeight is H in the description engine's layout algorithm.
	StatusBarHeight int `json:"status-bar-height"`

	// PumpCapacity is the fixed capacity of a pump's backing ring, in
	// characters. Spec.md §3 gives 4096 as the typical value.
	PumpCapacity int `json:"pump-capacity"`

	// BackgroundJobRetention bounds how long a finished background
	// pipeline's record is kept before the janitor reaps it.
	BackgroundJobRetention Duration `json:"background-job-retention"`
}

// Duration marshals as a Go duration string ("5m", "30s") in JSON, the way
// the teacher's config package encodes human-readable time fields.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("lcconfig: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file is present, per spec.md
// §9's Open Question (i): this port picks strict as the single close-mode
// default for both byte and char stream families, rather than replicating
// the source's byte-strict/char-warn inconsistency.
func Default() Config {
	return Config{
		CloseMode:               CloseStrict,
		DisableAlternateCharset: false,
		StatusBarHeight:         3,
		PumpCapacity:            4096,
		BackgroundJobRetention:  Duration(5 * time.Minute),
	}
}

// Load reads a JSON configuration file at path, overlaying it on Default().
// A missing file is not an error — it yields the defaults, mirroring the
// teacher's LoadServerConfig behavior for config.json.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			clog.Warn("lcconfig: %s not found, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("lcconfig: read %s: %w", path, err)
	}

	// Cleared so that a file without a close-mode key leaves it empty and the
	// legacy strict-close key can take effect.
	cfg.CloseMode = ""
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("lcconfig: parse %s: %w", path, err)
	}
	if cfg.CloseMode == "" && cfg.StrictClose == nil {
		cfg.CloseMode = Default().CloseMode
	}

	resolveCloseMode(&cfg)
	return cfg, nil
}

// resolveCloseMode applies the legacy strict-close bool when CloseMode was
// left unset, and falls back to Default()'s close mode if an unrecognized
// value was given.
func resolveCloseMode(cfg *Config) {
	if cfg.CloseMode == "" && cfg.StrictClose != nil {
		if *cfg.StrictClose {
			cfg.CloseMode = CloseStrict
		} else {
			cfg.CloseMode = CloseWarn
		}
		return
	}
	if !cfg.CloseMode.Valid() {
		clog.Warn("lcconfig: invalid close-mode %q, falling back to strict", cfg.CloseMode)
		cfg.CloseMode = CloseStrict
	}
}
