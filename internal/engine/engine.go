// Package engine defines the interface this server consumes from the
// Jets of Time randomizer. The randomization algorithm, game-data
// modeling, and binary ROM patching all live in the external engine;
// this package only declares the settings/config schema exchanged with
// it and the operations the web layer invokes.
package engine

import (
	"context"
	"io"
)

// Randomizer is the consumed surface of the external engine.
type Randomizer interface {
	// GenerateConfig resolves settings into a generated seed's full
	// config document.
	GenerateConfig(ctx context.Context, settings *Settings) (*Config, error)

	// GenerateROM applies a previously generated config to the given
	// vanilla ROM bytes and returns the patched ROM.
	GenerateROM(ctx context.Context, settings *Settings, config *Config, rom []byte) ([]byte, error)

	// WriteSpoilerLog writes the full text spoiler log for a seed.
	WriteSpoilerLog(ctx context.Context, w io.Writer, settings *Settings, config *Config) error

	// WriteJSONSpoilerLog writes the machine-readable spoiler log.
	WriteJSONSpoilerLog(ctx context.Context, w io.Writer, settings *Settings, config *Config) error

	// WriteSettingsSpoilers writes the settings-only summary used on
	// share pages.
	WriteSettingsSpoilers(ctx context.Context, w io.Writer, settings *Settings) error
}
