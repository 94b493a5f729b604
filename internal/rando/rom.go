package rando

import (
	"fmt"
	"os"

	apperrors "ctjot-server/internal/shared/errors"
)

// An unheadered Chrono Trigger ROM is exactly 4 MiB. Copier dumps
// carry an extra 512-byte header that has to be stripped before the
// engine sees the image.
const (
	romSize        = 4 * 1024 * 1024
	copierHeadSize = 512
)

// BaseROM reads the server's vanilla ROM. It is only used to seed
// config generation; the player's own upload is what actually gets
// patched for download.
func (a *Adapter) BaseROM() ([]byte, error) {
	rom, err := os.ReadFile(a.cfg.BaseROMPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read base ROM %s: %w", a.cfg.BaseROMPath, err)
	}

	normalized, err := NormalizeROM(rom)
	if err != nil {
		return nil, fmt.Errorf("base ROM %s: %w", a.cfg.BaseROMPath, err)
	}
	return normalized, nil
}

// NormalizeROM validates an uploaded ROM image and strips a copier
// header when present. Anything that is not a 4 MiB image (headered or
// not) is rejected.
func NormalizeROM(data []byte) ([]byte, error) {
	switch len(data) {
	case romSize:
		return data, nil
	case romSize + copierHeadSize:
		return data[copierHeadSize:], nil
	default:
		return nil, apperrors.Validationf("ROM must be %d bytes (unheadered) or %d bytes (headered), got %d",
			romSize, romSize+copierHeadSize, len(data))
	}
}
