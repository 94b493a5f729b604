package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryHidesMysterySettings(t *testing.T) {
	now := time.Now()

	stored := &Seed{
		ShareID:    "abc123",
		SeedValue:  "AylaKino",
		FlagString: "loc.gpmqt",
		Race:       true,
		Version:    "3.2.0",
		CreatedAt:  now,
	}

	out := stored.summary()
	assert.Equal(t, "abc123", out.ShareID)
	assert.Equal(t, "AylaKino", out.SeedValue)
	assert.Equal(t, "loc.gpmqt", out.FlagString)
	assert.True(t, out.Race)
	assert.Equal(t, now, out.CreatedAt)

	stored.Mystery = true
	out = stored.summary()
	assert.True(t, out.Mystery)
	assert.Empty(t, out.SeedValue, "mystery seeds hide the seed string")
	assert.Empty(t, out.FlagString, "mystery seeds hide the flag string")
}
