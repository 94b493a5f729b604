package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareID(t *testing.T) {
	id, err := NewShareID()
	require.NoError(t, err)

	// 6 random bytes encode to 8 URL-safe characters.
	assert.Len(t, id, 8)
	assert.NotContains(t, id, "/")
	assert.NotContains(t, id, "+")
	assert.NotContains(t, id, "=")
}

func TestNewShareIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewShareID()
		require.NoError(t, err)
		assert.False(t, seen[id], "share ID %q repeated", id)
		seen[id] = true
	}
}
