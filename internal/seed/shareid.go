package seed

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// shareIDBytes gives 8-character URL-safe identifiers. Collisions are
// possible at this length, so Create retries on unique violations.
const shareIDBytes = 6

// NewShareID returns a short random URL-safe share identifier.
func NewShareID() (string, error) {
	b := make([]byte, shareIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate share ID: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
