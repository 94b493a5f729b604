package seed

import (
	"encoding/json"
	"time"
)

// Seed is a stored generated seed. Settings and Config are the engine
// documents persisted verbatim so the seed can be re-patched onto a
// player's ROM and spoiled later without re-running generation.
type Seed struct {
	ID         int             `json:"-"`
	ShareID    string          `json:"share_id"`
	SeedValue  string          `json:"seed"`
	FlagString string          `json:"flag_string"`
	Settings   json.RawMessage `json:"-"`
	Config     json.RawMessage `json:"-"`
	Race       bool            `json:"race"`
	Mystery    bool            `json:"mystery"`
	Nonce      string          `json:"-"`
	Version    string          `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Summary is the public view of a seed returned from the API.
type Summary struct {
	ShareID    string    `json:"share_id"`
	SeedValue  string    `json:"seed,omitempty"`
	FlagString string    `json:"flag_string,omitempty"`
	Race       bool      `json:"race"`
	Mystery    bool      `json:"mystery"`
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShareDetails is the share page payload: seed metadata plus the
// engine's settings summary text.
type ShareDetails struct {
	Summary
	Details string `json:"details"`
}

// Stats is the admin statistics payload.
type Stats struct {
	TotalSeeds int       `json:"total_seeds"`
	Recent     []Summary `json:"recent"`
}

// summary builds the public view, hiding the seed string and flag
// string for mystery seeds.
func (s *Seed) summary() Summary {
	out := Summary{
		ShareID:   s.ShareID,
		Race:      s.Race,
		Mystery:   s.Mystery,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
	}
	if !s.Mystery {
		out.SeedValue = s.SeedValue
		out.FlagString = s.FlagString
	}
	return out
}
