// Package extproc implements engine.Randomizer by invoking the
// randomizer engine as an external process. Settings and config
// documents travel over stdin/stdout as JSON; ROM images travel
// through temporary files because they are large binary blobs.
package extproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"ctjot-server/internal/engine"
)

type Client struct {
	enginePath string
	workDir    string
	timeout    time.Duration
	logger     *slog.Logger
}

// envelope is the combined document passed to engine subcommands that
// need both the settings and the generated config.
type envelope struct {
	Settings *engine.Settings `json:"settings"`
	Config   *engine.Config   `json:"config,omitempty"`
}

func NewClient(enginePath, workDir string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		enginePath: enginePath,
		workDir:    workDir,
		timeout:    timeout,
		logger:     logger,
	}
}

func (c *Client) GenerateConfig(ctx context.Context, settings *engine.Settings) (*engine.Config, error) {
	logger := c.logger.With("component", "engine_client", "operation", "generate_config", "seed", settings.Seed)
	logger.Debug("Invoking engine to generate config")

	var stdout bytes.Buffer
	if err := c.run(ctx, envelope{Settings: settings}, &stdout, "config"); err != nil {
		return nil, err
	}

	var config engine.Config
	if err := json.Unmarshal(stdout.Bytes(), &config); err != nil {
		logger.Error("Failed to decode engine config output", "error", err)
		return nil, fmt.Errorf("failed to decode engine config output: %w", err)
	}

	logger.Debug("Engine config generated",
		"characters", len(config.CharAssignments),
		"key_items", len(config.KeyItemLocations),
		"bosses", len(config.BossAssignments))

	return &config, nil
}

func (c *Client) GenerateROM(ctx context.Context, settings *engine.Settings, config *engine.Config, rom []byte) ([]byte, error) {
	logger := c.logger.With("component", "engine_client", "operation", "generate_rom", "seed", settings.Seed)
	logger.Debug("Invoking engine to generate ROM", "rom_bytes", len(rom))

	tmpDir, err := os.MkdirTemp(c.workDir, "ctjot-rom-")
	if err != nil {
		return nil, fmt.Errorf("failed to create ROM work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logger.Warn("Failed to clean up ROM work directory", "dir", tmpDir, "error", err)
		}
	}()

	inPath := filepath.Join(tmpDir, "in.sfc")
	outPath := filepath.Join(tmpDir, "out.sfc")

	if err := os.WriteFile(inPath, rom, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input ROM: %w", err)
	}

	var stdout bytes.Buffer
	if err := c.run(ctx, envelope{Settings: settings, Config: config}, &stdout,
		"rom", "--in", inPath, "--out", outPath); err != nil {
		return nil, err
	}

	patched, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read patched ROM: %w", err)
	}

	logger.Debug("Engine ROM generated", "rom_bytes", len(patched))
	return patched, nil
}

func (c *Client) WriteSpoilerLog(ctx context.Context, w io.Writer, settings *engine.Settings, config *engine.Config) error {
	return c.run(ctx, envelope{Settings: settings, Config: config}, w, "spoilers")
}

func (c *Client) WriteJSONSpoilerLog(ctx context.Context, w io.Writer, settings *engine.Settings, config *engine.Config) error {
	return c.run(ctx, envelope{Settings: settings, Config: config}, w, "spoilers", "--json")
}

func (c *Client) WriteSettingsSpoilers(ctx context.Context, w io.Writer, settings *engine.Settings) error {
	return c.run(ctx, envelope{Settings: settings}, w, "settings-spoilers")
}

// run invokes one engine subcommand, feeding it the envelope as JSON
// on stdin and copying stdout to w.
func (c *Client) run(ctx context.Context, env envelope, stdout io.Writer, args ...string) error {
	logger := c.logger.With("component", "engine_client", "subcommand", args[0])

	input, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode engine input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.enginePath, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			logger.Error("Engine invocation timed out", "timeout", c.timeout)
			return fmt.Errorf("engine %s timed out after %s", args[0], c.timeout)
		}
		logger.Error("Engine invocation failed", "error", err, "stderr", stderr.String())
		return fmt.Errorf("engine %s failed: %w: %s", args[0], err, stderr.String())
	}

	logger.Debug("Engine invocation completed", "duration", time.Since(start))
	return nil
}
