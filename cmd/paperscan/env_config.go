package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-paperscan/internal/config"
)

// envPrefix is the prefix of every recognized environment variable.
const envPrefix = "PAPERSCAN_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // PAPERSCAN_CONFIG: config file name or path
	Style      string        // PAPERSCAN_STYLE: paper style name or path
	Timeout    time.Duration // PAPERSCAN_TIMEOUT: page load timeout
	Scale      float64       // PAPERSCAN_SCALE: resolution multiplier
	Effect     string        // PAPERSCAN_EFFECT: none, shadows, scanner
	Surface    string        // PAPERSCAN_SURFACE: chrome, canvas
	InputDir   string        // PAPERSCAN_INPUT_DIR: default input directory
	OutputDir  string        // PAPERSCAN_OUTPUT_DIR: default output directory
	Workers    int           // PAPERSCAN_WORKERS: parallel workers
}

// knownEnvVars lists valid PAPERSCAN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAPERSCAN_CONFIG":     true,
	"PAPERSCAN_STYLE":      true,
	"PAPERSCAN_TIMEOUT":    true,
	"PAPERSCAN_SCALE":      true,
	"PAPERSCAN_EFFECT":     true,
	"PAPERSCAN_SURFACE":    true,
	"PAPERSCAN_INPUT_DIR":  true,
	"PAPERSCAN_OUTPUT_DIR": true,
	"PAPERSCAN_WORKERS":    true,
	"PAPERSCAN_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PAPERSCAN_CONFIG"),
		Style:      os.Getenv("PAPERSCAN_STYLE"),
		Effect:     os.Getenv("PAPERSCAN_EFFECT"),
		Surface:    os.Getenv("PAPERSCAN_SURFACE"),
		InputDir:   os.Getenv("PAPERSCAN_INPUT_DIR"),
		OutputDir:  os.Getenv("PAPERSCAN_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("PAPERSCAN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if scale := os.Getenv("PAPERSCAN_SCALE"); scale != "" {
		if s, err := strconv.ParseFloat(scale, 64); err == nil && s > 0 {
			cfg.Scale = s
		}
	}

	if workers := os.Getenv("PAPERSCAN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PAPERSCAN_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags, timeout via resolveTimeoutWithEnv)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Paper.Style == "" {
		cfg.Paper.Style = env.Style
	}
	if env.Scale != 0 && cfg.Render.Scale == 0 {
		cfg.Render.Scale = env.Scale
	}
	if env.Effect != "" && cfg.Render.Effect == "" {
		cfg.Render.Effect = env.Effect
	}
	if env.Surface != "" && cfg.Render.Surface == "" {
		cfg.Render.Surface = env.Surface
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
