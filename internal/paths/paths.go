// Package paths resolves the well-known locations of a gateway deployment.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override the default locations.
const (
	EnvStateDir   = "OPENCLAW_STATE_DIR"
	EnvConfigPath = "OPENCLAW_CONFIG_PATH"
)

// Default names inside the state directory.
const (
	DefaultStateDirName = ".openclaw"
	ConfigFileName      = "openclaw.json"
	SecretsFileName     = ".env"
)

// Paths holds the resolved locations for one audit run.
type Paths struct {
	StateDir    string
	ConfigFile  string
	SecretsFile string
}

// Overrides are explicit locations from command-line flags. Empty fields
// fall through to the environment and then to defaults.
type Overrides struct {
	StateDir   string
	ConfigFile string
}

// Resolve computes Paths with precedence flag > environment > default.
func Resolve(o Overrides) (Paths, error) {
	return resolve(o, os.Getenv, os.UserHomeDir)
}

func resolve(o Overrides, getenv func(string) string, home func() (string, error)) (Paths, error) {
	state := firstNonEmpty(o.StateDir, getenv(EnvStateDir))
	if state == "" {
		dir, err := home()
		if err != nil {
			return Paths{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		state = filepath.Join(dir, DefaultStateDirName)
	}
	state = expandHome(state, home)

	cfg := firstNonEmpty(o.ConfigFile, getenv(EnvConfigPath))
	if cfg == "" {
		cfg = filepath.Join(state, ConfigFileName)
	}
	cfg = expandHome(cfg, home)

	return Paths{
		StateDir:    filepath.Clean(state),
		ConfigFile:  filepath.Clean(cfg),
		SecretsFile: filepath.Join(filepath.Clean(state), SecretsFileName),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string, home func() (string, error)) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	dir, err := home()
	if err != nil {
		return path
	}
	return filepath.Join(dir, strings.TrimPrefix(path, "~"))
}
