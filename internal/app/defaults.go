package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PV_CONFIG_PATH: config file location (default: ~/.config/pv.toml)
//   - PV_HOME: base directory for pv data (default: ~/.local/share/pv)
func GetDefaults() (map[string]string, error) {
	configPath, err := envOrHome("PV_CONFIG_PATH", ".config", "pv.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := envOrHome("PV_HOME", ".local", "share", "pv")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of key, or the path elems below the home directory.
func envOrHome(key string, elems ...string) (string, error) {
	if path := os.Getenv(key); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elems...)...), nil
}
