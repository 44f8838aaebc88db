// Package config locates and loads the myconn.yaml configuration file
// holding named connection profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/myconn/pkg/myconn"
)

// ConfigFileName is the canonical configuration file name.
const ConfigFileName = "myconn.yaml"

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "MYCONN_CONFIG"

// ErrConfigNotFound is returned when no configuration file exists at any
// of the candidate locations. Callers can check for this with
// errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Locate returns the first existing configuration file, searched in order:
//
//  1. the explicit path (--config flag), which must exist if given
//  2. $MYCONN_CONFIG
//  3. ./myconn.yaml
//  4. ~/.config/myconn/myconn.yaml
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, ErrConfigNotFound)
		}
		return explicit, nil
	}

	var candidates []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, ConfigFileName)
	if userPath, err := DefaultUserPath(); err == nil {
		candidates = append(candidates, userPath)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// DefaultUserPath returns the per-user configuration file location.
func DefaultUserPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "myconn", ConfigFileName), nil
}

// Load locates and parses the configuration file. It returns the parsed
// profiles and the path the document was read from.
func Load(explicit string) (*myconn.Profiles, string, error) {
	path, err := Locate(explicit)
	if err != nil {
		return nil, "", err
	}

	profiles, err := myconn.LoadProfiles(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	return profiles, path, nil
}
