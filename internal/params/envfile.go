// Package params loads .env files used to feed connection parameters
// (MYSQL_HOST, MYSQL_PWD, ...) into the environment before resolution.
package params

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Parse parses .env file content into key/value pairs.
func Parse(content []byte) (map[string]string, error) {
	values, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("invalid env file: %w", err)
	}
	return values, nil
}

// Read reads a .env file into key/value pairs without touching the
// process environment.
func Read(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	values, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", path, err)
	}
	return values, nil
}

// Apply loads a .env file into the process environment. Variables that
// are already set keep their value, so the real environment always wins
// over the file.
func Apply(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
