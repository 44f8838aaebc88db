package db

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ClientConfig holds the connection defaults read from the [client]
// section of a my.cnf option file, the same section the stock mysql
// client reads.
type ClientConfig struct {
	Host     string
	Port     int
	Socket   string
	User     string
	Password string
	Database string
	SSLCA    string
	SSLCert  string
	SSLKey   string
}

// IsEmpty returns true when no option in the [client] section was set.
func (c *ClientConfig) IsEmpty() bool {
	return c == nil || *c == ClientConfig{}
}

// DefaultMyCnfPath returns the per-user option file path (~/.my.cnf).
func DefaultMyCnfPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".my.cnf"), nil
}

// myCnfLoadOptions tolerates the option-file quirks the stock client
// accepts: bare boolean options (ssl, compress) and # comments.
var myCnfLoadOptions = ini.LoadOptions{
	AllowBooleanKeys:         true,
	SpaceBeforeInlineComment: true,
}

// LoadClientConfig reads the [client] section from a my.cnf option file.
// A missing file is reported with os.ErrNotExist so callers can treat it
// as an absent optional config. A file without a [client] section is an
// error, matching the stock client's behaviour for defaults files.
func LoadClientConfig(path string) (*ClientConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	f, err := ini.LoadSources(myCnfLoadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse option file %s: %w", path, err)
	}

	sec, err := f.GetSection("client")
	if err != nil {
		return nil, fmt.Errorf("option file %s has no [client] section", path)
	}

	cfg := &ClientConfig{
		Host:     sec.Key("host").String(),
		Socket:   sec.Key("socket").String(),
		User:     sec.Key("user").String(),
		Password: sec.Key("password").String(),
		Database: sec.Key("database").String(),
		SSLCA:    sec.Key("ssl-ca").String(),
		SSLCert:  sec.Key("ssl-cert").String(),
		SSLKey:   sec.Key("ssl-key").String(),
	}
	if sec.HasKey("port") {
		port, err := sec.Key("port").Int()
		if err != nil {
			return nil, fmt.Errorf("option file %s has invalid port: %w", path, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// SaveClientConfig writes a [client] section to the given path with owner-only
// permissions, preserving any other sections already present in the file.
// Empty fields are omitted so the file stays minimal.
func SaveClientConfig(path string, cfg *ClientConfig) error {
	f := ini.Empty()
	if _, err := os.Stat(path); err == nil {
		loaded, err := ini.LoadSources(myCnfLoadOptions, path)
		if err != nil {
			return fmt.Errorf("failed to parse existing option file %s: %w", path, err)
		}
		f = loaded
	}

	f.DeleteSection("client")
	sec, err := f.NewSection("client")
	if err != nil {
		return fmt.Errorf("failed to build [client] section: %w", err)
	}

	set := func(key, value string) {
		if value != "" {
			sec.Key(key).SetValue(value)
		}
	}
	set("host", cfg.Host)
	if cfg.Port != 0 {
		sec.Key("port").SetValue(fmt.Sprintf("%d", cfg.Port))
	}
	set("socket", cfg.Socket)
	set("user", cfg.User)
	set("password", cfg.Password)
	set("database", cfg.Database)
	set("ssl-ca", cfg.SSLCA)
	set("ssl-cert", cfg.SSLCert)
	set("ssl-key", cfg.SSLKey)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render option file: %w", err)
	}

	// The stock client refuses world-readable option files holding a
	// password. os.WriteFile keeps the mode of a pre-existing file, so
	// tighten it before the password lands on disk.
	if err := os.Chmod(path, 0o600); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to restrict option file %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write option file %s: %w", path, err)
	}
	return nil
}
