package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/tui"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// offerSaveMyCnf prompts the user to save credentials to ~/.my.cnf after a
// successful wizard run. Does nothing if the password is empty, the
// terminal is non-interactive, or the user declines.
func offerSaveMyCnf(cfg *myconn.ConnectionConfig) {
	if cfg.Password == "" || !tui.IsInteractive() {
		return
	}

	fmt.Fprintln(os.Stderr, "")
	if !tui.PromptContinue("Save credentials to ~/.my.cnf for future sessions?") {
		fmt.Fprintln(os.Stderr, "Tip: provide the password via $MYSQL_PWD or ~/.my.cnf.")
		return
	}

	path, err := writeMyCnfEntry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save ~/.my.cnf: %v\n", err)
		fmt.Fprintln(os.Stderr, "Tip: provide the password via $MYSQL_PWD instead.")
		return
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
}

// writeMyCnfEntry merges the connection into the [client] section of
// ~/.my.cnf, preserving any other sections in the file.
func writeMyCnfEntry(cfg *myconn.ConnectionConfig) (string, error) {
	path, err := db.DefaultMyCnfPath()
	if err != nil {
		return "", err
	}

	existing, err := db.LoadClientConfig(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if existing == nil {
		existing = &db.ClientConfig{}
	}

	if cfg.Host != "" {
		existing.Host = cfg.Host
	}
	if cfg.Port != 0 {
		existing.Port = cfg.Port
	}
	if cfg.Socket != "" {
		existing.Socket = cfg.Socket
	}
	if cfg.Username != "" {
		existing.User = cfg.Username
	}
	existing.Password = cfg.Password

	if err := db.SaveClientConfig(path, existing); err != nil {
		return "", err
	}
	return path, nil
}
