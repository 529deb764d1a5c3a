package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"inventario-cli/internal/model"
)

// Store persists the session (token + display name) across runs: the
// terminal equivalent of the browser's localStorage pair. Both values live
// in a single file and are cleared together on logout or detected expiry.
type Store struct {
	Dir string
}

// DefaultDir resolves the per-user config dir.
func DefaultDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.inventario).
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inventario"), nil
}

func (s Store) Path() string {
	return filepath.Join(s.Dir, "session.json")
}

// Load reads the persisted session. A missing file is not an error: it is
// simply an unauthenticated session.
func (s Store) Load() (model.Session, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Session{}, nil
		}
		return model.Session{}, err
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

func (s Store) Save(sess model.Session) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp file name + atomic rename so a CLI invocation and a running
	// TUI never corrupt each other's writes.
	return atomicWriteFile(s.Dir, "session.json.*.tmp", s.Path(), b, 0o600)
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
